// Package api implements the remote recipe client: a thin set of
// request builders over the HTTP API, attaching the session token as a
// bearer credential where required. All payloads are JSON with the
// interesting part embedded under a named field ("recipe", "recipes",
// "average_rating", ...), read defensively.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mnajar/platebook/internal/domain"
	"github.com/mnajar/platebook/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeService = (*Client)(nil)

// TokenSource yields the current bearer token, or "" when logged out.
// The session store satisfies this; the client reads it per request so
// it never caches a stale token.
type TokenSource interface {
	Token() string
}

// ── Wire types ───────────────────────────────────────────────────

type recipeEnvelope struct {
	Recipe *domain.Recipe `json:"recipe"`
}

type recipesEnvelope struct {
	Recipes []domain.Recipe `json:"recipes"`
}

// ratingEnvelope keeps average_rating raw: the server is not trusted to
// always send a number, and a malformed value must degrade, not fail.
type ratingEnvelope struct {
	AverageRating json.RawMessage `json:"average_rating"`
}

type tokenEnvelope struct {
	Token string `json:"token"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

type draftPayload struct {
	RecipeName   string `json:"RecipeName"`
	Instructions string `json:"Instructions"`
	Ingredients  string `json:"Ingredients"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// criteriaBody serializes filter criteria with absent fields omitted
// entirely, never sent as null. Empty criteria produce "{}", which the
// server treats as an unfiltered request.
func criteriaBody(c domain.Criteria) map[string]any {
	body := map[string]any{}
	if c.MinRating != nil {
		body["min_rating"] = *c.MinRating
	}
	if c.StartDate != nil {
		body["start_date"] = c.StartDate.Format(domain.DateLayout)
	}
	if c.EndDate != nil {
		body["end_date"] = c.EndDate.Format(domain.DateLayout)
	}
	return body
}

// ── Client ───────────────────────────────────────────────────────

// Option configures the Client.
type Option func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient swaps the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// Client talks to the recipe API.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a recipe API client.
//   - baseURL: the API origin, e.g. "http://127.0.0.1:5000"
//   - tokens:  source of the current bearer token
func NewClient(baseURL string, tokens TokenSource, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do issues one request and returns the raw response body. When bearer
// is set and no token is available it fails locally, before anything is
// sent. Non-success statuses become *RemoteError with the body's
// "message" field (fallback when absent); transport failures become
// *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, body any, bearer bool, fallback string) ([]byte, error) {
	token := ""
	if bearer {
		token = c.tokens.Token()
		if token == "" {
			return nil, domain.ErrUnauthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: marshal payload: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("api: %s %s", method, url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fallback
		var env messageEnvelope
		if json.Unmarshal(respBody, &env) == nil && env.Message != "" {
			msg = env.Message
		}
		c.log.Warn("api: %s %s -> %d: %s", method, url, resp.StatusCode, msg)
		return nil, &RemoteError{Status: resp.StatusCode, Message: msg}
	}

	return respBody, nil
}

// decodeRating extracts an aggregate rating, degrading to {0, true}
// when the field is missing or not a number.
func (c *Client) decodeRating(raw []byte, where string) (domain.RatingSummary, error) {
	var env ratingEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.RatingSummary{}, fmt.Errorf("api: unmarshal %s: %w", where, err)
	}
	var value float64
	if len(env.AverageRating) == 0 || json.Unmarshal(env.AverageRating, &value) != nil {
		c.log.Warn("api: %s returned non-numeric average_rating %s", where, env.AverageRating)
		return domain.RatingSummary{Value: 0, Degraded: true}, nil
	}
	return domain.RatingSummary{Value: value}, nil
}

// ── Recipe operations ────────────────────────────────────────────

// List fetches all recipes. Unauthenticated.
func (c *Client) List(ctx context.Context) ([]domain.Recipe, error) {
	raw, err := c.do(ctx, http.MethodGet, "/recipes", nil, false, "Failed to fetch recipes")
	if err != nil {
		return nil, err
	}
	var env recipesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: unmarshal recipes: %w", err)
	}
	if env.Recipes == nil {
		return []domain.Recipe{}, nil
	}
	return env.Recipes, nil
}

// Filter fetches the recipes matching the given criteria.
// Unauthenticated; absent criteria fields are omitted from the body.
func (c *Client) Filter(ctx context.Context, crit domain.Criteria) ([]domain.Recipe, error) {
	if err := crit.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "/filter_recipes", criteriaBody(crit), false, "Failed to fetch recipes")
	if err != nil {
		return nil, err
	}
	var env recipesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: unmarshal filtered recipes: %w", err)
	}
	if env.Recipes == nil {
		return []domain.Recipe{}, nil
	}
	return env.Recipes, nil
}

// Get fetches a single recipe. An HTTP-success response without a
// "recipe" field reads as not-found rather than crashing the caller.
func (c *Client) Get(ctx context.Context, id int) (*domain.Recipe, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d", id), nil, false, "Failed to fetch recipe")
	if err != nil {
		return nil, err
	}
	var env recipeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: unmarshal recipe: %w", err)
	}
	if env.Recipe == nil {
		return nil, domain.ErrNotFound
	}
	return env.Recipe, nil
}

// AverageRating fetches the aggregate rating for a recipe.
func (c *Client) AverageRating(ctx context.Context, id int) (domain.RatingSummary, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d/rating", id), nil, false, "Failed to fetch rating")
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return c.decodeRating(raw, "rating")
}

// Create submits a new recipe. Requires a token; the server assigns the
// identifier, timestamp and owner.
func (c *Client) Create(ctx context.Context, d domain.Draft) (*domain.Recipe, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	body := draftPayload{RecipeName: d.Name, Instructions: d.Instructions, Ingredients: d.Ingredients}
	raw, err := c.do(ctx, http.MethodPost, "/recipes", body, true, "Failed to create recipe")
	if err != nil {
		return nil, err
	}
	var env recipeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: unmarshal created recipe: %w", err)
	}
	if env.Recipe == nil {
		return nil, fmt.Errorf("api: create response missing recipe")
	}
	return env.Recipe, nil
}

// Update replaces the mutable fields of an existing recipe. Requires a
// token; the identifier is fixed.
func (c *Client) Update(ctx context.Context, id int, d domain.Draft) (*domain.Recipe, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	body := draftPayload{RecipeName: d.Name, Instructions: d.Instructions, Ingredients: d.Ingredients}
	raw, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/recipes/%d", id), body, true, "Failed to update recipe")
	if err != nil {
		return nil, err
	}
	var env recipeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: unmarshal updated recipe: %w", err)
	}
	if env.Recipe == nil {
		return nil, fmt.Errorf("api: update response missing recipe")
	}
	return env.Recipe, nil
}

// Delete removes a recipe. Requires a token. After success no further
// operations on the identifier are valid.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/recipes/%d", id), nil, true, "Failed to delete recipe")
	return err
}

// Rate submits an individual rating between 1 and 5. Out-of-range
// ratings and missing tokens are rejected locally, before any request.
func (c *Client) Rate(ctx context.Context, id, rating int) error {
	if rating < 1 || rating > 5 {
		return &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	body := map[string]int{"rating": rating}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/rate_recipe/%d", id), body, true, "Failed to submit rating")
	return err
}

// ── Account operations ───────────────────────────────────────────

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := credentialsPayload{Username: username, Password: password}
	raw, err := c.do(ctx, http.MethodPost, "/login", body, false, "Login failed")
	if err != nil {
		return "", err
	}
	var env tokenEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", fmt.Errorf("api: unmarshal login response: %w", err)
	}
	if env.Token == "" {
		return "", fmt.Errorf("api: login response missing token")
	}
	return env.Token, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, username, password string) error {
	body := credentialsPayload{Username: username, Password: password}
	_, err := c.do(ctx, http.MethodPost, "/sign-up", body, false, "Sign up failed")
	return err
}

// ── Reports ──────────────────────────────────────────────────────

// AverageRatingReport computes the mean rating over all ratings
// matching the criteria. Same degradation rule as AverageRating.
func (c *Client) AverageRatingReport(ctx context.Context, crit domain.Criteria) (domain.RatingSummary, error) {
	if err := crit.Validate(); err != nil {
		return domain.RatingSummary{}, err
	}
	raw, err := c.do(ctx, http.MethodPost, "/recipes/average_rating_report", criteriaBody(crit), false, "Failed to fetch average rating")
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return c.decodeRating(raw, "average rating report")
}

// MostActiveDayReport returns the day with the most recipe creations
// within the criteria, or nil when no recipes matched (the server
// signals that with a 200 and no "day" field).
func (c *Client) MostActiveDayReport(ctx context.Context, crit domain.Criteria) (*domain.DayReport, error) {
	if err := crit.Validate(); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "/recipes/max_recipes_per_day_report", criteriaBody(crit), false, "Failed to fetch most active day")
	if err != nil {
		return nil, err
	}
	var report domain.DayReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("api: unmarshal day report: %w", err)
	}
	if report.Day == "" {
		return nil, nil
	}
	return &report, nil
}
