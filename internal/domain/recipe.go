// Package domain defines the core types shared by every layer of the
// client. All other packages depend on domain; domain depends only on
// the validation library.
package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Recipe is a recipe as exchanged with the remote API. The identifier,
// creation timestamp and owning user are assigned by the server and
// never set by the client.
type Recipe struct {
	ID           int    `json:"RecipeID"`
	Name         string `json:"RecipeName"`
	Instructions string `json:"Instructions"`
	Ingredients  string `json:"Ingredients"`
	DateCreated  string `json:"DateCreated"`
	UserID       int    `json:"UserID"`
}

// Draft is the client-held, not-yet-submitted representation of a recipe
// being created or edited. Ingredients is free text, one "amount unit
// name" entry per line; the text is the single source of truth submitted
// to the server.
type Draft struct {
	Name         string
	Instructions string
	Ingredients  string
}

// Validate checks the draft before any request is sent. The server
// rejects missing fields with a 400; catching them locally gives the
// user a message without a round trip.
func (d Draft) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Instructions, validation.Required),
		validation.Field(&d.Ingredients, validation.Required),
	)
}

// RatingSummary is a server-computed aggregate rating. Degraded is set
// when the server returned something that was not a number; callers
// should display "N/A" instead of trusting the zero Value.
type RatingSummary struct {
	Value    float64
	Degraded bool
}

// DayReport is the busiest-day report: the calendar day on which the
// most recipes were created, and how many.
type DayReport struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}
