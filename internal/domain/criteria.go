package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the wire format for filter dates. The server compares
// at day granularity.
const DateLayout = "2006-01-02"

// Criteria holds the list view's filter fields. A nil field means
// "unconstrained" and is omitted from request bodies entirely. When both
// dates are present the server, not the client, is the authority on
// range validity.
type Criteria struct {
	MinRating *float64
	StartDate *time.Time
	EndDate   *time.Time
}

// IsZero reports whether no field is set, i.e. the criteria are
// equivalent to an unfiltered listing.
func (c Criteria) IsZero() bool {
	return c.MinRating == nil && c.StartDate == nil && c.EndDate == nil
}

// Validate checks the present fields. Absent fields are always valid.
func (c Criteria) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MinRating, validation.Min(0.0), validation.Max(5.0)),
	)
}
