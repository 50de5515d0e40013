package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// MinReviewYear is the earliest year a review may cover.
const MinReviewYear = 1900

// now reports the current time; tests pin it to make the year bound deterministic.
var now = time.Now

// Review is a yearly performance review written for one employee.
//
// Year and text are only reachable through their setters so that every
// assignment is validated. EmployeeID is a plain reference and is not
// checked here.
type Review struct {
	ID         int64
	EmployeeID int64

	year int
	text string
}

// NewReview builds an unsaved review, validating year and text.
func NewReview(employeeID int64, year int, text string) (*Review, error) {
	r := &Review{EmployeeID: employeeID}
	if err := r.SetYear(year); err != nil {
		return nil, err
	}
	if err := r.SetText(text); err != nil {
		return nil, err
	}
	return r, nil
}

// Year returns the review year.
func (r *Review) Year() int {
	return r.year
}

// SetYear assigns the year if it falls within [MinReviewYear, current year].
func (r *Review) SetYear(year int) error {
	if err := checkReviewYear(year); err != nil {
		return err
	}
	r.year = year
	return nil
}

// Text returns the review body.
func (r *Review) Text() string {
	return r.text
}

// SetText assigns the review body; it must not be empty.
func (r *Review) SetText(text string) error {
	if err := checkReviewText(text); err != nil {
		return err
	}
	r.text = text
	return nil
}

// Validate applies the setter rules to the current field values. It catches
// instances built as struct literals, which bypass the setters.
func (r *Review) Validate() error {
	if err := checkReviewYear(r.year); err != nil {
		return err
	}
	return checkReviewText(r.text)
}

func checkReviewYear(year int) error {
	if year < MinReviewYear || year > now().Year() {
		return &ValidationError{
			Entity:  "review",
			Field:   "year",
			Value:   year,
			Message: "Year must be a positive integer within 1900-present",
		}
	}
	return nil
}

func checkReviewText(text string) error {
	if len(text) == 0 {
		return &ValidationError{
			Entity:  "review",
			Field:   "text",
			Value:   text,
			Message: "Review text must be a non-empty string",
		}
	}
	return nil
}

// PrimaryKey implements Entity.
func (r *Review) PrimaryKey() int64 {
	return r.ID
}

// Persisted reports whether the review currently maps to a row.
func (r *Review) Persisted() bool {
	return r.ID != 0
}

func (r *Review) String() string {
	return fmt.Sprintf("<Review %s: %d, %d, %s>", formatID(r.ID), r.EmployeeID, r.year, r.text)
}

type reviewJSON struct {
	ID         *int64 `json:"id"`
	EmployeeID int64  `json:"employee_id"`
	Year       int    `json:"year"`
	Text       string `json:"text"`
}

// MarshalJSON renders an unsaved review with a null id.
func (r *Review) MarshalJSON() ([]byte, error) {
	return json.Marshal(reviewJSON{
		ID:         idPtr(r.ID),
		EmployeeID: r.EmployeeID,
		Year:       r.year,
		Text:       r.text,
	})
}

func formatID(id int64) string {
	if id == 0 {
		return "None"
	}
	return fmt.Sprintf("%d", id)
}

func idPtr(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
