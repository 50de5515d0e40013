package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pinYear fixes the current calendar year for the duration of the test.
func pinYear(t *testing.T, year int) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

func TestNewReview(t *testing.T) {
	pinYear(t, 2024)

	tests := []struct {
		name      string
		year      int
		text      string
		wantErr   bool
		wantField string
	}{
		{name: "lower bound", year: 1900, text: "Solid year"},
		{name: "current year", year: 2024, text: "Great work"},
		{name: "before 1900", year: 1899, text: "Too early", wantErr: true, wantField: "year"},
		{name: "next year", year: 2025, text: "Too late", wantErr: true, wantField: "year"},
		{name: "negative year", year: -1, text: "Nope", wantErr: true, wantField: "year"},
		{name: "empty text", year: 2020, text: "", wantErr: true, wantField: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReview(7, tt.year, tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, r)
				assert.True(t, errors.Is(err, ErrInvalidValue))

				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), r.EmployeeID)
			assert.Equal(t, tt.year, r.Year())
			assert.Equal(t, tt.text, r.Text())
			assert.False(t, r.Persisted())
		})
	}
}

func TestReview_SettersRejectAndKeepPreviousValue(t *testing.T) {
	pinYear(t, 2024)

	r, err := NewReview(1, 2010, "Reliable")
	require.NoError(t, err)

	err = r.SetYear(1800)
	require.Error(t, err)
	assert.Equal(t, "Year must be a positive integer within 1900-present", err.Error())
	assert.Equal(t, 2010, r.Year())

	err = r.SetText("")
	require.Error(t, err)
	assert.Equal(t, "Review text must be a non-empty string", err.Error())
	assert.Equal(t, "Reliable", r.Text())

	require.NoError(t, r.SetYear(2024))
	require.NoError(t, r.SetText("Improved"))
	assert.Equal(t, 2024, r.Year())
	assert.Equal(t, "Improved", r.Text())
}

func TestReview_YearBoundFollowsClock(t *testing.T) {
	pinYear(t, 2030)

	r, err := NewReview(1, 2030, "Future-proof")
	require.NoError(t, err)
	assert.Equal(t, 2030, r.Year())
}

func TestReview_Validate(t *testing.T) {
	pinYear(t, 2024)

	r, err := NewReview(1, 2020, "Fine")
	require.NoError(t, err)
	assert.NoError(t, r.Validate())

	err = (&Review{EmployeeID: 1}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "year", verr.Field)

	r.text = ""
	err = r.Validate()
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)
}

func TestReview_String(t *testing.T) {
	pinYear(t, 2024)

	r, err := NewReview(3, 2021, "Consistent")
	require.NoError(t, err)
	assert.Equal(t, "<Review None: 3, 2021, Consistent>", r.String())

	r.ID = 12
	assert.Equal(t, "<Review 12: 3, 2021, Consistent>", r.String())
}

func TestReview_MarshalJSON(t *testing.T) {
	pinYear(t, 2024)

	r, err := NewReview(3, 2021, "Consistent")
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"employee_id":3,"year":2021,"text":"Consistent"}`, string(data))

	r.ID = 5
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5,"employee_id":3,"year":2021,"text":"Consistent"}`, string(data))
}

func TestValidationError_Detail(t *testing.T) {
	err := &ValidationError{Entity: "review", Field: "year", Value: 1500, Message: "bad year"}
	assert.Equal(t, "review.year=1500: bad year", err.Detail())
	assert.Equal(t, "bad year", err.Error())
}
