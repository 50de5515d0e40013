package api

import (
	"net/http"
	"strconv"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

type reviewRequest struct {
	EmployeeID *int64  `json:"employee_id"`
	Year       *int    `json:"year"`
	Text       *string `json:"text"`
}

// listReviews returns every review, or one employee's with ?employee_id=N.
func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	var (
		reviews []*core.Review
		err     error
	)
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			writeError(w, r, http.StatusBadRequest, "invalid employee_id "+strconv.Quote(raw), "employee_id")
			return
		}
		reviews, err = s.records.Reviews.ForEmployee(r.Context(), employeeID)
	} else {
		reviews, err = s.records.Reviews.All(r.Context())
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []*core.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Year == nil {
		s.writeStoreError(w, r, missingField("review", "year"))
		return
	}
	if req.Text == nil {
		s.writeStoreError(w, r, missingField("review", "text"))
		return
	}

	var employeeID int64
	if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	}

	rev, err := s.records.Reviews.Create(r.Context(), employeeID, *req.Year, *req.Text)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/reviews/"+formatID(rev.ID))
	writeJSON(w, http.StatusCreated, rev)
}

func (s *Server) getReview(w http.ResponseWriter, r *http.Request) {
	rev, ok := s.loadReview(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Server) updateReview(w http.ResponseWriter, r *http.Request) {
	rev, ok := s.loadReview(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	employeeID, year, text := rev.EmployeeID, rev.Year(), rev.Text()
	if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	}
	if req.Year != nil {
		year = *req.Year
	}
	if req.Text != nil {
		text = *req.Text
	}

	// Validate the merged values before touching the shared instance.
	if _, err := core.NewReview(employeeID, year, text); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	rev.EmployeeID = employeeID
	_ = rev.SetYear(year)
	_ = rev.SetText(text)

	if err := s.records.Reviews.Update(r.Context(), rev); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

func (s *Server) deleteReview(w http.ResponseWriter, r *http.Request) {
	rev, ok := s.loadReview(w, r)
	if !ok {
		return
	}
	if err := s.records.Reviews.Delete(r.Context(), rev); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadReview resolves {id} to a review, writing the error response on failure.
func (s *Server) loadReview(w http.ResponseWriter, r *http.Request) (*core.Review, bool) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "id")
		return nil, false
	}
	rev, err := s.records.Reviews.FindByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return nil, false
	}
	return rev, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
