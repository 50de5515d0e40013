package api

import (
	"net/http"

	"github.com/leapstack-labs/leaprecord/pkg/core"
)

type employeeRequest struct {
	Name     *string `json:"name"`
	JobTitle *string `json:"job_title"`
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := s.records.Employees.All(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if employees == nil {
		employees = []*core.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Name == nil {
		s.writeStoreError(w, r, missingField("employee", "name"))
		return
	}
	if req.JobTitle == nil {
		s.writeStoreError(w, r, missingField("employee", "job_title"))
		return
	}

	e, err := s.records.Employees.Create(r.Context(), *req.Name, *req.JobTitle)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/employees/"+formatID(e.ID))
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadEmployee(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) updateEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadEmployee(w, r)
	if !ok {
		return
	}

	var req employeeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "")
		return
	}

	name, jobTitle := e.Name(), e.JobTitle()
	if req.Name != nil {
		name = *req.Name
	}
	if req.JobTitle != nil {
		jobTitle = *req.JobTitle
	}

	// Validate the merged values before touching the shared instance.
	if _, err := core.NewEmployee(name, jobTitle); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	_ = e.SetName(name)
	_ = e.SetJobTitle(jobTitle)

	if err := s.records.Employees.Update(r.Context(), e); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadEmployee(w, r)
	if !ok {
		return
	}
	if err := s.records.Employees.Delete(r.Context(), e); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEmployeeReviews(w http.ResponseWriter, r *http.Request) {
	e, ok := s.loadEmployee(w, r)
	if !ok {
		return
	}
	reviews, err := s.records.Employees.Reviews(r.Context(), e)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []*core.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// loadEmployee resolves {id} to an employee, writing the error response on failure.
func (s *Server) loadEmployee(w http.ResponseWriter, r *http.Request) (*core.Employee, bool) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), "id")
		return nil, false
	}
	e, err := s.records.Employees.FindByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return nil, false
	}
	return e, true
}
