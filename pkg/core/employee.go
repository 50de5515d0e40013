package core

import (
	"encoding/json"
	"fmt"
)

// Employee is the person reviews are written for.
type Employee struct {
	ID int64

	name     string
	jobTitle string
}

// NewEmployee builds an unsaved employee, validating name and job title.
func NewEmployee(name, jobTitle string) (*Employee, error) {
	e := &Employee{}
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	if err := e.SetJobTitle(jobTitle); err != nil {
		return nil, err
	}
	return e, nil
}

// Name returns the employee name.
func (e *Employee) Name() string {
	return e.name
}

// SetName assigns a non-empty name.
func (e *Employee) SetName(name string) error {
	if err := checkEmployeeName(name); err != nil {
		return err
	}
	e.name = name
	return nil
}

// JobTitle returns the employee job title.
func (e *Employee) JobTitle() string {
	return e.jobTitle
}

// SetJobTitle assigns a non-empty job title.
func (e *Employee) SetJobTitle(jobTitle string) error {
	if err := checkEmployeeJobTitle(jobTitle); err != nil {
		return err
	}
	e.jobTitle = jobTitle
	return nil
}

// Validate applies the setter rules to the current field values.
func (e *Employee) Validate() error {
	if err := checkEmployeeName(e.name); err != nil {
		return err
	}
	return checkEmployeeJobTitle(e.jobTitle)
}

func checkEmployeeName(name string) error {
	if len(name) == 0 {
		return &ValidationError{Entity: "employee", Field: "name", Value: name, Message: "Name must be a non-empty string"}
	}
	return nil
}

func checkEmployeeJobTitle(jobTitle string) error {
	if len(jobTitle) == 0 {
		return &ValidationError{Entity: "employee", Field: "job_title", Value: jobTitle, Message: "Job title must be a non-empty string"}
	}
	return nil
}

// PrimaryKey implements Entity.
func (e *Employee) PrimaryKey() int64 {
	return e.ID
}

// Persisted reports whether the employee currently maps to a row.
func (e *Employee) Persisted() bool {
	return e.ID != 0
}

func (e *Employee) String() string {
	return fmt.Sprintf("<Employee %s: %s, %s>", formatID(e.ID), e.name, e.jobTitle)
}

type employeeJSON struct {
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	JobTitle string `json:"job_title"`
}

// MarshalJSON renders an unsaved employee with a null id.
func (e *Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(employeeJSON{
		ID:       idPtr(e.ID),
		Name:     e.name,
		JobTitle: e.jobTitle,
	})
}
