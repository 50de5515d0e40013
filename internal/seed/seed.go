// Package seed loads employees and their reviews from YAML seed files.
//
// A seed file looks like:
//
//	employees:
//	  - name: Ada Lovelace
//	    job_title: Analyst
//	    reviews:
//	      - year: 2023
//	        text: Invented programming
//
// Every record is constructed, and therefore validated, before anything is
// written, so an invalid file leaves the database untouched.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/leaprecord/internal/orm"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// File is the decoded contents of a seed file.
type File struct {
	Employees []Employee `yaml:"employees"`
}

// Employee is one seeded employee with the reviews written for them.
type Employee struct {
	Name     string   `yaml:"name"`
	JobTitle string   `yaml:"job_title"`
	Reviews  []Review `yaml:"reviews"`
}

// Review is one seeded review.
type Review struct {
	Year int    `yaml:"year"`
	Text string `yaml:"text"`
}

// Result counts the rows a seed run inserted.
type Result struct {
	Employees int `json:"employees"`
	Reviews   int `json:"reviews"`
}

// Load reads and decodes the seed file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	file, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &file, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &file, nil
}

type plannedEmployee struct {
	employee *core.Employee
	reviews  []*core.Review
}

// Apply saves every employee in file and then their reviews, linking each
// review to the employee's new id.
func Apply(ctx context.Context, records *orm.Records, file *File, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	plan, err := build(file)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, p := range plan {
		if err := records.Employees.Save(ctx, p.employee); err != nil {
			return result, err
		}
		result.Employees++

		for _, r := range p.reviews {
			r.EmployeeID = p.employee.ID
			if err := records.Reviews.Save(ctx, r); err != nil {
				return result, err
			}
			result.Reviews++
		}
		logger.Debug("seeded employee",
			slog.Int64("id", p.employee.ID),
			slog.String("name", p.employee.Name()),
			slog.Int("reviews", len(p.reviews)))
	}

	logger.Info("seed complete", slog.Int("employees", result.Employees), slog.Int("reviews", result.Reviews))
	return result, nil
}

// build constructs every entity so validation failures surface before any write.
func build(file *File) ([]plannedEmployee, error) {
	if file == nil {
		return nil, nil
	}

	plan := make([]plannedEmployee, 0, len(file.Employees))
	for i, e := range file.Employees {
		employee, err := core.NewEmployee(e.Name, e.JobTitle)
		if err != nil {
			return nil, fmt.Errorf("employees[%d]: %w", i, err)
		}

		p := plannedEmployee{employee: employee}
		for j, r := range e.Reviews {
			review, err := core.NewReview(0, r.Year, r.Text)
			if err != nil {
				return nil, fmt.Errorf("employees[%d].reviews[%d]: %w", i, j, err)
			}
			p.reviews = append(p.reviews, review)
		}
		plan = append(plan, p)
	}
	return plan, nil
}
