package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// EmployeeOutput is the JSON output for employee show.
type EmployeeOutput struct {
	Employee *core.Employee `json:"employee"`
	Reviews  []*core.Review `json:"reviews"`
}

// NewEmployeeCommand creates the employee command group.
func NewEmployeeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Manage employees",
		Long: `Create, list, show, update and delete employees.

Names and job titles must be non-empty; invalid values are rejected before
anything is written.`,
	}

	cmd.AddCommand(
		newEmployeeAddCommand(),
		newEmployeeListCommand(),
		newEmployeeShowCommand(),
		newEmployeeUpdateCommand(),
		newEmployeeDeleteCommand(),
	)
	return cmd
}

func newEmployeeAddCommand() *cobra.Command {
	var name, jobTitle string

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an employee",
		Example: `  leaprecord employee add --name "Ada Lovelace" --job-title Analyst`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			e, err := cmdCtx.Records.Employees.Create(cmd.Context(), name, jobTitle)
			if err != nil {
				return err
			}
			return renderEmployee(cmdCtx.Renderer, e, "Employee created")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Employee name")
	cmd.Flags().StringVar(&jobTitle, "job-title", "", "Job title")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("job-title")
	return cmd
}

func newEmployeeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			employees, err := cmdCtx.Records.Employees.All(cmd.Context())
			if err != nil {
				return err
			}
			return renderEmployees(cmdCtx.Renderer, employees)
		},
	}
}

func newEmployeeShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an employee and their reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			employees := cmdCtx.Records.Employees
			e, err := employees.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			reviews, err := employees.Reviews(cmd.Context(), e)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				if reviews == nil {
					reviews = []*core.Review{}
				}
				return r.JSON(EmployeeOutput{Employee: e, Reviews: reviews})
			}

			r.Header(1, e.Name())
			r.KeyValue("ID", formatID(e.ID))
			r.KeyValue("Job Title", e.JobTitle())
			r.Println("")
			r.Header(2, "Reviews")
			if len(reviews) == 0 {
				r.Muted("No reviews")
				return nil
			}
			r.Table(reviewHeaders, reviewRows(reviews))
			return nil
		},
	}
}

func newEmployeeUpdateCommand() *cobra.Command {
	var name, jobTitle string

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update an employee",
		Example: `  leaprecord employee update 1 --job-title "Lead Analyst"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("job-title") {
				return fmt.Errorf("nothing to update: pass --name and/or --job-title")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			employees := cmdCtx.Records.Employees
			e, err := employees.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				if err := e.SetName(name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("job-title") {
				if err := e.SetJobTitle(jobTitle); err != nil {
					return err
				}
			}
			if err := employees.Update(cmd.Context(), e); err != nil {
				return err
			}
			return renderEmployee(cmdCtx.Renderer, e, "Employee updated")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&jobTitle, "job-title", "", "New job title")
	return cmd
}

func newEmployeeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Long: `Delete an employee row. Reviews written for the employee are kept and
keep pointing at the old id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			employees := cmdCtx.Records.Employees
			e, err := employees.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := employees.Delete(cmd.Context(), e); err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]int64{"deleted": id})
			}
			r.Success(fmt.Sprintf("Employee %d deleted", id))
			return nil
		},
	}
}

var employeeHeaders = []string{"ID", "Name", "Job Title"}

func employeeRows(employees []*core.Employee) [][]string {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{formatID(e.ID), e.Name(), e.JobTitle()})
	}
	return rows
}

func renderEmployee(r *output.Renderer, e *core.Employee, msg string) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(e)
	}
	r.Success(fmt.Sprintf("%s: %s", msg, e))
	return nil
}

func renderEmployees(r *output.Renderer, employees []*core.Employee) error {
	if r.EffectiveMode() == output.ModeJSON {
		if employees == nil {
			employees = []*core.Employee{}
		}
		return r.JSON(employees)
	}

	r.Header(1, "Employees")
	if len(employees) == 0 {
		r.Muted("No employees")
		return nil
	}
	r.Table(employeeHeaders, employeeRows(employees))
	return nil
}
