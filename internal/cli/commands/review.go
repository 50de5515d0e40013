package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/pkg/core"
)

// NewReviewCommand creates the review command group.
func NewReviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review",
		Aliases: []string{"reviews"},
		Short:   "Manage performance reviews",
		Long: `Create, list, show, update and delete performance reviews.

The year must fall between 1900 and the current year and the text must not
be empty. Values are checked as soon as they are given, so an invalid review
is never written.`,
	}

	cmd.AddCommand(
		newReviewAddCommand(),
		newReviewListCommand(),
		newReviewShowCommand(),
		newReviewUpdateCommand(),
		newReviewDeleteCommand(),
	)
	return cmd
}

func newReviewAddCommand() *cobra.Command {
	var (
		employeeID int64
		year       int
		text       string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a review",
		Example: `  leaprecord review add --employee 1 --year 2023 --text "Excellent work"`,
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

			rev, err := cmdCtx.Records.Reviews.Create(cmd.Context(), employeeID, year, text)
			if err != nil {
				return err
			}
			return renderReview(cmdCtx.Renderer, rev, "Review created")
		},
	}

	cmd.Flags().Int64Var(&employeeID, "employee", 0, "Id of the reviewed employee")
	cmd.Flags().IntVar(&year, "year", 0, "Review year")
	cmd.Flags().StringVar(&text, "text", "", "Review text")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newReviewListCommand() *cobra.Command {
	var employeeID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		Example: `  leaprecord review list
  leaprecord review list --employee 1 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			reviews := cmdCtx.Records.Reviews
			var list []*core.Review
			if cmd.Flags().Changed("employee") {
				list, err = reviews.ForEmployee(cmd.Context(), employeeID)
			} else {
				list, err = reviews.All(cmd.Context())
			}
			if err != nil {
				return err
			}
			return renderReviews(cmdCtx.Renderer, list)
		},
	}

	cmd.Flags().Int64Var(&employeeID, "employee", 0, "Only list reviews for this employee id")
	return cmd
}

func newReviewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a review",
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

			rev, err := cmdCtx.Records.Reviews.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(rev)
			}
			r.Header(1, fmt.Sprintf("Review %d", id))
			r.KeyValue("Employee", formatID(rev.EmployeeID))
			r.KeyValue("Year", strconv.Itoa(rev.Year()))
			r.KeyValue("Text", rev.Text())
			return nil
		},
	}
}

func newReviewUpdateCommand() *cobra.Command {
	var (
		employeeID int64
		year       int
		text       string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a review",
		Example: `  leaprecord review update 3 --year 2022`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if !flags.Changed("employee") && !flags.Changed("year") && !flags.Changed("text") {
				return fmt.Errorf("nothing to update: pass at least one of --employee, --year, --text")
			}

			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
				return err
			}

			reviews := cmdCtx.Records.Reviews
			rev, err := reviews.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if flags.Changed("year") {
				if err := rev.SetYear(year); err != nil {
					return err
				}
			}
			if flags.Changed("text") {
				if err := rev.SetText(text); err != nil {
					return err
				}
			}
			if flags.Changed("employee") {
				rev.EmployeeID = employeeID
			}
			if err := reviews.Update(cmd.Context(), rev); err != nil {
				return err
			}
			return renderReview(cmdCtx.Renderer, rev, "Review updated")
		},
	}

	cmd.Flags().Int64Var(&employeeID, "employee", 0, "New employee id")
	cmd.Flags().IntVar(&year, "year", 0, "New review year")
	cmd.Flags().StringVar(&text, "text", "", "New review text")
	return cmd
}

func newReviewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a review",
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

			reviews := cmdCtx.Records.Reviews
			rev, err := reviews.FindByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := reviews.Delete(cmd.Context(), rev); err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				return r.JSON(map[string]int64{"deleted": id})
			}
			r.Success(fmt.Sprintf("Review %d deleted", id))
			return nil
		},
	}
}

var reviewHeaders = []string{"ID", "Employee", "Year", "Text"}

func reviewRows(reviews []*core.Review) [][]string {
	rows := make([][]string, 0, len(reviews))
	for _, rev := range reviews {
		rows = append(rows, []string{
			formatID(rev.ID),
			formatID(rev.EmployeeID),
			strconv.Itoa(rev.Year()),
			rev.Text(),
		})
	}
	return rows
}

func renderReview(r *output.Renderer, rev *core.Review, msg string) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rev)
	}
	r.Success(fmt.Sprintf("%s: %s", msg, rev))
	return nil
}

func renderReviews(r *output.Renderer, reviews []*core.Review) error {
	if r.EffectiveMode() == output.ModeJSON {
		if reviews == nil {
			reviews = []*core.Review{}
		}
		return r.JSON(reviews)
	}

	r.Header(1, "Reviews")
	if len(reviews) == 0 {
		r.Muted("No reviews")
		return nil
	}
	r.Table(reviewHeaders, reviewRows(reviews))
	return nil
}
