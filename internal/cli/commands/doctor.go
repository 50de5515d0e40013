package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/config"
	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/internal/orm"
)

// Health check statuses.
const (
	StatusPass  = "pass"
	StatusWarn  = "warn"
	StatusError = "error"
	StatusSkip  = "skip"
)

// Health check groups, in report order.
const (
	GroupConnection = "connection"
	GroupSchema     = "schema"
	GroupData       = "data"
)

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Config          string        `json:"config"`
	Driver          string        `json:"driver"`
	Database        string        `json:"database"`
	HealthChecks    []HealthCheck `json:"health_checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
	IssueCount      int           `json:"issue_count"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Group   string   `json:"group"`
	Status  string   `json:"status"`
	Details []string `json:"details,omitempty"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database connection, schema and stored records",
		Long: `Check that leaprecord can reach its database and that the stored data is
consistent.

Checks are grouped by category:
- Connection: the driver is known and the database answers a ping
- Schema: both tables exist and the migration version
- Data: every employee and review row passes validation, and every review
  points at an existing employee

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  leaprecord doctor

  # Output as JSON
  leaprecord doctor -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContextWithoutDB(cmd)
	r := cmdCtx.Renderer

	out := diagnose(cmd.Context(), cmdCtx)

	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = r.JSON(out)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}
	if err != nil {
		return err
	}

	if out.failed() {
		return fmt.Errorf("doctor found %d issue(s)", out.IssueCount)
	}
	return nil
}

// diagnose runs every check in order. Checks that depend on an earlier
// failure are reported as skipped.
func diagnose(ctx context.Context, cmdCtx *CommandContext) *DoctorOutput {
	cfg := cmdCtx.Cfg
	out := &DoctorOutput{
		Config:   doctorConfigLabel(),
		Driver:   cfg.Database.Driver,
		Database: describeDatabase(cfg.Database),
	}

	add := func(c HealthCheck) {
		out.HealthChecks = append(out.HealthChecks, c)
	}

	records, err := openRecords(ctx, cfg, cmdCtx.Logger)
	if err != nil {
		add(HealthCheck{ID: "C01", Name: "Database reachable", Group: GroupConnection, Status: StatusError, Details: []string{err.Error()}})
		skipAfter(out, "C01")
		return out.finish()
	}
	defer func() { _ = records.Close() }()

	add(HealthCheck{ID: "C01", Name: "Database reachable", Group: GroupConnection, Status: StatusPass,
		Details: []string{"dialect " + records.DB.Dialect().Name}})
	add(checkPing(ctx, records))

	missing, err := records.MissingTables(ctx)
	switch {
	case err != nil:
		add(HealthCheck{ID: "S01", Name: "Tables exist", Group: GroupSchema, Status: StatusError, Details: []string{err.Error()}})
	case len(missing) > 0:
		add(HealthCheck{ID: "S01", Name: "Tables exist", Group: GroupSchema, Status: StatusError,
			Details: []string{"missing: " + strings.Join(missing, ", ")}})
	default:
		add(HealthCheck{ID: "S01", Name: "Tables exist", Group: GroupSchema, Status: StatusPass})
	}
	add(checkMigrations(ctx, records))

	if err != nil || len(missing) > 0 {
		skipAfter(out, "S02")
		return out.finish()
	}

	add(checkLoad(ctx, "D01", "Employee rows valid", func(ctx context.Context) (int, error) {
		all, err := records.Employees.All(ctx)
		return len(all), err
	}))
	add(checkLoad(ctx, "D02", "Review rows valid", func(ctx context.Context) (int, error) {
		all, err := records.Reviews.All(ctx)
		return len(all), err
	}))
	add(checkOrphans(ctx, records))

	return out.finish()
}

func checkPing(ctx context.Context, records *orm.Records) HealthCheck {
	c := HealthCheck{ID: "C02", Name: "Ping", Group: GroupConnection, Status: StatusPass}
	if err := records.DB.Ping(ctx); err != nil {
		c.Status = StatusError
		c.Details = []string{err.Error()}
	}
	return c
}

func checkMigrations(ctx context.Context, records *orm.Records) HealthCheck {
	c := HealthCheck{ID: "S02", Name: "Migration version", Group: GroupSchema, Status: StatusPass}
	version, err := records.DB.MigrationVersion(ctx)
	switch {
	case err != nil:
		c.Status = StatusWarn
		c.Details = []string{err.Error()}
	case version == 0:
		c.Status = StatusWarn
		c.Details = []string{"no migrations applied; tables were created directly"}
	default:
		c.Details = []string{"version " + strconv.FormatInt(version, 10)}
	}
	return c
}

func checkLoad(ctx context.Context, id, name string, load func(context.Context) (int, error)) HealthCheck {
	c := HealthCheck{ID: id, Name: name, Group: GroupData, Status: StatusPass}
	n, err := load(ctx)
	if err != nil {
		c.Status = StatusError
		c.Details = []string{err.Error()}
		return c
	}
	c.Details = []string{fmt.Sprintf("%d rows", n)}
	return c
}

func checkOrphans(ctx context.Context, records *orm.Records) HealthCheck {
	c := HealthCheck{ID: "D03", Name: "Reviews reference employees", Group: GroupData, Status: StatusPass}
	ids, err := records.OrphanedReviews(ctx)
	if err != nil {
		c.Status = StatusError
		c.Details = []string{err.Error()}
		return c
	}
	if len(ids) > 0 {
		c.Status = StatusWarn
		for _, id := range ids {
			c.Details = append(c.Details, fmt.Sprintf("review %d points at a missing employee", id))
		}
	}
	return c
}

var allChecks = []HealthCheck{
	{ID: "C01", Name: "Database reachable", Group: GroupConnection},
	{ID: "C02", Name: "Ping", Group: GroupConnection},
	{ID: "S01", Name: "Tables exist", Group: GroupSchema},
	{ID: "S02", Name: "Migration version", Group: GroupSchema},
	{ID: "D01", Name: "Employee rows valid", Group: GroupData},
	{ID: "D02", Name: "Review rows valid", Group: GroupData},
	{ID: "D03", Name: "Reviews reference employees", Group: GroupData},
}

// skipAfter appends every check that comes after id as skipped.
func skipAfter(out *DoctorOutput, id string) {
	found := false
	for _, c := range allChecks {
		if found {
			c.Status = StatusSkip
			out.HealthChecks = append(out.HealthChecks, c)
		}
		if c.ID == id {
			found = true
		}
	}
}

func (o *DoctorOutput) finish() *DoctorOutput {
	o.IssueCount = 0
	seen := make(map[string]bool)
	for _, c := range o.HealthChecks {
		if c.Status != StatusWarn && c.Status != StatusError {
			continue
		}
		o.IssueCount++
		if rec := getRecommendation(c.ID); rec != "" && !seen[rec] {
			o.Recommendations = append(o.Recommendations, rec)
			seen[rec] = true
		}
	}
	o.Score = calculateHealthScore(o.HealthChecks)
	return o
}

func (o *DoctorOutput) failed() bool {
	for _, c := range o.HealthChecks {
		if c.Status == StatusError {
			return true
		}
	}
	return false
}

// calculateHealthScore computes a health score from 0-100. Errors cost
// twice as much as warnings.
func calculateHealthScore(checks []HealthCheck) int {
	score := 100
	for _, c := range checks {
		switch c.Status {
		case StatusError:
			score -= 30
		case StatusWarn:
			score -= 10
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// getRecommendation returns a recommendation for a specific check.
func getRecommendation(id string) string {
	switch id {
	case "C01", "C02":
		return "Check database.driver and the connection settings in leaprecord.yaml"
	case "S01":
		return "Run 'leaprecord init' or 'leaprecord migrate' to create the tables"
	case "S02":
		return "Run 'leaprecord migrate' to track the schema version"
	case "D01", "D02":
		return "Fix or delete rows holding values that fail validation"
	case "D03":
		return "Delete orphaned reviews or restore the employees they reference"
	default:
		return ""
	}
}

func statusIcon(styles *output.Styles, status string) string {
	switch status {
	case StatusWarn:
		return styles.Warning.Render("!")
	case StatusError:
		return styles.StatusFailed.String()
	case StatusSkip:
		return styles.StatusSkipped.String()
	default:
		return styles.StatusSuccess.String()
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("leaprecord Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Printf("   Config: %s\n", out.Config)
	r.Printf("   Driver: %s | Database: %s\n", out.Driver, out.Database)
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		r.Printf("   %s %s: %s\n", statusIcon(styles, check.Status), check.ID, check.Name)
		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println(output.FormatHeader(1, "leaprecord Health Report"))
	r.Println("")
	r.Println(output.FormatKeyValue("Config", out.Config))
	r.Println(output.FormatKeyValue("Driver", out.Driver))
	r.Println(output.FormatKeyValue("Database", out.Database))
	r.Println("")

	titleCaser := cases.Title(language.English)
	currentGroup := ""
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = check.Group
			r.Println(output.FormatHeader(2, titleCaser.String(currentGroup)))
			r.Println("")
		}
		line := fmt.Sprintf("- [%s] %s: %s", check.Status, check.ID, check.Name)
		if len(check.Details) > 0 {
			line += " (" + strings.Join(check.Details, "; ") + ")"
		}
		r.Println(line)
	}
	r.Println("")

	r.Printf("**Health Score:** %d/100\n", out.Score)
	if len(out.Recommendations) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Recommendations"))
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
	}
}

// doctorConfigLabel is the config file label shown when none was loaded.
func doctorConfigLabel() string {
	if f := config.GetConfigFileUsed(); f != "" {
		return f
	}
	return "(defaults)"
}
