package commands

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leaprecord/internal/cli/output"
	"github.com/leapstack-labs/leaprecord/internal/seed"
)

// DefaultSeedFile is the seed file read when --file is not given.
const DefaultSeedFile = "seed.yaml"

// SeedOutput is the JSON output for the seed command.
type SeedOutput struct {
	File      string `json:"file"`
	Employees int    `json:"employees"`
	Reviews   int    `json:"reviews"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load employees and reviews from a YAML seed file",
		Long: `Load employees and their reviews from a YAML seed file.

Every record is validated before any row is written; an invalid file leaves
the database untouched.

Seed file format:
  employees:
    - name: Ada Lovelace
      job_title: Analyst
      reviews:
        - year: 2023
          text: Invented programming

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Load ./seed.yaml
  leaprecord seed

  # Load a specific file as JSON output
  leaprecord seed --file data/staff.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", DefaultSeedFile, "Path to the seed file")
	return cmd
}

func runSeed(cmd *cobra.Command, path string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := cmdCtx.RequireTables(cmd.Context()); err != nil {
		return err
	}

	if !filepath.IsAbs(path) && cmdCtx.Cfg.ProjectRoot != "" && !cmd.Flags().Changed("file") {
		path = filepath.Join(cmdCtx.Cfg.ProjectRoot, path)
	}

	file, err := seed.Load(path)
	if err != nil {
		return err
	}

	result, err := seed.Apply(cmd.Context(), cmdCtx.Records, file, cmdCtx.Logger)
	if err != nil {
		return fmt.Errorf("failed to seed from %s: %w", path, err)
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(SeedOutput{File: path, Employees: result.Employees, Reviews: result.Reviews})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Seed Loaded"))
		r.Println("")
		r.Println(output.FormatKeyValue("File", path))
		r.Println(output.FormatKeyValue("Employees", strconv.Itoa(result.Employees)))
		r.Println(output.FormatKeyValue("Reviews", strconv.Itoa(result.Reviews)))
	default:
		r.Header(2, "Seed Loaded")
		r.StatusLine("employees", "success", fmt.Sprintf("%d inserted", result.Employees))
		r.StatusLine("reviews", "success", fmt.Sprintf("%d inserted", result.Reviews))
		r.Println("")
		r.Muted("Source: " + path)
	}
	return nil
}
