package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/briefcheck/internal/diff"
	"github.com/ppiankov/briefcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

var diffJSON bool

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <previous> <current>",
	Short: "List content changes between two versions of a brief",
	Long: `Diff compares two versions of the same brief section by section and
lists added, removed and modified items. Analyst annotations such as the
verified flag on timeline events, and derived fields, are not content.

Example:
  briefcheck diff v1.json v2.json
  briefcheck diff v1.json v2.json --json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "print changes as JSON")
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loader := pipeline.NewLoader(cfg.Input.MaxBytes)
	previous, err := loader.Load(args[0])
	if err != nil {
		return fmt.Errorf("load previous: %w", err)
	}
	current, err := loader.Load(args[1])
	if err != nil {
		return fmt.Errorf("load current: %w", err)
	}

	changes := diff.Changes(previous, current)
	out := cmd.OutOrStdout()

	if diffJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(changes)
	}

	if len(changes) == 0 {
		fmt.Fprintln(out, "No content changes.")
		return nil
	}
	for _, c := range changes {
		line := fmt.Sprintf("%-8s %-20s %s", c.Kind, c.Section, c.Label)
		if c.Detail != "" {
			line += " (" + c.Detail + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
