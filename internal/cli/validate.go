package cli

import (
	"fmt"

	"github.com/ppiankov/briefcheck/internal/pipeline"
	"github.com/ppiankov/briefcheck/internal/validate"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <brief>",
	Short: "Check that every evidence reference resolves",
	Long: `Validate lists every reference in the brief that does not resolve in its
evidence index. Analysis tolerates such references and ignores them; use
this command, or analyze --strict, to catch them before analysis.

Exits with status 2 when issues are found.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	brief, err := pipeline.NewLoader(cfg.Input.MaxBytes).Load(args[0])
	if err != nil {
		return err
	}

	issues := validate.Check(brief)
	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintf(out, "✓ %s: all evidence references resolve\n", args[0])
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintf(out, "✗ %s\n", issue)
	}
	return fmt.Errorf("%s: %w: %d issue(s)", args[0], validate.ErrInvalidBrief, len(issues))
}
