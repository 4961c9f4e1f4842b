package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/briefcheck/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	previousPath string
	outPath      string
	strict       bool
	showSummary  bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <brief>",
	Short: "Analyze a brief and attach derived evidence fields",
	Long: `Analyze runs the evidence analysis over a brief document:
- Recount primary and secondary sources for every evidence-strength theme
- Map central, isolated and single-point-of-failure evidence
- Raise coherence alerts across sections
- List changes since the previous version (with --previous)

The augmented brief is written as JSON to --out, or to stdout.

Example:
  briefcheck analyze brief.json
  briefcheck analyze v2.json --previous v1.json --out v2.analyzed.json
  briefcheck analyze brief.yaml --strict --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&previousPath, "previous", "p", "", "previous version of the brief")
	analyzeCmd.Flags().StringVarP(&outPath, "out", "o", "", "output JSON path (default: stdout)")
	analyzeCmd.Flags().BoolVar(&strict, "strict", false, "refuse briefs with dangling evidence references")
	analyzeCmd.Flags().BoolVar(&showSummary, "summary", false, "print a digest to stderr")

	_ = viper.BindPFlag("input.strict", analyzeCmd.Flags().Lookup("strict"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.AnalyzeFiles(context.Background(), args[0], previousPath)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if outPath != "" {
		if err := p.Renderer().RenderJSON(result.Brief, outPath); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outPath)
		}
	} else if err := p.Renderer().WriteJSON(cmd.OutOrStdout(), result.Brief); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if showSummary {
		p.Renderer().RenderSummary(cmd.ErrOrStderr(), result.Brief)
	}
	return nil
}
