package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/briefcheck/internal/pipeline"
	"github.com/ppiankov/briefcheck/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Analyze many briefs from a manifest in parallel",
	Long: `Batch analyzes every brief listed in a manifest file concurrently.

Each manifest line names a brief and, optionally, its previous version:

  # current            previous
  acme/v3.json         acme/v2.json
  globex/v1.yaml

Relative paths are resolved against the manifest's directory. Blank lines
and # comments are skipped; repeated lines are analyzed once.

Example:
  briefcheck batch briefs.txt
  briefcheck batch briefs.txt --concurrency 8 --output-dir ./analyzed`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./briefcheck-output", "output directory for analyzed briefs")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	_ = viper.BindPFlag("concurrency.workers", batchCmd.Flags().Lookup("concurrency"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	manifest := args[0]
	errOut := cmd.ErrOrStderr()

	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "  Briefcheck Batch Analysis\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "  Manifest:     %s\n", manifest)
	fmt.Fprintf(errOut, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(errOut, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(errOut, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(errOut, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)

	batch, err := processor.ProcessFile(ctx, manifest)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	failed := batch.Failed
	used := make(map[string]int)
	for _, res := range batch.Results {
		if res.Error != nil {
			fmt.Fprintf(errOut, "✗ %s: %v\n", res.Pair, res.Error)
			continue
		}

		name := outputName(res.Pair.Current, used)
		jsonPath := filepath.Join(outputDir, name)
		if err := p.Renderer().RenderJSON(res.Result.Brief, jsonPath); err != nil {
			failed++
			fmt.Fprintf(errOut, "✗ %s: failed to write JSON: %v\n", res.Pair, err)
			continue
		}

		b := res.Result.Brief
		changes := "first version"
		if b.Changes != nil {
			changes = fmt.Sprintf("%d change(s)", len(*b.Changes))
		}
		fmt.Fprintf(errOut, "✓ %s → %s (%d alert(s), %s)\n", res.Pair.Current, name, len(b.CoherenceAlerts), changes)
	}

	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "  Batch Complete\n")
	fmt.Fprintf(errOut, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(errOut, "\n")
	fmt.Fprintf(errOut, "  Run ID:    %s\n", batch.RunID)
	fmt.Fprintf(errOut, "  Total:     %d briefs\n", len(batch.Results))
	fmt.Fprintf(errOut, "  Success:   %d\n", len(batch.Results)-failed)
	fmt.Fprintf(errOut, "  Failures:  %d\n", failed)
	fmt.Fprintf(errOut, "  Duration:  %v\n", batch.Duration.Round(time.Millisecond))
	fmt.Fprintf(errOut, "  Output:    %s\n", outputDir)
	fmt.Fprintf(errOut, "\n")

	if failed > 0 {
		return fmt.Errorf("%d of %d briefs failed", failed, len(batch.Results))
	}
	return nil
}

// outputName derives a unique output file name from a brief path
func outputName(briefPath string, used map[string]int) string {
	base := strings.TrimSuffix(filepath.Base(briefPath), filepath.Ext(briefPath))
	name := sanitizeFilename(base)
	if name == "" {
		name = "brief"
	}

	used[name]++
	if n := used[name]; n > 1 {
		name = fmt.Sprintf("%s-%d", name, n)
	}
	return name + ".analyzed.json"
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	" ", "-",
)

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	s = filenameReplacer.Replace(s)

	// Limit length
	if len(s) > 100 {
		s = s[:100]
	}

	return s
}
