package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/briefcheck/internal/pipeline"
	"github.com/ppiankov/briefcheck/internal/watch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	watchOut      string
	watchDebounce time.Duration
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <brief>",
	Short: "Re-analyze a brief every time it is saved",
	Long: `Watch analyzes a brief, then re-analyzes it after every save. Each save
is diffed against the previous save, so the output always lists what the
last edit changed.

Example:
  briefcheck watch brief.json
  briefcheck watch brief.json --out analyzed.json --debounce 1s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output JSON path (default: <brief>.analyzed.json)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "quiet period before re-analysis")

	_ = viper.BindPFlag("watch.debounce", watchCmd.Flags().Lookup("debounce"))
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(pipeline.NewPipeline(cfg), args[0], watch.Options{
		Output:   watchOut,
		Debounce: cfg.Watch.Debounce,
		Summary:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s → %s (Ctrl+C to stop)\n", args[0], w.Output())
	return w.Run(ctx)
}
