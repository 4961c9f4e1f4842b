// Package watch re-analyzes a brief every time it is saved, diffing each
// save against the one before it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ppiankov/briefcheck/internal/logging"
	"github.com/ppiankov/briefcheck/internal/model"
	"github.com/ppiankov/briefcheck/internal/pipeline"
)

// ErrOutputIsInput is returned when the output path would overwrite the
// watched brief
var ErrOutputIsInput = errors.New("output path equals watched brief")

// Options configures a Watcher
type Options struct {
	Output   string        // Defaults to <brief>.analyzed.json
	Debounce time.Duration // Quiet period before a burst of events is handled
	Summary  io.Writer     // Optional digest after each pass
}

// Watcher follows one brief file
type Watcher struct {
	pipeline *pipeline.Pipeline
	path     string
	output   string
	debounce time.Duration
	summary  io.Writer
	previous *model.Brief
	log      *slog.Logger
}

// New creates a watcher for the brief at path
func New(p *pipeline.Pipeline, path string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve brief path: %w", err)
	}

	output := opts.Output
	if output == "" {
		output = strings.TrimSuffix(abs, filepath.Ext(abs)) + ".analyzed.json"
	}
	if output, err = filepath.Abs(output); err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}
	if output == abs {
		return nil, fmt.Errorf("%w: %s", ErrOutputIsInput, abs)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	return &Watcher{
		pipeline: p,
		path:     abs,
		output:   output,
		debounce: debounce,
		summary:  opts.Summary,
		log:      logging.New("watch").With("brief", abs),
	}, nil
}

// Output returns the path analyzed briefs are written to
func (w *Watcher) Output() string { return w.output }

// Run analyzes the brief once, then again after every save until ctx is
// done. The parent directory is watched so editors that replace the file
// on save are followed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	if _, err := w.handle(); err != nil {
		w.log.Warn("initial analysis failed", "error", err)
	}

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			if _, err := w.handle(); err != nil {
				w.log.Warn("analysis failed", "error", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// relevant reports whether ev is a write or re-creation of the brief
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create) != 0
}

// handle loads the brief, analyzes it against the last analyzed save and
// writes the result
func (w *Watcher) handle() (*model.Brief, error) {
	current, err := w.pipeline.Loader().Load(w.path)
	if err != nil {
		return nil, err
	}

	analyzed := w.pipeline.Analyze(current, w.previous)
	if err := w.pipeline.Renderer().RenderJSON(analyzed, w.output); err != nil {
		return nil, err
	}

	changes := -1
	if analyzed.Changes != nil {
		changes = len(*analyzed.Changes)
	}
	w.log.Info("brief analyzed",
		"output", w.output,
		"alerts", len(analyzed.CoherenceAlerts),
		"changes", changes,
	)

	if w.summary != nil {
		w.pipeline.Renderer().RenderSummary(w.summary, analyzed)
	}

	w.previous = analyzed
	return analyzed, nil
}
