// Package pipeline loads briefs, runs the analyzers over them in a fixed
// order and renders the augmented document.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/briefcheck/internal/coherence"
	"github.com/ppiankov/briefcheck/internal/diff"
	"github.com/ppiankov/briefcheck/internal/evidence"
	"github.com/ppiankov/briefcheck/internal/logging"
	"github.com/ppiankov/briefcheck/internal/model"
	"github.com/ppiankov/briefcheck/internal/network"
	"github.com/ppiankov/briefcheck/internal/strength"
	"github.com/ppiankov/briefcheck/internal/validate"
)

// Pipeline orchestrates one analysis pass
type Pipeline struct {
	loader    *Loader
	network   *network.Analyzer
	coherence *coherence.Detector
	renderer  *Renderer
	log       *slog.Logger
	config    *model.Config
}

// NewPipeline creates a pipeline; a nil config uses the defaults
func NewPipeline(cfg *model.Config) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	return &Pipeline{
		loader:    NewLoader(cfg.Input.MaxBytes),
		network:   network.NewAnalyzer(cfg.Analysis.Network),
		coherence: coherence.NewDetector(cfg.Analysis.Coherence, evidence.NewClassifier(&cfg.Classification)),
		renderer:  NewRenderer(cfg.Output.Pretty),
		log:       logging.New("pipeline"),
		config:    cfg,
	}
}

// Loader returns the pipeline's brief loader
func (p *Pipeline) Loader() *Loader { return p.loader }

// Renderer returns the pipeline's renderer
func (p *Pipeline) Renderer() *Renderer { return p.renderer }

// Analyze runs evidence strength, evidence network, coherence alerts and the
// version diff over current, attaching each result to it, and returns
// current. Derived fields are always regenerated; the change set is present
// only when previous is non-nil.
func (p *Pipeline) Analyze(current, previous *model.Brief) *model.Brief {
	if current == nil {
		return nil
	}

	strength.Derive(current)

	net := p.network.Compute(current)
	current.EvidenceNetwork = &net

	current.CoherenceAlerts = p.coherence.Detect(current)
	current.Changes = diff.ChangeSet(previous, current)

	p.log.Debug("brief analyzed",
		"title", current.Title,
		"central", len(net.CentralNodes),
		"isolated", len(net.IsolatedNodes),
		"spf", len(net.SinglePointFailures),
		"alerts", len(current.CoherenceAlerts),
		"has_previous", previous != nil,
	)
	return current
}

// Result is the outcome of analyzing a brief file
type Result struct {
	Path         string
	PreviousPath string
	Brief        *model.Brief
	Issues       []validate.Issue
}

// AnalyzeFiles loads the brief at currentPath (and previousPath when set),
// checks its referential integrity and analyzes it. In strict mode a brief
// with integrity issues is refused with an error wrapping
// validate.ErrInvalidBrief.
func (p *Pipeline) AnalyzeFiles(ctx context.Context, currentPath, previousPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := p.loader.Load(currentPath)
	if err != nil {
		return nil, fmt.Errorf("load current: %w", err)
	}

	var previous *model.Brief
	if previousPath != "" {
		previous, err = p.loader.Load(previousPath)
		if err != nil {
			return nil, fmt.Errorf("load previous: %w", err)
		}
	}

	issues := validate.Check(current)
	if len(issues) > 0 {
		if p.config.Input.Strict {
			return nil, fmt.Errorf("%s: %w", currentPath, validate.Strict(current))
		}
		p.log.Warn("brief has integrity issues; dangling references are ignored",
			"path", currentPath, "issues", len(issues), "first", issues[0].String())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Path:         currentPath,
		PreviousPath: previousPath,
		Brief:        p.Analyze(current, previous),
		Issues:       issues,
	}, nil
}
