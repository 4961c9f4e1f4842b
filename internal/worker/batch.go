package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/briefcheck/internal/logging"
	"github.com/ppiankov/briefcheck/internal/pipeline"
)

// ErrNotRun marks manifest entries skipped because the batch was cancelled
var ErrNotRun = errors.New("not run")

// Analyzer analyzes a brief file against an optional previous version
type Analyzer interface {
	AnalyzeFiles(ctx context.Context, currentPath, previousPath string) (*pipeline.Result, error)
}

// BriefPair names a brief and, optionally, the version it supersedes
type BriefPair struct {
	Current  string `json:"current"`
	Previous string `json:"previous,omitempty"`
}

func (p BriefPair) String() string {
	if p.Previous == "" {
		return p.Current
	}
	return p.Current + " (previous: " + p.Previous + ")"
}

// AnalyzeJob analyzes one brief pair
type AnalyzeJob struct {
	Index    int
	Pair     BriefPair
	Analyzer Analyzer
}

// Execute executes the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	result, err := j.Analyzer.AnalyzeFiles(ctx, j.Pair.Current, j.Pair.Previous)
	return &AnalyzeResult{
		Index:  j.Index,
		Pair:   j.Pair,
		Result: result,
		Error:  err,
	}
}

// AnalyzeResult is the outcome of one brief pair
type AnalyzeResult struct {
	Index  int
	Pair   BriefPair
	Result *pipeline.Result
	Error  error
}

// GetError returns the error from the analysis
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// Batch is the outcome of a batch run, results in manifest order
type Batch struct {
	RunID     string
	Results   []*AnalyzeResult
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// BatchProcessor analyzes many brief pairs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	log         *slog.Logger
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		log:         logging.New("batch"),
	}
}

// ProcessPairs analyzes every pair and returns the results in input order.
// Pairs that never ran because ctx was cancelled carry ErrNotRun.
func (b *BatchProcessor) ProcessPairs(ctx context.Context, pairs []BriefPair) *Batch {
	batch := &Batch{
		RunID:   uuid.NewString(),
		Results: make([]*AnalyzeResult, len(pairs)),
	}
	if len(pairs) == 0 {
		return batch
	}

	log := b.log.With("run_id", batch.RunID)
	log.Info("batch started", "pairs", len(pairs), "workers", b.concurrency)
	start := time.Now()

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, pair := range pairs {
		if !pool.Submit(&AnalyzeJob{Index: i, Pair: pair, Analyzer: b.analyzer}) {
			break
		}
	}

	for _, r := range pool.Wait() {
		res := r.(*AnalyzeResult)
		batch.Results[res.Index] = res
	}

	for i, res := range batch.Results {
		if res == nil {
			res = &AnalyzeResult{Index: i, Pair: pairs[i], Error: ErrNotRun}
			if err := ctx.Err(); err != nil {
				res.Error = fmt.Errorf("%w: %w", ErrNotRun, err)
			}
			batch.Results[i] = res
		}
		if res.Error != nil {
			batch.Failed++
			log.Warn("brief failed", "brief", res.Pair.Current, "error", res.Error)
			continue
		}
		batch.Succeeded++
	}

	batch.Duration = time.Since(start)
	log.Info("batch finished",
		"succeeded", batch.Succeeded, "failed", batch.Failed, "duration", batch.Duration)
	return batch
}

// ProcessFile reads a manifest and analyzes its brief pairs
func (b *BatchProcessor) ProcessFile(ctx context.Context, manifest string) (*Batch, error) {
	pairs, err := ReadManifest(manifest)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPairs(ctx, pairs), nil
}

// ReadManifest reads brief pairs, one per line as "current [previous]".
// Blank lines and # comments are skipped, duplicates dropped, and relative
// paths resolved against the manifest's directory.
func ReadManifest(path string) ([]BriefPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(path)

	var pairs []BriefPair
	seen := make(map[BriefPair]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected \"current [previous]\", got %d fields", lineNo, len(fields))
		}

		pair := BriefPair{Current: resolvePath(base, fields[0])}
		if len(fields) == 2 {
			pair.Previous = resolvePath(base, fields[1])
		}

		if !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return pairs, nil
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
