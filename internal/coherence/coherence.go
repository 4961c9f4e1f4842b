// Package coherence runs deterministic consistency checks across the sections
// of a brief. No rule performs inference; each is a field-level check.
package coherence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/briefcheck/internal/evidence"
	"github.com/ppiankov/briefcheck/internal/model"
)

// Detector runs the coherence rules
type Detector struct {
	cfg        model.CoherenceConfig
	classifier *evidence.Classifier
}

// NewDetector creates a detector; a nil classifier uses the default source lists
func NewDetector(cfg model.CoherenceConfig, classifier *evidence.Classifier) *Detector {
	defaults := model.DefaultConfig().Analysis.Coherence
	if cfg.WeakSourceShare <= 0 || cfg.WeakSourceShare > 1 {
		cfg.WeakSourceShare = defaults.WeakSourceShare
	}
	if cfg.VerifiedMinSources <= 0 {
		cfg.VerifiedMinSources = defaults.VerifiedMinSources
	}
	if classifier == nil {
		classifier = evidence.NewClassifier(nil)
	}
	return &Detector{cfg: cfg, classifier: classifier}
}

// Detect checks b with the default thresholds
func Detect(b *model.Brief) []model.CoherenceAlert {
	return NewDetector(model.CoherenceConfig{}, nil).Detect(b)
}

// Detect runs every rule over b and returns the alerts ordered high, medium,
// low. Order within a severity follows rule order, then document order.
func (d *Detector) Detect(b *model.Brief) []model.CoherenceAlert {
	alerts := []model.CoherenceAlert{}
	if b == nil {
		return alerts
	}

	index := evidence.NewIndex(b.EvidenceIndex)
	alerts = append(alerts, d.checkHypothesisCounterEvidence(b, index)...)
	alerts = append(alerts, d.checkVerifiedSourcing(b, index)...)
	alerts = append(alerts, d.checkHighConfidenceSupport(b, index)...)
	alerts = append(alerts, d.checkUnresolvedContradictions(b, index)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity.Rank() < alerts[j].Severity.Rank()
	})
	return alerts
}

// checkHypothesisCounterEvidence flags high-likelihood hypotheses that list
// evidence against themselves
func (d *Detector) checkHypothesisCounterEvidence(b *model.Brief, index *evidence.Index) []model.CoherenceAlert {
	var alerts []model.CoherenceAlert
	for _, h := range b.Hypotheses {
		if model.ParseLevel(h.Likelihood) != model.LevelHigh {
			continue
		}
		against := nonBlank(h.EvidenceAgainst)
		if len(against) == 0 {
			continue
		}
		alerts = append(alerts, model.CoherenceAlert{
			Rule:     model.RuleHypothesisCounterEvidence,
			Severity: model.SeverityHigh,
			Alert: fmt.Sprintf("Hypothesis %q is rated high likelihood but lists %d item(s) of evidence against it",
				clip(h.Hypothesis), len(against)),
			WhyItMatters:     "A highly likely hypothesis should not have material evidence weighing against it; either the rating or the counter-evidence needs to be reassessed.",
			AffectedSections: []model.Section{model.SectionHypotheses},
			EvidenceIDs:      nonNil(index.ResolveAll(h.EvidenceAgainst)),
		})
	}
	return alerts
}

// checkVerifiedSourcing flags verified timeline events cited by fewer than
// VerifiedMinSources resolvable sources
func (d *Detector) checkVerifiedSourcing(b *model.Brief, index *evidence.Index) []model.CoherenceAlert {
	var alerts []model.CoherenceAlert
	for _, item := range b.WorkingTimeline {
		if !item.Verified {
			continue
		}
		ids := index.ResolveAll(item.SourceIDs)
		if len(ids) >= d.cfg.VerifiedMinSources {
			continue
		}

		severity := model.SeverityMedium
		if len(ids) == 0 {
			severity = model.SeverityHigh
		}
		alerts = append(alerts, model.CoherenceAlert{
			Rule:     model.RuleVerifiedUnderSourced,
			Severity: severity,
			Alert: fmt.Sprintf("Timeline event %q is marked verified but cites %d source(s)",
				clip(item.Event), len(ids)),
			WhyItMatters:     "A verified event should be backed by more than a single mention; otherwise the verification rests on one unchecked source.",
			AffectedSections: []model.Section{model.SectionWorkingTimeline},
			EvidenceIDs:      nonNil(ids),
		})
	}
	return alerts
}

// checkHighConfidenceSupport flags high-confidence timeline events whose
// resolvable sources are mostly weak. Events without any resolvable source
// are left to the verified-sourcing check and the single-point-failure list.
func (d *Detector) checkHighConfidenceSupport(b *model.Brief, index *evidence.Index) []model.CoherenceAlert {
	var alerts []model.CoherenceAlert
	for _, item := range b.WorkingTimeline {
		if model.ParseLevel(item.Confidence) != model.LevelHigh {
			continue
		}

		ids := index.ResolveAll(item.SourceIDs)
		if len(ids) == 0 {
			continue
		}
		var weak []string
		for _, id := range ids {
			if d.classifier.ClassifyID(index, id) == evidence.ClassWeak {
				weak = append(weak, id)
			}
		}
		if float64(len(weak))/float64(len(ids)) <= d.cfg.WeakSourceShare {
			continue
		}

		alerts = append(alerts, model.CoherenceAlert{
			Rule:     model.RuleUnsupportedHighConfidence,
			Severity: model.SeverityMedium,
			Alert: fmt.Sprintf("High-confidence event %q rests mostly on weak sources (%d of %d are social or unverified)",
				clip(item.Event), len(weak), len(ids)),
			WhyItMatters:     "High confidence should come from primary or official material; social and unverified sources alone do not justify it.",
			AffectedSections: []model.Section{model.SectionWorkingTimeline, model.SectionEvidenceIndex},
			EvidenceIDs:      nonNil(ids),
		})
	}
	return alerts
}

// checkUnresolvedContradictions flags contradictions without resolution tasks
func (d *Detector) checkUnresolvedContradictions(b *model.Brief, index *evidence.Index) []model.CoherenceAlert {
	var alerts []model.CoherenceAlert
	for i, c := range b.Contradictions {
		if len(nonBlank(model.Refs(c.ResolutionTasks))) > 0 {
			continue
		}
		issue := c.Issue
		if strings.TrimSpace(issue) == "" {
			issue = fmt.Sprintf("contradiction %d", i+1)
		}
		alerts = append(alerts, model.CoherenceAlert{
			Rule:             model.RuleUnresolvedContradiction,
			Severity:         model.SeverityMedium,
			Alert:            fmt.Sprintf("Contradiction %q has no resolution tasks", clip(issue)),
			WhyItMatters:     "An open contradiction without a plan to resolve it is a process gap; conclusions drawn on either side remain unchecked.",
			AffectedSections: []model.Section{model.SectionContradictions, model.SectionVerificationTasks},
			EvidenceIDs:      nonNil(index.ResolveAll(c.StatementARefs, c.StatementBRefs)),
		})
	}
	return alerts
}

func nonBlank(items model.Refs) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// clip shortens long text for alert messages
func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const limit = 80
	if len([]rune(s)) <= limit {
		return s
	}
	return string([]rune(s)[:limit-1]) + "…"
}
