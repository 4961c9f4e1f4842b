package coherence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/briefcheck/internal/model"
)

func byRule(alerts []model.CoherenceAlert, rule model.AlertRule) []model.CoherenceAlert {
	var out []model.CoherenceAlert
	for _, a := range alerts {
		if a.Rule == rule {
			out = append(out, a)
		}
	}
	return out
}

func TestDetect_HypothesisCounterEvidence(t *testing.T) {
	index := model.EvidenceIndex{"r1": {}}

	tests := []struct {
		name       string
		hypothesis model.Hypothesis
		expected   int
	}{
		{
			name:       "High likelihood with counter-evidence",
			hypothesis: model.Hypothesis{Hypothesis: "Insider leak", Likelihood: "high", EvidenceAgainst: model.Refs{"r1"}},
			expected:   1,
		},
		{
			name:       "High likelihood without counter-evidence",
			hypothesis: model.Hypothesis{Hypothesis: "Insider leak", Likelihood: "high", EvidenceAgainst: model.Refs{}},
			expected:   0,
		},
		{
			name:       "Blank counter-evidence entries are ignored",
			hypothesis: model.Hypothesis{Hypothesis: "Insider leak", Likelihood: "High", EvidenceAgainst: model.Refs{" "}},
			expected:   0,
		},
		{
			name:       "Medium likelihood with counter-evidence",
			hypothesis: model.Hypothesis{Hypothesis: "Insider leak", Likelihood: "medium", EvidenceAgainst: model.Refs{"r1"}},
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &model.Brief{EvidenceIndex: index, Hypotheses: []model.Hypothesis{tt.hypothesis}}
			alerts := byRule(Detect(b), model.RuleHypothesisCounterEvidence)
			if len(alerts) != tt.expected {
				t.Fatalf("Expected %d alerts, got %d", tt.expected, len(alerts))
			}
			if tt.expected > 0 {
				if alerts[0].Severity != model.SeverityHigh {
					t.Errorf("Expected high severity, got %s", alerts[0].Severity)
				}
				if diff := cmp.Diff([]string{"r1"}, alerts[0].EvidenceIDs); diff != "" {
					t.Errorf("Evidence IDs mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestDetect_VerifiedUnderSourced(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"s1": {}, "s2": {}},
		WorkingTimeline: []model.TimelineItem{
			{Event: "No sources", Verified: true},
			{Event: "One source", Verified: true, SourceIDs: model.Refs{"s1"}},
			{Event: "One source and a ghost", Verified: true, SourceIDs: model.Refs{"s1", "ghost"}},
			{Event: "Two sources", Verified: true, SourceIDs: model.Refs{"s1", "s2"}},
			{Event: "Unverified single", SourceIDs: model.Refs{"s1"}},
		},
	}

	alerts := byRule(Detect(b), model.RuleVerifiedUnderSourced)
	if len(alerts) != 3 {
		t.Fatalf("Expected 3 alerts, got %d", len(alerts))
	}
	if alerts[0].Severity != model.SeverityHigh {
		t.Errorf("Expected unsourced verified event to be high, got %s", alerts[0].Severity)
	}
	if alerts[1].Severity != model.SeverityMedium {
		t.Errorf("Expected single-source verified event to be medium, got %s", alerts[1].Severity)
	}
}

func TestDetect_UnsupportedHighConfidence(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{
			"x1": {Type: "social", URL: "https://x.com/a/status/1"},
			"x2": {Type: "result", URL: "https://www.reddit.com/r/a"},
			"g1": {Type: "official", URL: "https://records.example.gov/1"},
			"n1": {Type: "result", URL: "https://news.example.com/1"},
		},
		WorkingTimeline: []model.TimelineItem{
			{Event: "Social only", Confidence: "high", SourceIDs: model.Refs{"x1", "x2"}},
			{Event: "Mostly social", Confidence: "high", SourceIDs: model.Refs{"x1", "x2", "g1"}},
			{Event: "Half social", Confidence: "high", SourceIDs: model.Refs{"x1", "n1"}},
			{Event: "Official", Confidence: "high", SourceIDs: model.Refs{"g1"}},
			{Event: "Nothing resolvable", Confidence: "high", SourceIDs: model.Refs{"ghost"}},
			{Event: "Low confidence social", Confidence: "low", SourceIDs: model.Refs{"x1"}},
		},
	}

	alerts := byRule(Detect(b), model.RuleUnsupportedHighConfidence)

	var got []string
	for _, a := range alerts {
		got = append(got, a.Alert)
		if a.Severity != model.SeverityMedium {
			t.Errorf("Expected medium severity, got %s", a.Severity)
		}
	}
	want := []string{
		`High-confidence event "Social only" rests mostly on weak sources (2 of 2 are social or unverified)`,
		`High-confidence event "Mostly social" rests mostly on weak sources (2 of 3 are social or unverified)`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestDetect_WeakShareIsConfigurable(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{
			"x1": {Type: "social"},
			"n1": {Type: "result"},
		},
		WorkingTimeline: []model.TimelineItem{
			{Event: "Half social", Confidence: "high", SourceIDs: model.Refs{"x1", "n1"}},
		},
	}

	strict := NewDetector(model.CoherenceConfig{WeakSourceShare: 0.4}, nil)
	if got := byRule(strict.Detect(b), model.RuleUnsupportedHighConfidence); len(got) != 1 {
		t.Errorf("Expected alert with lower weak share threshold, got %d", len(got))
	}
}

func TestDetect_UnresolvedContradictions(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"a1": {}, "b1": {}},
		Contradictions: []model.Contradiction{
			{Issue: "Owner", StatementARefs: model.Refs{"a1"}, StatementBRefs: model.Refs{"b1", "ghost"}},
			{Issue: "Date", ResolutionTasks: model.TextList{"Request registry extract"}},
			{Issue: "Location", ResolutionTasks: model.TextList{"", "  "}},
		},
	}

	alerts := byRule(Detect(b), model.RuleUnresolvedContradiction)
	if len(alerts) != 2 {
		t.Fatalf("Expected 2 alerts, got %d", len(alerts))
	}
	if diff := cmp.Diff([]string{"a1", "b1"}, alerts[0].EvidenceIDs); diff != "" {
		t.Errorf("Evidence IDs mismatch (-want +got):\n%s", diff)
	}
	if alerts[1].Alert != `Contradiction "Location" has no resolution tasks` {
		t.Errorf("Unexpected alert text: %s", alerts[1].Alert)
	}
}

func TestDetect_SortedBySeverity(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"r1": {}, "s1": {}},
		Contradictions: []model.Contradiction{
			{Issue: "Open question"},
		},
		WorkingTimeline: []model.TimelineItem{
			{Event: "Verified once", Verified: true, SourceIDs: model.Refs{"s1"}},
		},
		Hypotheses: []model.Hypothesis{
			{Hypothesis: "Likely", Likelihood: "high", EvidenceAgainst: model.Refs{"r1"}},
		},
	}

	alerts := Detect(b)
	var got []model.Severity
	for _, a := range alerts {
		got = append(got, a.Severity)
	}
	want := []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityMedium}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Severity order mismatch (-want +got):\n%s", diff)
	}

	// Within medium, rule order holds: verified sourcing before contradictions
	if alerts[1].Rule != model.RuleVerifiedUnderSourced || alerts[2].Rule != model.RuleUnresolvedContradiction {
		t.Errorf("Expected stable rule order within a severity, got %s then %s", alerts[1].Rule, alerts[2].Rule)
	}
}

func TestDetect_MissingSections(t *testing.T) {
	alerts := Detect(&model.Brief{})
	if alerts == nil || len(alerts) != 0 {
		t.Errorf("Expected empty non-nil alerts, got %v", alerts)
	}
	if got := Detect(nil); len(got) != 0 {
		t.Errorf("Expected no alerts for nil brief, got %d", len(got))
	}
}
