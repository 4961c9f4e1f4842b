package network

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/briefcheck/internal/evidence"
	"github.com/ppiankov/briefcheck/internal/model"
)

func ids(nodes []model.EvidenceNode) []string {
	out := []string{}
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

// mentionBrief cites s1 in five locations, r1 in two, s2 and s3 in one each
func mentionBrief() *model.Brief {
	return &model.Brief{
		EvidenceIndex: model.EvidenceIndex{
			"s1": {Title: "Registry filing"},
			"s2": {},
			"s3": {},
			"r1": {},
		},
		WorkingTimeline: []model.TimelineItem{
			{Event: "A", SourceIDs: model.Refs{"s1", "s1", "r1"}},
			{Event: "B", SourceIDs: model.Refs{"s1", "s2"}},
		},
		KeyEntities: []model.Entity{
			{Name: "Acme", SourceRefs: model.Refs{"s1", "r1"}},
		},
		Hypotheses: []model.Hypothesis{
			{Hypothesis: "H1", EvidenceFor: model.Refs{"s1"}, EvidenceAgainst: model.Refs{"s3", "ghost"}},
		},
		EvidenceStrength: []model.EvidenceStrengthItem{
			{Theme: "T1", SupportingRefs: model.Refs{"s1"}},
		},
	}
}

func TestMentionCounts_DistinctLocations(t *testing.T) {
	b := mentionBrief()
	counts := MentionCounts(b, evidence.NewIndex(b.EvidenceIndex))

	want := map[string]int{"s1": 5, "r1": 2, "s2": 1, "s3": 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("MentionCounts mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_CentralAndIsolatedDisjoint(t *testing.T) {
	network := Compute(mentionBrief())

	central := ids(network.CentralNodes)
	isolated := ids(network.IsolatedNodes)

	if len(central) == 0 || central[0] != "s1" {
		t.Fatalf("Expected s1 to lead central nodes, got %v", central)
	}
	if network.CentralNodes[0].MentionCount != 5 {
		t.Errorf("Expected s1 mention count 5, got %d", network.CentralNodes[0].MentionCount)
	}
	if network.CentralNodes[0].Label != "Registry filing" {
		t.Errorf("Expected node label from index, got %q", network.CentralNodes[0].Label)
	}

	if diff := cmp.Diff([]string{"s2", "s3"}, isolated); diff != "" {
		t.Errorf("Isolated nodes mismatch (-want +got):\n%s", diff)
	}

	inCentral := make(map[string]bool)
	for _, id := range central {
		inCentral[id] = true
	}
	for _, id := range isolated {
		if inCentral[id] {
			t.Errorf("Expected %s not to be both central and isolated", id)
		}
	}
}

func TestCompute_CentralThreshold(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   []string
	}{
		{
			name:   "Nothing reaches threshold falls back to top mentions",
			counts: map[string]int{"a": 2, "b": 2, "c": 1},
			want:   []string{"a", "b"},
		},
		{
			name:   "Only single mentions yields no central nodes",
			counts: map[string]int{"a": 1, "b": 1},
			want:   []string{},
		},
		{
			name: "Top five with ties included",
			counts: map[string]int{
				"a": 2, "b": 2, "c": 2, "d": 2, "e": 2, "f": 2, "g": 1,
			},
			want: []string{"a", "b", "c", "d", "e", "f"},
		},
		{
			name: "Enough nodes over threshold disables fallback",
			counts: map[string]int{
				"a": 3, "b": 3, "c": 3, "d": 4, "e": 5, "f": 2,
			},
			want: []string{"e", "d", "a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := briefWithCounts(tt.counts)
			got := ids(Compute(b).CentralNodes)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Central nodes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// briefWithCounts builds a brief where each ID is cited by exactly n entities
func briefWithCounts(counts map[string]int) *model.Brief {
	b := &model.Brief{EvidenceIndex: model.EvidenceIndex{}}
	for id, n := range counts {
		b.EvidenceIndex[id] = model.EvidenceEntry{}
		for i := 0; i < n; i++ {
			b.KeyEntities = append(b.KeyEntities, model.Entity{Name: id, SourceRefs: model.Refs{id}})
		}
	}
	return b
}

func TestCompute_SinglePointFailures(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{
			"r1": {Title: "Leaked memo"},
			"r2": {},
		},
		WorkingTimeline: []model.TimelineItem{
			{Event: "Single source", SourceIDs: model.Refs{"r1"}},
			{Event: "Corroborated", SourceIDs: model.Refs{"r1", "r2"}},
			{Event: "Unsourced", SourceIDs: model.Refs{}},
			{Event: "Repeated single source", SourceIDs: model.Refs{"r2", "r2"}},
			{Event: "Dangling plus one", SourceIDs: model.Refs{"r1", "ghost"}},
		},
		Hypotheses: []model.Hypothesis{
			{Hypothesis: "Split support", EvidenceFor: model.Refs{"r1"}, EvidenceAgainst: model.Refs{"r2"}},
		},
	}

	got := Compute(b).SinglePointFailures
	want := []model.SinglePointFailure{
		{Area: model.SectionWorkingTimeline, Claim: "Single source", Dependencies: []string{"r1"}, Label: "Leaked memo"},
		{Area: model.SectionWorkingTimeline, Claim: "Repeated single source", Dependencies: []string{"r2"}},
		{Area: model.SectionWorkingTimeline, Claim: "Dangling plus one", Dependencies: []string{"r1"}, Label: "Leaked memo"},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SinglePointFailures mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_ContradictionSidesAreSeparateClaims(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"r1": {}, "r2": {}, "r3": {}},
		Contradictions: []model.Contradiction{{
			Issue:          "Owner",
			StatementA:     "Owned by X",
			StatementARefs: model.Refs{"r1"},
			StatementB:     "Owned by Y",
			StatementBRefs: model.Refs{"r2", "r3"},
		}},
	}

	spfs := Compute(b).SinglePointFailures
	if len(spfs) != 1 {
		t.Fatalf("Expected only side A to be a single point of failure, got %d", len(spfs))
	}
	if spfs[0].Claim != "Owned by X" {
		t.Errorf("Expected side A claim, got %q", spfs[0].Claim)
	}
}

func TestCompute_ConfigurableSPFPolicy(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"r1": {}, "r2": {}},
		WorkingTimeline: []model.TimelineItem{
			{Event: "Two sources", SourceIDs: model.Refs{"r1", "r2"}},
		},
	}

	analyzer := NewAnalyzer(model.NetworkConfig{SPFMaxDependencies: 2})
	spfs := analyzer.Compute(b).SinglePointFailures
	if len(spfs) != 1 {
		t.Fatalf("Expected claim with two sources flagged under max 2, got %d", len(spfs))
	}
	if spfs[0].Label != "" {
		t.Errorf("Expected no label for multi-dependency entry, got %q", spfs[0].Label)
	}
}

func TestCompute_EmptyAndNil(t *testing.T) {
	for _, b := range []*model.Brief{nil, {}} {
		network := Compute(b)
		if network.CentralNodes == nil || network.IsolatedNodes == nil || network.SinglePointFailures == nil {
			t.Error("Expected non-nil empty slices")
		}
		if len(network.CentralNodes)+len(network.IsolatedNodes)+len(network.SinglePointFailures) != 0 {
			t.Error("Expected empty network")
		}
	}
}

func TestCompute_DoesNotModifyBrief(t *testing.T) {
	b := mentionBrief()
	Compute(b)
	if b.EvidenceNetwork != nil {
		t.Error("Expected Compute to leave the brief untouched")
	}
}
