package validate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ppiankov/briefcheck/internal/model"
)

func TestCheck_CleanBrief(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"s1": {}, "s2": {}},
		WorkingTimeline: []model.TimelineItem{
			{Event: "A", SourceIDs: model.Refs{"s1", "s2"}},
		},
	}

	if issues := Check(b); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
	if err := Strict(b); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestCheck_DanglingAndBlankRefs(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"s1": {}},
		WorkingTimeline: []model.TimelineItem{
			{Event: "A", SourceIDs: model.Refs{"s1", "ghost"}},
		},
		Hypotheses: []model.Hypothesis{
			{Hypothesis: "H", EvidenceAgainst: model.Refs{" "}},
		},
	}

	issues := Check(b)

	type summary struct {
		Kind     IssueKind
		Location string
		Ref      string
	}
	var got []summary
	for _, i := range issues {
		got = append(got, summary{i.Kind, i.Location, i.Ref})
	}
	want := []summary{
		{IssueDanglingRef, "working_timeline[0].source_ids", "ghost"},
		{IssueBlankRef, "hypotheses[0].evidence_against", ""},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Issues mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_MissingIndex(t *testing.T) {
	b := &model.Brief{
		KeyEntities: []model.Entity{{Name: "Acme", SourceRefs: model.Refs{"s1"}}},
	}

	issues := Check(b)
	if len(issues) != 1 {
		t.Fatalf("Expected a single missing-index issue, got %d", len(issues))
	}
	if issues[0].Kind != IssueMissingIndex {
		t.Errorf("Expected missing index, got %s", issues[0].Kind)
	}
}

func TestCheck_NoCitationsNoIndex(t *testing.T) {
	b := &model.Brief{ExecutiveOverview: "Nothing cited yet."}
	if issues := Check(b); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}
}

func TestStrict_WrapsSentinel(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex:    model.EvidenceIndex{"s1": {}},
		EvidenceStrength: []model.EvidenceStrengthItem{{Theme: "T", SupportingRefs: model.Refs{"r9"}}},
	}

	err := Strict(b)
	if err == nil {
		t.Fatal("Expected error for dangling reference")
	}
	if !errors.Is(err, ErrInvalidBrief) {
		t.Errorf("Expected ErrInvalidBrief, got %v", err)
	}
}
