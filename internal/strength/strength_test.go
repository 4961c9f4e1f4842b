package strength

import (
	"encoding/json"
	"testing"

	"github.com/ppiankov/briefcheck/internal/model"
)

func intPtr(n int) *int { return &n }

func counts(item model.EvidenceStrengthItem) (int, int) {
	p, s := -1, -1
	if item.PrimarySourcesCount != nil {
		p = *item.PrimarySourcesCount
	}
	if item.SecondarySourcesCount != nil {
		s = *item.SecondarySourcesCount
	}
	return p, s
}

func testBrief() *model.Brief {
	return &model.Brief{
		EvidenceIndex: model.EvidenceIndex{
			"s1": {SourceTier: model.TierPrimary},
			"s2": {SourceTier: model.TierSecondary},
			"s3": {SourceTier: model.TierSecondary},
			"n1": {Type: "note"},
		},
		EvidenceStrength: []model.EvidenceStrengthItem{
			{Theme: "Ownership", SupportingRefs: model.Refs{"s1", "s2", "s3", "n1"}},
			{Theme: "Location", SupportingRefs: model.Refs{"s2"}},
		},
	}
}

func TestDerive_Counts(t *testing.T) {
	b := testBrief()
	Derive(b)

	tests := []struct {
		idx       int
		primary   int
		secondary int
	}{
		{idx: 0, primary: 1, secondary: 2},
		{idx: 1, primary: 0, secondary: 1},
	}

	for _, tt := range tests {
		p, s := counts(b.EvidenceStrength[tt.idx])
		if p != tt.primary || s != tt.secondary {
			t.Errorf("Item %d: expected %d/%d, got %d/%d", tt.idx, tt.primary, tt.secondary, p, s)
		}
	}
}

func TestDerive_Idempotent(t *testing.T) {
	b := testBrief()
	Derive(b)
	p1, s1 := counts(b.EvidenceStrength[0])

	Derive(b)
	p2, s2 := counts(b.EvidenceStrength[0])

	if p1 != p2 || s1 != s2 {
		t.Errorf("Expected identical counts on second run, got %d/%d then %d/%d", p1, s1, p2, s2)
	}
}

func TestDerive_OverwritesGeneratorCounts(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"s1": {SourceTier: model.TierPrimary}},
		EvidenceStrength: []model.EvidenceStrengthItem{{
			Theme:                 "Funding",
			SupportingRefs:        model.Refs{"s1"},
			PrimarySourcesCount:   intPtr(99),
			SecondarySourcesCount: intPtr(7),
		}},
	}

	Derive(b)

	p, s := counts(b.EvidenceStrength[0])
	if p != 1 {
		t.Errorf("Expected primary count corrected to 1, got %d", p)
	}
	if s != 0 {
		t.Errorf("Expected secondary count corrected to 0, got %d", s)
	}
}

func TestDerive_DanglingRefs(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{"s1": {SourceTier: model.TierPrimary}},
		EvidenceStrength: []model.EvidenceStrengthItem{{
			Theme:          "Timeline",
			SupportingRefs: model.Refs{"s1", "ghost"},
		}},
	}

	Derive(b)

	p, s := counts(b.EvidenceStrength[0])
	if p != 1 || s != 0 {
		t.Errorf("Expected 1/0 with ghost ignored, got %d/%d", p, s)
	}
}

func TestDerive_DuplicateRefsCountEachTime(t *testing.T) {
	b := &model.Brief{
		EvidenceIndex: model.EvidenceIndex{
			"s1": {SourceTier: model.TierPrimary},
			"s2": {SourceTier: model.TierSecondary},
		},
		EvidenceStrength: []model.EvidenceStrengthItem{{
			SupportingRefs: model.Refs{"s1", "s1", " s2", "s2", "ghost", "ghost"},
		}},
	}

	Derive(b)

	if p, s := counts(b.EvidenceStrength[0]); p != 2 || s != 2 {
		t.Errorf("Expected each repeated ref counted, got %d/%d", p, s)
	}
}

func TestDerive_MalformedRefs(t *testing.T) {
	// supporting_refs is a string, not an array
	raw := `{
		"evidence_index": {"s1": {"source_tier": "primary"}},
		"evidence_strength": [
			{"theme": "Malformed", "supporting_refs": "s1", "primary_sources_count": 4},
			{"theme": "Mixed", "supporting_refs": ["s1", 42, null]}
		]
	}`

	var b model.Brief
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("Expected malformed refs to decode, got %v", err)
	}

	Derive(&b)

	if p, s := counts(b.EvidenceStrength[0]); p != 0 || s != 0 {
		t.Errorf("Expected 0/0 for non-array refs, got %d/%d", p, s)
	}
	if p, s := counts(b.EvidenceStrength[1]); p != 1 || s != 0 {
		t.Errorf("Expected non-string refs ignored, got %d/%d", p, s)
	}
}

func TestDerive_EmptyInputs(t *testing.T) {
	absent := &model.Brief{}
	Derive(absent)
	if absent.EvidenceStrength != nil {
		t.Error("Expected absent section to stay nil")
	}

	empty := &model.Brief{EvidenceStrength: []model.EvidenceStrengthItem{}}
	Derive(empty)
	if empty.EvidenceStrength == nil || len(empty.EvidenceStrength) != 0 {
		t.Error("Expected empty section to stay empty")
	}

	// Should not panic
	Derive(nil)
}
