package extract

import (
	"fmt"

	"github.com/ppiankov/briefcheck/internal/model"
)

// Citation is one field of the brief that cites evidence. Each citation
// counts as a single location no matter how often it repeats an ID.
type Citation struct {
	Section  model.Section
	Location string // e.g. "working_timeline[2].source_ids"
	Refs     model.Refs
}

// CitationExtractor pulls the citing fields out of one brief section
type CitationExtractor func(b *model.Brief) []Citation

// CitationExtractors lists the extractors run by Citations, in section order
var CitationExtractors = []CitationExtractor{
	TimelineCitations,
	EntityCitations,
	ContradictionCitations,
	HypothesisCitations,
	VerificationCitations,
	StrengthCitations,
}

// Citations returns every citing field of the brief, in document order
func Citations(b *model.Brief) []Citation {
	if b == nil {
		return nil
	}
	var out []Citation
	for _, extract := range CitationExtractors {
		out = append(out, extract(b)...)
	}
	return out
}

// TimelineCitations extracts working_timeline[].source_ids
func TimelineCitations(b *model.Brief) []Citation {
	var out []Citation
	for i, item := range b.WorkingTimeline {
		out = append(out, citation(model.SectionWorkingTimeline, i, "source_ids", item.SourceIDs))
	}
	return out
}

// EntityCitations extracts key_entities[].source_refs
func EntityCitations(b *model.Brief) []Citation {
	var out []Citation
	for i, entity := range b.KeyEntities {
		out = append(out, citation(model.SectionKeyEntities, i, "source_refs", entity.SourceRefs))
	}
	return out
}

// ContradictionCitations extracts both statement sides of each contradiction
func ContradictionCitations(b *model.Brief) []Citation {
	var out []Citation
	for i, c := range b.Contradictions {
		out = append(out,
			citation(model.SectionContradictions, i, "statement_a_refs", c.StatementARefs),
			citation(model.SectionContradictions, i, "statement_b_refs", c.StatementBRefs),
		)
	}
	return out
}

// HypothesisCitations extracts evidence_for and evidence_against
func HypothesisCitations(b *model.Brief) []Citation {
	var out []Citation
	for i, h := range b.Hypotheses {
		out = append(out,
			citation(model.SectionHypotheses, i, "evidence_for", h.EvidenceFor),
			citation(model.SectionHypotheses, i, "evidence_against", h.EvidenceAgainst),
		)
	}
	return out
}

// VerificationCitations extracts verification_tasks[].related_refs
func VerificationCitations(b *model.Brief) []Citation {
	var out []Citation
	for i, task := range b.VerificationTasks {
		out = append(out, citation(model.SectionVerificationTasks, i, "related_refs", task.RelatedRefs))
	}
	return out
}

// StrengthCitations extracts evidence_strength[].supporting_refs
func StrengthCitations(b *model.Brief) []Citation {
	var out []Citation
	for i, item := range b.EvidenceStrength {
		out = append(out, citation(model.SectionEvidenceStrength, i, "supporting_refs", item.SupportingRefs))
	}
	return out
}

func citation(section model.Section, idx int, field string, refs model.Refs) Citation {
	return Citation{
		Section:  section,
		Location: fmt.Sprintf("%s[%d].%s", section, idx, field),
		Refs:     refs,
	}
}
