// Package extract walks the sections of a brief and pulls out the fields that
// cite evidence and the claim-bearing units that depend on it. Each section
// has its own extractor so its citation shape stays local.
package extract

import (
	"fmt"
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
)

// Claim is one assertion of the brief together with everything it cites
type Claim struct {
	Area        model.Section
	Description string
	Refs        []model.Refs // Every citing field of the claim; the union is its support
}

// ClaimExtractor pulls the claim-bearing units out of one brief section
type ClaimExtractor func(b *model.Brief) []Claim

// ClaimExtractors lists the extractors run by Claims, in section order
var ClaimExtractors = []ClaimExtractor{
	TimelineClaims,
	ContradictionClaims,
	HypothesisClaims,
	StrengthClaims,
}

// Claims returns every claim-bearing unit of the brief, in document order
func Claims(b *model.Brief) []Claim {
	if b == nil {
		return nil
	}
	var out []Claim
	for _, extract := range ClaimExtractors {
		out = append(out, extract(b)...)
	}
	return out
}

// TimelineClaims treats each timeline event as a claim
func TimelineClaims(b *model.Brief) []Claim {
	var out []Claim
	for i, item := range b.WorkingTimeline {
		desc := item.Event
		if item.Date != "" {
			desc = item.Date + ": " + item.Event
		}
		out = append(out, Claim{
			Area:        model.SectionWorkingTimeline,
			Description: describe(desc, model.SectionWorkingTimeline, i),
			Refs:        []model.Refs{item.SourceIDs},
		})
	}
	return out
}

// ContradictionClaims treats each side of a contradiction as its own claim
func ContradictionClaims(b *model.Brief) []Claim {
	var out []Claim
	for i, c := range b.Contradictions {
		out = append(out,
			Claim{
				Area:        model.SectionContradictions,
				Description: describe(sideText(c.Issue, c.StatementA, "A"), model.SectionContradictions, i),
				Refs:        []model.Refs{c.StatementARefs},
			},
			Claim{
				Area:        model.SectionContradictions,
				Description: describe(sideText(c.Issue, c.StatementB, "B"), model.SectionContradictions, i),
				Refs:        []model.Refs{c.StatementBRefs},
			},
		)
	}
	return out
}

// HypothesisClaims treats each hypothesis as a claim citing both evidence lists
func HypothesisClaims(b *model.Brief) []Claim {
	var out []Claim
	for i, h := range b.Hypotheses {
		out = append(out, Claim{
			Area:        model.SectionHypotheses,
			Description: describe(h.Hypothesis, model.SectionHypotheses, i),
			Refs:        []model.Refs{h.EvidenceFor, h.EvidenceAgainst},
		})
	}
	return out
}

// StrengthClaims treats each evidence-strength theme as a claim
func StrengthClaims(b *model.Brief) []Claim {
	var out []Claim
	for i, item := range b.EvidenceStrength {
		out = append(out, Claim{
			Area:        model.SectionEvidenceStrength,
			Description: describe(item.Theme, model.SectionEvidenceStrength, i),
			Refs:        []model.Refs{item.SupportingRefs},
		})
	}
	return out
}

func sideText(issue, statement, side string) string {
	switch {
	case statement != "":
		return statement
	case issue != "":
		return fmt.Sprintf("%s (side %s)", issue, side)
	default:
		return ""
	}
}

// describe falls back to a positional label for claims without text
func describe(text string, section model.Section, idx int) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return fmt.Sprintf("%s[%d]", section, idx)
	}
	return text
}
