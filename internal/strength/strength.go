// Package strength derives the primary and secondary source counts of a
// brief's evidence-strength themes from the evidence index.
package strength

import (
	"github.com/ppiankov/briefcheck/internal/evidence"
	"github.com/ppiankov/briefcheck/internal/model"
)

// Derive overwrites PrimarySourcesCount and SecondarySourcesCount on every
// evidence-strength item of b. It leaves an absent or empty section as it is
// and is idempotent.
func Derive(b *model.Brief) {
	if b == nil || len(b.EvidenceStrength) == 0 {
		return
	}

	index := evidence.NewIndex(b.EvidenceIndex)
	for i := range b.EvidenceStrength {
		Count(&b.EvidenceStrength[i], index)
	}
}

// Count recomputes the derived counts of a single item. Every ref counts
// toward its tier, repeats included; dangling and untiered refs count toward
// neither.
func Count(item *model.EvidenceStrengthItem, index *evidence.Index) {
	primary, secondary := 0, 0

	for _, ref := range item.SupportingRefs {
		switch index.TierOf(ref) {
		case model.TierPrimary:
			primary++
		case model.TierSecondary:
			secondary++
		}
	}

	item.PrimarySourcesCount = &primary
	item.SecondarySourcesCount = &secondary
}
