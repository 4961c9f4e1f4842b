package diff

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
)

// field is one substantive value of an item, compared by name across versions
type field struct {
	name  string
	value string
}

// item is a diffable unit of a list section. key matches an item across
// versions; fields make up its fingerprint.
type item struct {
	key    string
	label  string
	fields []field
}

// fingerprint hashes the item's fields in their declared order
func (it item) fingerprint() string {
	h := sha256.New()
	for _, f := range it.fields {
		fmt.Fprintf(h, "%s=%d:%s\x1e", f.name, len(f.value), f.value)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// changedFields names the fields whose values differ from prev
func (it item) changedFields(prev item) []string {
	old := make(map[string]string, len(prev.fields))
	for _, f := range prev.fields {
		old[f.name] = f.value
	}
	var changed []string
	for _, f := range it.fields {
		if v, ok := old[f.name]; !ok || v != f.value {
			changed = append(changed, f.name)
		}
	}
	return changed
}

// Per-section item builders. Each lists the fields that count as content;
// anything left out, such as the analyst's verified flag on timeline events
// or the derived source counts, never registers as a change.

func timelineItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.WorkingTimeline))
	for _, t := range b.WorkingTimeline {
		items = append(items, item{
			key:   normalize(t.Event),
			label: labelOf(t.Event),
			fields: []field{
				{"date", strings.TrimSpace(t.Date)},
				{"source_ids", refSet(t.SourceIDs)},
				{"confidence", string(model.ParseLevel(t.Confidence))},
			},
		})
	}
	return items
}

func entityItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.KeyEntities))
	for _, e := range b.KeyEntities {
		items = append(items, item{
			key:   normalize(e.Name),
			label: labelOf(e.Name),
			fields: []field{
				{"type", normalize(e.Type)},
				{"description", normalize(e.Description)},
				{"source_refs", refSet(e.SourceRefs)},
			},
		})
	}
	return items
}

func contradictionItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.Contradictions))
	for _, c := range b.Contradictions {
		items = append(items, item{
			key:   normalize(c.Issue),
			label: labelOf(c.Issue),
			fields: []field{
				{"statement_a", normalize(c.StatementA)},
				{"statement_a_refs", refSet(c.StatementARefs)},
				{"statement_b", normalize(c.StatementB)},
				{"statement_b_refs", refSet(c.StatementBRefs)},
				{"resolution_tasks", textList(c.ResolutionTasks)},
			},
		})
	}
	return items
}

func hypothesisItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.Hypotheses))
	for _, h := range b.Hypotheses {
		items = append(items, item{
			key:   normalize(h.Hypothesis),
			label: labelOf(h.Hypothesis),
			fields: []field{
				{"likelihood", string(model.ParseLevel(h.Likelihood))},
				{"evidence_for", refSet(h.EvidenceFor)},
				{"evidence_against", refSet(h.EvidenceAgainst)},
			},
		})
	}
	return items
}

func gapItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.CriticalGaps))
	for _, g := range b.CriticalGaps {
		items = append(items, item{
			key:   normalize(g.Gap),
			label: labelOf(g.Gap),
			fields: []field{
				{"why_it_matters", normalize(g.WhyItMatters)},
				{"suggested_queries", textList(g.SuggestedQueries)},
			},
		})
	}
	return items
}

func taskItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.VerificationTasks))
	for _, t := range b.VerificationTasks {
		items = append(items, item{
			key:   normalize(t.Task),
			label: labelOf(t.Task),
			fields: []field{
				{"priority", normalize(t.Priority)},
				{"related_refs", refSet(t.RelatedRefs)},
			},
		})
	}
	return items
}

func strengthItems(b *model.Brief) []item {
	items := make([]item, 0, len(b.EvidenceStrength))
	for _, s := range b.EvidenceStrength {
		items = append(items, item{
			key:   normalize(s.Theme),
			label: labelOf(s.Theme),
			fields: []field{
				{"results_count", strconv.Itoa(s.ResultsCount)},
				{"saved_links_count", strconv.Itoa(s.SavedLinksCount)},
				{"wayback_count", strconv.Itoa(s.WaybackCount)},
				{"notes_count", strconv.Itoa(s.NotesCount)},
				{"corroboration_estimate", normalize(s.CorroborationEstimate)},
				{"strength_rating", normalize(s.StrengthRating)},
				{"supporting_refs", refSet(s.SupportingRefs)},
			},
		})
	}
	return items
}

// normalize lowercases and collapses whitespace
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// refSet renders refs as a sorted, de-duplicated set; citation order is not content
func refSet(refs model.Refs) string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range refs {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		ids = append(ids, r)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

// textList keeps order, which is meaningful for task lists
func textList(items model.TextList) string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = normalize(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\x1f")
}

func labelOf(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "(untitled)"
	}
	const limit = 80
	if len([]rune(s)) > limit {
		return string([]rune(s)[:limit-1]) + "…"
	}
	return s
}
