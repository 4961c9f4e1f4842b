// Package diff computes the changes between two versions of a brief. Output
// depends only on the two documents, so the same pair always yields the same
// entries in the same order.
package diff

import (
	"fmt"
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
)

type listSection struct {
	name  model.Section
	items func(*model.Brief) []item
}

// listSections are diffed in this order, after the executive overview
var listSections = []listSection{
	{model.SectionWorkingTimeline, timelineItems},
	{model.SectionKeyEntities, entityItems},
	{model.SectionContradictions, contradictionItems},
	{model.SectionHypotheses, hypothesisItems},
	{model.SectionCriticalGaps, gapItems},
	{model.SectionVerificationTasks, taskItems},
	{model.SectionEvidenceStrength, strengthItems},
}

// Changes returns the changes from previous to current. It returns nil when
// there is no previous version, and a non-nil (possibly empty) slice
// otherwise.
func Changes(previous, current *model.Brief) []model.ChangeEntry {
	if previous == nil {
		return nil
	}
	if current == nil {
		current = &model.Brief{}
	}

	changes := []model.ChangeEntry{}
	changes = append(changes, overviewChanges(previous, current)...)
	for _, s := range listSections {
		changes = append(changes, diffItems(s.name, s.items(previous), s.items(current))...)
	}
	return changes
}

// ChangeSet wraps Changes for attaching to a brief; nil when there is no
// previous version
func ChangeSet(previous, current *model.Brief) *model.ChangeSet {
	changes := Changes(previous, current)
	if changes == nil {
		return nil
	}
	set := model.ChangeSet(changes)
	return &set
}

func overviewChanges(previous, current *model.Brief) []model.ChangeEntry {
	before := strings.Join(strings.Fields(previous.ExecutiveOverview), " ")
	after := strings.Join(strings.Fields(current.ExecutiveOverview), " ")
	if before == after {
		return nil
	}
	return []model.ChangeEntry{{
		Section: model.SectionExecutiveOverview,
		Kind:    model.ChangeModified,
		Label:   "Executive overview",
		Detail:  fmt.Sprintf("%d → %d words", len(strings.Fields(before)), len(strings.Fields(after))),
	}}
}

// diffItems matches items by key. Repeated keys within one version are
// matched by occurrence, so the second "X" pairs with the second "X".
// Modified and added entries follow current order; removed entries follow
// previous order.
func diffItems(section model.Section, previous, current []item) []model.ChangeEntry {
	before := disambiguate(previous)
	prevByKey := make(map[occurrence]item, len(before))
	for _, o := range before {
		prevByKey[o.occurrence] = o.item
	}

	var changes []model.ChangeEntry
	seen := make(map[occurrence]bool, len(current))
	for _, o := range disambiguate(current) {
		it := o.item
		seen[o.occurrence] = true
		prev, ok := prevByKey[o.occurrence]
		if !ok {
			changes = append(changes, model.ChangeEntry{
				Section: section,
				Kind:    model.ChangeAdded,
				Label:   it.label,
			})
			continue
		}
		if prev.fingerprint() != it.fingerprint() {
			changes = append(changes, model.ChangeEntry{
				Section: section,
				Kind:    model.ChangeModified,
				Label:   it.label,
				Detail:  "changed: " + strings.Join(it.changedFields(prev), ", "),
			})
		}
	}

	for _, o := range before {
		if !seen[o.occurrence] {
			changes = append(changes, model.ChangeEntry{
				Section: section,
				Kind:    model.ChangeRemoved,
				Label:   o.item.label,
			})
		}
	}
	return changes
}

// occurrence identifies the n-th item (from 1) carrying a key
type occurrence struct {
	key string
	n   int
}

type keyedItem struct {
	occurrence
	item item
}

// disambiguate numbers repeated keys by occurrence
func disambiguate(items []item) []keyedItem {
	out := make([]keyedItem, len(items))
	counts := make(map[string]int, len(items))
	for i, it := range items {
		counts[it.key]++
		out[i] = keyedItem{occurrence{it.key, counts[it.key]}, it}
	}
	return out
}
