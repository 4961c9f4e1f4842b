// Package validate checks the referential integrity of a brief before it is
// analyzed. The analyzers themselves tolerate dangling references; this check
// lets callers refuse such briefs up front.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/briefcheck/internal/evidence"
	"github.com/ppiankov/briefcheck/internal/extract"
	"github.com/ppiankov/briefcheck/internal/model"
)

// ErrInvalidBrief is returned by Strict when a brief has integrity issues
var ErrInvalidBrief = errors.New("invalid brief")

// IssueKind classifies an integrity issue
type IssueKind string

const (
	IssueDanglingRef  IssueKind = "dangling_ref"
	IssueBlankRef     IssueKind = "blank_ref"
	IssueMissingIndex IssueKind = "missing_index"
)

// Issue is one integrity problem found in a brief
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Location string    `json:"location"`
	Ref      string    `json:"ref,omitempty"`
	Message  string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Location, i.Message)
}

// Check lists every integrity issue of b, in document order
func Check(b *model.Brief) []Issue {
	if b == nil {
		return nil
	}

	index := evidence.NewIndex(b.EvidenceIndex)
	citations := extract.Citations(b)

	var issues []Issue
	if index.Len() == 0 && citesAnything(citations) {
		issues = append(issues, Issue{
			Kind:     IssueMissingIndex,
			Location: string(model.SectionEvidenceIndex),
			Message:  "brief cites evidence but has no evidence index",
		})
		return issues
	}

	for _, c := range citations {
		for _, ref := range c.Refs {
			switch {
			case strings.TrimSpace(ref) == "":
				issues = append(issues, Issue{
					Kind:     IssueBlankRef,
					Location: c.Location,
					Message:  "blank reference",
				})
			case !index.Has(ref):
				issues = append(issues, Issue{
					Kind:     IssueDanglingRef,
					Location: c.Location,
					Ref:      ref,
					Message:  fmt.Sprintf("reference %q is not in the evidence index", ref),
				})
			}
		}
	}
	return issues
}

// Strict returns an error wrapping ErrInvalidBrief when b has any issue
func Strict(b *model.Brief) error {
	issues := Check(b)
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d issue(s), first: %s", ErrInvalidBrief, len(issues), issues[0])
}

func citesAnything(citations []extract.Citation) bool {
	for _, c := range citations {
		if len(c.Refs) > 0 {
			return true
		}
	}
	return false
}
