package model

// EvidenceNetwork describes how evidence is reused across the brief. It is
// purely structural: a central node is heavily cited, not necessarily strong.
type EvidenceNetwork struct {
	CentralNodes        []EvidenceNode       `json:"central_nodes" yaml:"central_nodes"`
	IsolatedNodes       []EvidenceNode       `json:"isolated_nodes" yaml:"isolated_nodes"`
	SinglePointFailures []SinglePointFailure `json:"single_point_failures" yaml:"single_point_failures"`
}

// EvidenceNode is one evidence ID with the number of brief locations citing it
type EvidenceNode struct {
	ID           string `json:"id" yaml:"id"`
	MentionCount int    `json:"mention_count" yaml:"mention_count"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty"`
}

// SinglePointFailure is a claim whose entire support is a single dependency
type SinglePointFailure struct {
	Area         Section  `json:"area" yaml:"area"`
	Claim        string   `json:"claim" yaml:"claim"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"` // Label of the sole dependency
}

// Severity ranks coherence alerts
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities, high first
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// AlertRule identifies which consistency check raised an alert
type AlertRule string

const (
	RuleHypothesisCounterEvidence AlertRule = "hypothesis_counter_evidence"
	RuleVerifiedUnderSourced      AlertRule = "verified_under_sourced"
	RuleUnsupportedHighConfidence AlertRule = "unsupported_high_confidence"
	RuleUnresolvedContradiction   AlertRule = "unresolved_contradiction"
)

// CoherenceAlert flags a structural inconsistency between brief sections.
// Alerts are regenerated on every pass and never merged with older ones.
type CoherenceAlert struct {
	Rule             AlertRule `json:"rule" yaml:"rule"`
	Severity         Severity  `json:"severity" yaml:"severity"`
	Alert            string    `json:"alert" yaml:"alert"`
	WhyItMatters     string    `json:"why_it_matters" yaml:"why_it_matters"`
	AffectedSections []Section `json:"affected_sections" yaml:"affected_sections"`
	EvidenceIDs      []string  `json:"evidence_ids" yaml:"evidence_ids"`
}

// ChangeKind describes how an item moved between two brief versions
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeModified ChangeKind = "modified"
)

// ChangeEntry is one difference between a brief and its previous version
type ChangeEntry struct {
	Section Section    `json:"section" yaml:"section"`
	Kind    ChangeKind `json:"kind" yaml:"kind"`
	Label   string     `json:"label" yaml:"label"`
	Detail  string     `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// ChangeSet is the diff attached to version 2 and later. Version 1 carries no
// change set at all, which is why Brief holds it by pointer.
type ChangeSet []ChangeEntry
