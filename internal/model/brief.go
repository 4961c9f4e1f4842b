package model

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Section names a top-level part of a brief
type Section string

const (
	SectionExecutiveOverview Section = "executive_overview"
	SectionWorkingTimeline   Section = "working_timeline"
	SectionKeyEntities       Section = "key_entities"
	SectionContradictions    Section = "contradictions"
	SectionHypotheses        Section = "hypotheses"
	SectionCriticalGaps      Section = "critical_gaps"
	SectionVerificationTasks Section = "verification_tasks"
	SectionEvidenceStrength  Section = "evidence_strength"
	SectionEvidenceIndex     Section = "evidence_index"
)

// Sections lists the content sections in document order
var Sections = []Section{
	SectionExecutiveOverview,
	SectionWorkingTimeline,
	SectionKeyEntities,
	SectionContradictions,
	SectionHypotheses,
	SectionCriticalGaps,
	SectionVerificationTasks,
	SectionEvidenceStrength,
}

// Brief is an investigation brief that already passed schema validation.
// Derived fields are attached by the analysis pipeline before the brief is
// stored as a version snapshot; documents written before a derived field
// existed simply leave it empty.
type Brief struct {
	Title             string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Version           int                    `json:"version,omitempty" yaml:"version,omitempty"`
	ExecutiveOverview string                 `json:"executive_overview,omitempty" yaml:"executive_overview,omitempty"`
	WorkingTimeline   []TimelineItem         `json:"working_timeline,omitempty" yaml:"working_timeline,omitempty"`
	KeyEntities       []Entity               `json:"key_entities,omitempty" yaml:"key_entities,omitempty"`
	Contradictions    []Contradiction        `json:"contradictions,omitempty" yaml:"contradictions,omitempty"`
	Hypotheses        []Hypothesis           `json:"hypotheses,omitempty" yaml:"hypotheses,omitempty"`
	CriticalGaps      []Gap                  `json:"critical_gaps,omitempty" yaml:"critical_gaps,omitempty"`
	VerificationTasks []VerificationTask     `json:"verification_tasks,omitempty" yaml:"verification_tasks,omitempty"`
	EvidenceStrength  []EvidenceStrengthItem `json:"evidence_strength,omitempty" yaml:"evidence_strength,omitempty"`
	EvidenceIndex     EvidenceIndex          `json:"evidence_index,omitempty" yaml:"evidence_index,omitempty"`

	// Derived by the analysis pipeline
	EvidenceNetwork *EvidenceNetwork `json:"evidence_network,omitempty" yaml:"evidence_network,omitempty"`
	CoherenceAlerts []CoherenceAlert `json:"coherence_alerts,omitempty" yaml:"coherence_alerts,omitempty"`
	Changes         *ChangeSet       `json:"changes_since_last_version,omitempty" yaml:"changes_since_last_version,omitempty"`

	// Extra keeps top-level fields this package does not model, so a brief
	// survives a decode/encode round trip unchanged. Present-but-empty
	// sections are told apart from absent ones by nil versus empty slices.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// TimelineItem is one dated event on the working timeline
type TimelineItem struct {
	Date       string `json:"date,omitempty" yaml:"date,omitempty"`
	Event      string `json:"event" yaml:"event"`
	SourceIDs  Refs   `json:"source_ids,omitempty" yaml:"source_ids,omitempty"`
	Confidence string `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Verified   bool   `json:"verified,omitempty" yaml:"verified,omitempty"` // set by the analyst, not the generator
}

// Entity is a person, organisation, account or asset of interest
type Entity struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	SourceRefs  Refs   `json:"source_refs,omitempty" yaml:"source_refs,omitempty"`
}

// Contradiction pairs two statements that cannot both hold
type Contradiction struct {
	Issue           string   `json:"issue" yaml:"issue"`
	StatementA      string   `json:"statement_a,omitempty" yaml:"statement_a,omitempty"`
	StatementARefs  Refs     `json:"statement_a_refs,omitempty" yaml:"statement_a_refs,omitempty"`
	StatementB      string   `json:"statement_b,omitempty" yaml:"statement_b,omitempty"`
	StatementBRefs  Refs     `json:"statement_b_refs,omitempty" yaml:"statement_b_refs,omitempty"`
	ResolutionTasks TextList `json:"resolution_tasks,omitempty" yaml:"resolution_tasks,omitempty"`
}

// Hypothesis is a candidate explanation with evidence on both sides
type Hypothesis struct {
	Hypothesis      string `json:"hypothesis" yaml:"hypothesis"`
	Likelihood      string `json:"likelihood,omitempty" yaml:"likelihood,omitempty"`
	EvidenceFor     Refs   `json:"evidence_for,omitempty" yaml:"evidence_for,omitempty"`
	EvidenceAgainst Refs   `json:"evidence_against,omitempty" yaml:"evidence_against,omitempty"`
}

// Gap is something the investigation does not know yet
type Gap struct {
	Gap              string   `json:"gap" yaml:"gap"`
	WhyItMatters     string   `json:"why_it_matters,omitempty" yaml:"why_it_matters,omitempty"`
	SuggestedQueries TextList `json:"suggested_queries,omitempty" yaml:"suggested_queries,omitempty"`
}

// VerificationTask is a follow-up action for the analyst
type VerificationTask struct {
	Task        string `json:"task" yaml:"task"`
	Priority    string `json:"priority,omitempty" yaml:"priority,omitempty"`
	RelatedRefs Refs   `json:"related_refs,omitempty" yaml:"related_refs,omitempty"`
}

// EvidenceStrengthItem rates how well one theme of the brief is supported.
// PrimarySourcesCount and SecondarySourcesCount are always recomputed from
// SupportingRefs; values supplied by the generator are never trusted.
type EvidenceStrengthItem struct {
	Theme                 string `json:"theme" yaml:"theme"`
	ResultsCount          int    `json:"results_count,omitempty" yaml:"results_count,omitempty"`
	SavedLinksCount       int    `json:"saved_links_count,omitempty" yaml:"saved_links_count,omitempty"`
	WaybackCount          int    `json:"wayback_count,omitempty" yaml:"wayback_count,omitempty"`
	NotesCount            int    `json:"notes_count,omitempty" yaml:"notes_count,omitempty"`
	CorroborationEstimate string `json:"corroboration_estimate,omitempty" yaml:"corroboration_estimate,omitempty"`
	StrengthRating        string `json:"strength_rating,omitempty" yaml:"strength_rating,omitempty"`
	SupportingRefs        Refs   `json:"supporting_refs,omitempty" yaml:"supporting_refs,omitempty"`
	PrimarySourcesCount   *int   `json:"primary_sources_count,omitempty" yaml:"primary_sources_count,omitempty"`
	SecondarySourcesCount *int   `json:"secondary_sources_count,omitempty" yaml:"secondary_sources_count,omitempty"`
}

// Level is a normalized high/medium/low rating
type Level string

const (
	LevelUnknown Level = ""
	LevelLow     Level = "low"
	LevelMedium  Level = "medium"
	LevelHigh    Level = "high"
)

// ParseLevel normalizes free-form confidence and likelihood ratings
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	switch s {
	case "high", "very high", "almost certain", "likely high":
		return LevelHigh
	case "medium", "moderate", "med":
		return LevelMedium
	case "low", "very low", "unlikely":
		return LevelLow
	default:
		return LevelUnknown
	}
}

type briefAlias Brief

// knownKeys holds the JSON names of every modelled top-level field
var knownKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(briefAlias{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

// UnmarshalJSON decodes the modelled fields and keeps the rest in Extra
func (b *Brief) UnmarshalJSON(data []byte) error {
	var alias briefAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if knownKeys[key] {
			continue
		}
		if alias.Extra == nil {
			alias.Extra = make(map[string]json.RawMessage)
		}
		alias.Extra[key] = value
	}

	*b = Brief(alias)
	return nil
}

// MarshalJSON encodes the modelled fields in declaration order followed by
// Extra. Sections present as [] in the decoded document stay [].
func (b Brief) MarshalJSON() ([]byte, error) {
	return encodeFields(reflect.ValueOf(briefAlias(b)), b.Extra)
}
