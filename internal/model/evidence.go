package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// EvidenceEntry is one item of the evidence index: a search result, saved
// link, archived snapshot or analyst note the brief can cite by short ID
type EvidenceEntry struct {
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`               // result, saved_link, wayback, note, social, official
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`             // Display label
	URL        string     `json:"url,omitempty" yaml:"url,omitempty"`                 // Original location, if any
	SourceTier SourceTier `json:"source_tier,omitempty" yaml:"source_tier,omitempty"` // primary, secondary or absent
}

// SourceTier classifies how directly a source documents what it reports
type SourceTier string

const (
	TierUnknown   SourceTier = ""
	TierPrimary   SourceTier = "primary"   // Records, filings, first-hand captures
	TierSecondary SourceTier = "secondary" // Reporting about primary material
)

// ParseSourceTier normalizes a tier string; anything unrecognised is unknown
func ParseSourceTier(s string) SourceTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "1":
		return TierPrimary
	case "secondary", "2":
		return TierSecondary
	default:
		return TierUnknown
	}
}

func (t SourceTier) String() string {
	if t == TierUnknown {
		return "unknown"
	}
	return string(t)
}

// UnmarshalJSON accepts any JSON value; non-strings decode as unknown
func (t *SourceTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = TierUnknown
		return nil
	}
	*t = ParseSourceTier(s)
	return nil
}

// UnmarshalYAML accepts any node; non-scalars decode as unknown
func (t *SourceTier) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*t = TierUnknown
		return nil
	}
	*t = ParseSourceTier(value.Value)
	return nil
}

// EvidenceIndex maps short reference IDs ("s1", "r3") to evidence entries
type EvidenceIndex map[string]EvidenceEntry

// UnmarshalJSON decodes an index object. A value that is not an object yields
// an empty index and entries that are not objects are skipped.
func (x *EvidenceIndex) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		*x = nil
		return nil
	}

	index := make(EvidenceIndex, len(raw))
	for id, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var entry EvidenceEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		index[id] = entry
	}
	*x = index
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML briefs
func (x *EvidenceIndex) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		*x = nil
		return nil
	}

	index := make(EvidenceIndex, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, item := value.Content[i], value.Content[i+1]
		if key.Kind != yaml.ScalarNode || item.Kind != yaml.MappingNode {
			continue
		}
		var entry EvidenceEntry
		if err := item.Decode(&entry); err != nil {
			continue
		}
		index[key.Value] = entry
	}
	*x = index
	return nil
}

// Refs is a list of evidence reference IDs. Decoding keeps only the string
// elements of an array; any other value decodes to an empty list.
type Refs []string

// UnmarshalJSON implements the permissive decoding described on Refs
func (r *Refs) UnmarshalJSON(data []byte) error {
	*r = decodeStringsJSON(data)
	return nil
}

// UnmarshalYAML implements the permissive decoding described on Refs
func (r *Refs) UnmarshalYAML(value *yaml.Node) error {
	*r = decodeStringsYAML(value)
	return nil
}

// TextList is a list of free-text items decoded as permissively as Refs
type TextList []string

// UnmarshalJSON implements the permissive decoding described on Refs
func (l *TextList) UnmarshalJSON(data []byte) error {
	*l = decodeStringsJSON(data)
	return nil
}

// UnmarshalYAML implements the permissive decoding described on Refs
func (l *TextList) UnmarshalYAML(value *yaml.Node) error {
	*l = decodeStringsYAML(value)
	return nil
}

func decodeStringsJSON(data []byte) []string {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '"' {
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func decodeStringsYAML(value *yaml.Node) []string {
	if value.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(value.Content))
	for _, item := range value.Content {
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str" {
			out = append(out, item.Value)
		}
	}
	return out
}
