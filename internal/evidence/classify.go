package evidence

import (
	"net/url"
	"strings"

	"github.com/ppiankov/briefcheck/internal/model"
)

// SourceClass says how much weight a source can carry on its own
type SourceClass int

const (
	ClassNeutral SourceClass = iota // Ordinary reporting, search results, notes
	ClassStrong                     // Primary or official material
	ClassWeak                       // Social posts, forums, unverified material
)

func (c SourceClass) String() string {
	switch c {
	case ClassStrong:
		return "strong"
	case ClassWeak:
		return "weak"
	default:
		return "neutral"
	}
}

// Classifier classifies evidence entries into source classes
type Classifier struct {
	strongTypes     map[string]bool
	weakTypes       map[string]bool
	officialDomains []string
	weakDomains     []string
	domainMap       map[string]SourceClass
}

// NewClassifier creates a classifier; nil config uses the defaults
func NewClassifier(config *model.ClassificationConfig) *Classifier {
	if config == nil {
		config = &model.DefaultConfig().Classification
	}

	c := &Classifier{
		strongTypes: make(map[string]bool),
		weakTypes:   make(map[string]bool),
		domainMap:   make(map[string]SourceClass),
	}
	for _, t := range config.StrongTypes {
		c.strongTypes[normalizeType(t)] = true
	}
	for _, t := range config.WeakTypes {
		c.weakTypes[normalizeType(t)] = true
	}
	for _, d := range config.OfficialDomains {
		c.officialDomains = append(c.officialDomains, strings.ToLower(strings.TrimPrefix(d, ".")))
	}
	for _, d := range config.WeakDomains {
		c.weakDomains = append(c.weakDomains, strings.ToLower(strings.TrimPrefix(d, ".")))
	}
	for host, class := range config.DomainMap {
		c.domainMap[strings.ToLower(host)] = parseClassString(class)
	}

	return c
}

// Classify classifies an evidence entry. An explicit primary tier wins, then
// the entry type, then the host of its URL.
func (c *Classifier) Classify(entry model.EvidenceEntry) SourceClass {
	if entry.SourceTier == model.TierPrimary {
		return ClassStrong
	}

	kind := normalizeType(entry.Type)
	if c.strongTypes[kind] {
		return ClassStrong
	}
	if c.weakTypes[kind] {
		return ClassWeak
	}

	return c.classifyHost(entry.URL)
}

// ClassifyID classifies the entry id resolves to; unresolved IDs are neutral
func (c *Classifier) ClassifyID(index *Index, id string) SourceClass {
	entry, ok := index.Resolve(id)
	if !ok {
		return ClassNeutral
	}
	return c.Classify(entry)
}

func (c *Classifier) classifyHost(rawURL string) SourceClass {
	if rawURL == "" {
		return ClassNeutral
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ClassNeutral
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ClassNeutral
	}

	// Explicit mappings from config
	if class, ok := c.domainMap[host]; ok {
		return class
	}

	for _, domain := range c.weakDomains {
		if matchesDomain(host, domain) {
			return ClassWeak
		}
	}
	for _, domain := range c.officialDomains {
		if matchesDomain(host, domain) {
			return ClassStrong
		}
	}

	return ClassNeutral
}

// matchesDomain reports whether host is domain or a subdomain of it
func matchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	return strings.NewReplacer("-", "_", " ", "_").Replace(t)
}

// parseClassString converts a configured class name to a SourceClass
func parseClassString(class string) SourceClass {
	switch strings.ToLower(class) {
	case "strong", "official", "primary":
		return ClassStrong
	case "weak", "social", "unverified":
		return ClassWeak
	default:
		return ClassNeutral
	}
}
