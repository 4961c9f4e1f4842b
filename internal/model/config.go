package model

import "time"

// Config holds all briefcheck settings
type Config struct {
	Analysis       AnalysisConfig       `yaml:"analysis" mapstructure:"analysis"`
	Classification ClassificationConfig `yaml:"classification" mapstructure:"classification"`
	Input          InputConfig          `yaml:"input" mapstructure:"input"`
	Output         OutputConfig         `yaml:"output" mapstructure:"output"`
	Concurrency    ConcurrencyConfig    `yaml:"concurrency" mapstructure:"concurrency"`
	Logging        LoggingConfig        `yaml:"logging" mapstructure:"logging"`
	Watch          WatchConfig          `yaml:"watch" mapstructure:"watch"`
}

// AnalysisConfig holds the heuristic thresholds of the analyzers
type AnalysisConfig struct {
	Network   NetworkConfig   `yaml:"network" mapstructure:"network"`
	Coherence CoherenceConfig `yaml:"coherence" mapstructure:"coherence"`
}

// NetworkConfig tunes central-node and single-point-of-failure detection
type NetworkConfig struct {
	CentralMinMentions         int `yaml:"central_min_mentions" mapstructure:"central_min_mentions"`                   // Absolute threshold for central
	CentralTopN                int `yaml:"central_top_n" mapstructure:"central_top_n"`                                 // Top-N fallback when few reach the threshold
	CentralFallbackMinMentions int `yaml:"central_fallback_min_mentions" mapstructure:"central_fallback_min_mentions"` // Floor for the fallback, keeps isolated nodes out
	SPFMaxDependencies         int `yaml:"spf_max_dependencies" mapstructure:"spf_max_dependencies"`                   // Claims citing 1..N IDs are single points of failure
}

// CoherenceConfig tunes the coherence rules
type CoherenceConfig struct {
	WeakSourceShare    float64 `yaml:"weak_source_share" mapstructure:"weak_source_share"`       // Share of weak sources above which a claim is weakly supported
	VerifiedMinSources int     `yaml:"verified_min_sources" mapstructure:"verified_min_sources"` // Sources a verified event needs
}

// ClassificationConfig drives the strong/weak source classifier
type ClassificationConfig struct {
	StrongTypes     []string          `yaml:"strong_types" mapstructure:"strong_types"`
	WeakTypes       []string          `yaml:"weak_types" mapstructure:"weak_types"`
	OfficialDomains []string          `yaml:"official_domains" mapstructure:"official_domains"`
	WeakDomains     []string          `yaml:"weak_domains" mapstructure:"weak_domains"`
	DomainMap       map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // host -> strong|weak|neutral
}

// InputConfig limits brief loading
type InputConfig struct {
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`
	Strict   bool  `yaml:"strict" mapstructure:"strict"` // Refuse briefs with dangling references
}

// OutputConfig controls rendering
type OutputConfig struct {
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// ConcurrencyConfig controls batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LoggingConfig controls slog output
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// WatchConfig controls the watch command
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Network: NetworkConfig{
				CentralMinMentions:         3,
				CentralTopN:                5,
				CentralFallbackMinMentions: 2,
				SPFMaxDependencies:         1,
			},
			Coherence: CoherenceConfig{
				WeakSourceShare:    0.5,
				VerifiedMinSources: 2,
			},
		},
		Classification: ClassificationConfig{
			StrongTypes: []string{
				"official", "government", "court_record", "filing",
				"registry", "primary_document", "press_release",
			},
			WeakTypes: []string{
				"social", "social_post", "forum", "comment",
				"rumor", "unverified", "anonymous", "paste",
			},
			OfficialDomains: []string{
				"gov", "mil", "gov.uk", "europa.eu", "sec.gov",
				"courtlistener.com", "opencorporates.com", "companieshouse.gov.uk",
			},
			WeakDomains: []string{
				"twitter.com", "x.com", "facebook.com", "instagram.com",
				"tiktok.com", "reddit.com", "t.me", "telegram.org",
				"youtube.com", "threads.net", "vk.com", "4chan.org",
				"pastebin.com", "medium.com",
			},
		},
		Input: InputConfig{
			MaxBytes: 10_000_000,
		},
		Output: OutputConfig{
			Pretty: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}
