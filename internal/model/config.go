package model

import "time"

// Config holds the complete biaslab configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	LLM         LLMConfig         `yaml:"llm"`
	Sourcing    SourcingConfig    `yaml:"sourcing"`
	Orchestra   OrchestraConfig   `yaml:"orchestrator"`
	Cluster     ClusterConfig     `yaml:"cluster"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls article fetching.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
	RatePerHost   float64       `yaml:"rate_per_host"`
	Burst         int           `yaml:"burst"`
}

// LLMConfig configures the ranked remote backends. Providers are tried
// in order for every capability; an empty list disables remote calls.
type LLMConfig struct {
	Providers      []string `yaml:"providers"` // openai, anthropic, ollama
	OpenAIKey      string   `yaml:"openai_key"`
	OpenAIModel    string   `yaml:"openai_model"`
	AnthropicKey   string   `yaml:"anthropic_key"`
	AnthropicModel string   `yaml:"anthropic_model"`
	OllamaBaseURL  string   `yaml:"ollama_base_url"`
	OllamaModel    string   `yaml:"ollama_model"`
}

// SourcingConfig configures primary-source lookup for claims.
type SourcingConfig struct {
	TavilyKey          string        `yaml:"tavily_key"`
	PerClaimTimeout    time.Duration `yaml:"per_claim_timeout"`
	MaxClaims          int           `yaml:"max_claims"`
	SourcesPerClaim    int           `yaml:"sources_per_claim"`
	CandidatesPerClaim int           `yaml:"candidates_per_claim"`
}

// OrchestraConfig bounds the backend fan-out.
type OrchestraConfig struct {
	AttemptTimeout time.Duration `yaml:"attempt_timeout"` // per backend call
	GatherTimeout  time.Duration `yaml:"gather_timeout"`  // all capabilities together
}

// ClusterConfig holds narrative clustering defaults.
type ClusterConfig struct {
	Window    int     `yaml:"window"`    // 5-200 most recent articles
	Threshold float64 `yaml:"threshold"` // 0.1-0.9 Jaccard similarity
}

// CacheConfig controls caching of fetched article text.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig bounds parallelism.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       20 * time.Second,
			UserAgent:     "BiasLab/0.1 (+https://github.com/ppiankov/biaslab)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerHost:   2,
			Burst:         4,
		},
		LLM: LLMConfig{
			Providers:      []string{"openai", "anthropic"},
			OpenAIModel:    "gpt-4o-mini",
			AnthropicModel: "claude-3-5-haiku-latest",
			OllamaModel:    "llama3.1",
		},
		Sourcing: SourcingConfig{
			PerClaimTimeout:    5 * time.Second,
			MaxClaims:          8,
			SourcesPerClaim:    2,
			CandidatesPerClaim: 3,
		},
		Orchestra: OrchestraConfig{
			AttemptTimeout: 25 * time.Second,
			GatherTimeout:  60 * time.Second,
		},
		Cluster: ClusterConfig{
			Window:    50,
			Threshold: 0.35,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     1 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{},
	}
}
