package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file YAML configuration schema. Nested sections
// map naturally onto flags and environment variables.
type FileConfig struct {
	Topics    []string `yaml:"topics"`
	OutputDir string   `yaml:"outputDir"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Research struct {
		BaseURL string `yaml:"base"`
		APIKey  string `yaml:"key"`
	} `yaml:"research"`

	Article struct {
		Tone           string   `yaml:"tone"`
		Audience       string   `yaml:"audience"`
		MinWords       int      `yaml:"minWords"`
		MaxWords       int      `yaml:"maxWords"`
		Keywords       []string `yaml:"keywords"`
		IncludeSources bool     `yaml:"includeSources"`
		IncludeFAQ     bool     `yaml:"includeFAQ"`
		Metadata       bool     `yaml:"metadata"`
		FactCheck      bool     `yaml:"factCheck"`
		MaxSources     int      `yaml:"maxSources"`
	} `yaml:"article"`

	Limits struct {
		CallTimeout    duration `yaml:"callTimeout"`
		RequestsPerMin int      `yaml:"requestsPerMin"`
		MaxConcurrent  int      `yaml:"maxConcurrent"`
	} `yaml:"limits"`

	CacheDir string `yaml:"cacheDir"`
	Verbose  bool   `yaml:"verbose"`
}

// Flag defaults, shared with the CLI so Merge can tell "left at default"
// from "explicitly set".
const (
	DefaultOutputDir      = "articles"
	DefaultTone           = "profissional e acessível"
	DefaultAudience       = "proprietários de imóveis"
	DefaultMinWords       = 1200
	DefaultMaxWords       = 2000
	DefaultMaxSources     = 5
	DefaultCallTimeout    = 60 * time.Second
	DefaultRequestsPerMin = 20
	DefaultMaxConcurrent  = 1
)

// duration accepts the "45s" / "2m" form in YAML, which time.Duration does
// not decode on its own.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = duration(parsed)
	return nil
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// Merge overlays file values onto cfg, keeping any value the caller already
// set via flags. Flags win over file, file wins over zero defaults.
func (fc FileConfig) Merge(cfg Config) Config {
	if len(cfg.Topics) == 0 {
		cfg.Topics = fc.Topics
	}
	if (cfg.OutputDir == "" || cfg.OutputDir == DefaultOutputDir) && fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.ResearchBaseURL == "" {
		cfg.ResearchBaseURL = fc.Research.BaseURL
	}
	if cfg.ResearchAPIKey == "" {
		cfg.ResearchAPIKey = fc.Research.APIKey
	}
	if (cfg.Tone == "" || cfg.Tone == DefaultTone) && fc.Article.Tone != "" {
		cfg.Tone = fc.Article.Tone
	}
	if (cfg.Audience == "" || cfg.Audience == DefaultAudience) && fc.Article.Audience != "" {
		cfg.Audience = fc.Article.Audience
	}
	if (cfg.MinWords == 0 || cfg.MinWords == DefaultMinWords) && fc.Article.MinWords > 0 {
		cfg.MinWords = fc.Article.MinWords
	}
	if (cfg.MaxWords == 0 || cfg.MaxWords == DefaultMaxWords) && fc.Article.MaxWords > 0 {
		cfg.MaxWords = fc.Article.MaxWords
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = fc.Article.Keywords
	}
	if fc.Article.IncludeSources {
		cfg.IncludeSources = true
	}
	if fc.Article.IncludeFAQ {
		cfg.IncludeFAQ = true
	}
	if fc.Article.Metadata {
		cfg.WithMetadata = true
	}
	if fc.Article.FactCheck {
		cfg.FactCheck = true
	}
	if (cfg.MaxSources == 0 || cfg.MaxSources == DefaultMaxSources) && fc.Article.MaxSources > 0 {
		cfg.MaxSources = fc.Article.MaxSources
	}
	if (cfg.CallTimeout == 0 || cfg.CallTimeout == DefaultCallTimeout) && fc.Limits.CallTimeout > 0 {
		cfg.CallTimeout = time.Duration(fc.Limits.CallTimeout)
	}
	if (cfg.RequestsPerMin == 0 || cfg.RequestsPerMin == DefaultRequestsPerMin) && fc.Limits.RequestsPerMin > 0 {
		cfg.RequestsPerMin = fc.Limits.RequestsPerMin
	}
	if (cfg.MaxConcurrent == 0 || cfg.MaxConcurrent == DefaultMaxConcurrent) && fc.Limits.MaxConcurrent > 0 {
		cfg.MaxConcurrent = fc.Limits.MaxConcurrent
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = fc.CacheDir
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
	return cfg
}
