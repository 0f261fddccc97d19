package app

import "time"

// Config holds runtime configuration for a content-generation run.
type Config struct {
	// Topics to generate, one article each.
	Topics []string
	// OutputDir receives one markdown file per topic plus a sidecar
	// SEO/fact-check report.
	OutputDir string

	// LLM (text-generation provider)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Research provider
	ResearchBaseURL string
	ResearchAPIKey  string

	// Generation options
	Tone           string
	Audience       string
	MinWords       int
	MaxWords       int
	Keywords       []string
	IncludeSources bool
	IncludeFAQ     bool
	WithMetadata   bool
	FactCheck      bool
	MaxSources     int

	// Provider hardening
	CallTimeout    time.Duration // per external call; 0 disables
	RequestsPerMin int           // shared provider rate limit; 0 disables
	MaxConcurrent  int           // cross-run concurrency cap; <=1 is sequential

	CacheDir string
	Verbose  bool
}
