package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reformahub/contentpipe/internal/app"
	"github.com/reformahub/contentpipe/internal/generate"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath   string
		topic        string
		topics       string
		outputDir    string
		llmBase      string
		llmModel     string
		llmKey       string
		researchBase string
		researchKey  string
		tone         string
		audience     string
		minWords     int
		maxWords     int
		keywords     string
		withSources  bool
		withFAQ      bool
		withMeta     bool
		withCheck    bool
		maxSources   int
		callTimeout  time.Duration
		rpm          int
		concurrency  int
		cacheDir     string
		verbose      bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.StringVar(&topic, "topic", "", "Single topic to generate an article for")
	flag.StringVar(&topics, "topics", "", "Comma-separated list of topics")
	flag.StringVar(&outputDir, "out", app.DefaultOutputDir, "Directory for generated articles")
	flag.StringVar(&llmBase, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the text-generation provider")
	flag.StringVar(&researchBase, "research.base", os.Getenv("RESEARCH_BASE_URL"), "Research provider base URL")
	flag.StringVar(&researchKey, "research.key", os.Getenv("RESEARCH_API_KEY"), "Research provider API key")
	flag.StringVar(&tone, "tone", app.DefaultTone, "Article tone")
	flag.StringVar(&audience, "audience", app.DefaultAudience, "Target audience")
	flag.IntVar(&minWords, "words.min", app.DefaultMinWords, "Minimum target word count")
	flag.IntVar(&maxWords, "words.max", app.DefaultMaxWords, "Maximum target word count")
	flag.StringVar(&keywords, "keywords", "", "Comma-separated target keywords")
	flag.BoolVar(&withSources, "sources", true, "Include a source-citation section")
	flag.BoolVar(&withFAQ, "faq", true, "Include an FAQ section")
	flag.BoolVar(&withMeta, "metadata", true, "Generate SEO metadata")
	flag.BoolVar(&withCheck, "factcheck", false, "Run the advisory fact-check pass")
	flag.IntVar(&maxSources, "max.sources", app.DefaultMaxSources, "Maximum research sources to request")
	flag.DurationVar(&callTimeout, "timeout", app.DefaultCallTimeout, "Per-call timeout for external providers")
	flag.IntVar(&rpm, "rpm", app.DefaultRequestsPerMin, "Shared provider rate limit (requests per minute, 0 disables)")
	flag.IntVar(&concurrency, "concurrency", app.DefaultMaxConcurrent, "Concurrent topic generations")
	flag.StringVar(&cacheDir, "cache.dir", "", "LLM response cache directory (empty disables)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Topics:          splitList(topics),
		OutputDir:       outputDir,
		LLMBaseURL:      llmBase,
		LLMModel:        llmModel,
		LLMAPIKey:       llmKey,
		ResearchBaseURL: researchBase,
		ResearchAPIKey:  researchKey,
		Tone:            tone,
		Audience:        audience,
		MinWords:        minWords,
		MaxWords:        maxWords,
		Keywords:        splitList(keywords),
		IncludeSources:  withSources,
		IncludeFAQ:      withFAQ,
		WithMetadata:    withMeta,
		FactCheck:       withCheck,
		MaxSources:      maxSources,
		CallTimeout:     callTimeout,
		RequestsPerMin:  rpm,
		MaxConcurrent:   concurrency,
		CacheDir:        cacheDir,
		Verbose:         verbose,
	}
	if topic != "" {
		cfg.Topics = append([]string{topic}, cfg.Topics...)
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Msg("config load failed")
			os.Exit(1)
		}
		cfg = fc.Merge(cfg)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: 2 when the pipeline could not produce an
		// article at all, 1 for anything else.
		if errors.Is(err, generate.ErrResearchUnavailable) || errors.Is(err, generate.ErrNoDraft) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
