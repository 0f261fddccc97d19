package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/reformahub/contentpipe/internal/cache"
	"github.com/reformahub/contentpipe/internal/factcheck"
	"github.com/reformahub/contentpipe/internal/generate"
	"github.com/reformahub/contentpipe/internal/llm"
	"github.com/reformahub/contentpipe/internal/progress"
	"github.com/reformahub/contentpipe/internal/research"
)

// App wires providers and pipeline components for one batch of topics.
type App struct {
	cfg       Config
	generator *generate.Generator
}

// New builds the provider stack: the OpenAI-compatible text client behind
// cache and throttle wrappers, the research HTTP client behind a throttle,
// and the pipeline components on top.
func New(cfg Config) (*App, error) {
	if len(cfg.Topics) == 0 {
		return nil, fmt.Errorf("no topics configured")
	}
	if cfg.LLMModel == "" {
		return nil, fmt.Errorf("llm model not configured")
	}

	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), 1)
	}

	var text llm.Client = &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}
	text = &llm.Throttled{Inner: text, Limiter: limiter, Timeout: cfg.CallTimeout}
	if cfg.CacheDir != "" {
		text = &llm.Cached{Inner: text, Cache: &cache.Cache{Dir: cfg.CacheDir}}
	}

	var researcher research.Provider
	if cfg.ResearchBaseURL != "" {
		researcher = &research.Throttled{
			Inner: &research.AnswerAPI{
				BaseURL:   cfg.ResearchBaseURL,
				APIKey:    cfg.ResearchAPIKey,
				UserAgent: "contentpipe/1.0",
			},
			Limiter: limiter,
			Timeout: cfg.CallTimeout,
		}
	}

	aggregator := &research.Aggregator{
		Provider: researcher,
		Options: research.Options{
			IncludeTechnical: true,
			IncludeCosts:     true,
			IncludeRegional:  true,
			MaxSources:       cfg.MaxSources,
		},
	}

	gen := &generate.Generator{
		Text:       text,
		Model:      cfg.LLMModel,
		Aggregator: aggregator,
		Checker:    &factcheck.Checker{Text: text, Model: cfg.LLMModel, Research: researcher},
	}

	return &App{cfg: cfg, generator: gen}, nil
}

// Run generates one article per topic. Topics run independently under a
// bounded group; one failing topic does not cancel the others, but Run
// returns the first error so the CLI can exit nonzero.
func (a *App) Run(ctx context.Context) error {
	limit := a.cfg.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	g := &errgroup.Group{}
	g.SetLimit(limit)

	for _, topic := range a.cfg.Topics {
		topic := topic
		g.Go(func() error {
			if err := a.runTopic(ctx, topic); err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("generation failed")
				return fmt.Errorf("%s: %w", topic, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *App) runTopic(ctx context.Context, topic string) error {
	started := time.Now()

	var onProgress progress.Func
	if a.cfg.Verbose {
		onProgress = func(e progress.Event) {
			log.Debug().Str("topic", topic).Str("stage", e.Stage).Int("pct", e.Percentage).Msg(e.Message)
		}
	}

	result, err := a.generator.Generate(ctx, topic, generate.Options{
		Tone:           a.cfg.Tone,
		Audience:       a.cfg.Audience,
		MinWords:       a.cfg.MinWords,
		MaxWords:       a.cfg.MaxWords,
		IncludeSources: a.cfg.IncludeSources,
		IncludeFAQ:     a.cfg.IncludeFAQ,
		WithMetadata:   a.cfg.WithMetadata,
		FactCheck:      a.cfg.FactCheck,
		Keywords:       a.cfg.Keywords,
		Progress:       onProgress,
	})
	if err != nil {
		return err
	}

	if err := a.writeResult(topic, result); err != nil {
		return err
	}
	log.Info().
		Str("topic", topic).
		Str("title", result.Title).
		Int("words", result.WordCount).
		Int("seoScore", result.SEO.Score).
		Dur("took", time.Since(started)).
		Msg("article generated")
	return nil
}

// writeResult stores the article markdown plus a sidecar JSON report with the
// SEO analysis, metadata and fact-check outcome. Persistence to the site's
// blog index is the surrounding system's job; this only drops files.
func (a *App) writeResult(topic string, result *generate.Result) error {
	dir := a.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	slug := generate.Slugify(topic)
	if slug == "" {
		slug = "artigo"
	}

	articlePath := filepath.Join(dir, slug+".md")
	if err := os.WriteFile(articlePath, []byte(result.Content), 0o644); err != nil {
		return fmt.Errorf("write article: %w", err)
	}

	report := map[string]any{
		"title":       result.Title,
		"wordCount":   result.WordCount,
		"generatedAt": result.GeneratedAt,
		"outline":     result.Outline,
		"seo":         result.SEO,
		"metadata":    result.Metadata,
		"factCheck":   result.FactCheck,
		"sources":     result.Research.Sources,
		"faqs":        result.Research.FAQs,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, slug+".report.json"), data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
