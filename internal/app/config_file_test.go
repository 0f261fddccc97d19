package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `topics:
  - pintura de fachada
  - instalação de drywall
outputDir: ./artigos
llm:
  base: http://localhost:8080/v1
  model: llama-3
  key: segredo
research:
  base: https://api.example.com
  key: outro-segredo
article:
  tone: profissional
  audience: proprietários
  minWords: 800
  maxWords: 1500
  keywords:
    - reforma
    - pintura
  includeSources: true
  includeFAQ: true
  metadata: true
  factCheck: false
  maxSources: 7
limits:
  callTimeout: 45s
  requestsPerMin: 30
  maxConcurrent: 2
cacheDir: ./.cache
verbose: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contentpipe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFile(t *testing.T) {
	fc, err := LoadConfigFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if len(fc.Topics) != 2 || fc.Topics[1] != "instalação de drywall" {
		t.Fatalf("topics = %v", fc.Topics)
	}
	if fc.LLM.Model != "llama-3" || fc.LLM.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("llm = %+v", fc.LLM)
	}
	if fc.Research.APIKey != "outro-segredo" {
		t.Fatalf("research = %+v", fc.Research)
	}
	if fc.Article.MinWords != 800 || fc.Article.MaxSources != 7 {
		t.Fatalf("article = %+v", fc.Article)
	}
	if !fc.Article.IncludeSources || !fc.Article.Metadata || fc.Article.FactCheck {
		t.Fatalf("article toggles = %+v", fc.Article)
	}
	if time.Duration(fc.Limits.CallTimeout) != 45*time.Second || fc.Limits.RequestsPerMin != 30 {
		t.Fatalf("limits = %+v", fc.Limits)
	}
	if !fc.Verbose || fc.CacheDir != "./.cache" {
		t.Fatalf("cacheDir=%q verbose=%v", fc.CacheDir, fc.Verbose)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file must error")
	}
	if _, err := LoadConfigFile(writeConfig(t, "topics: [unclosed")); err == nil {
		t.Fatal("malformed YAML must error")
	}
	if _, err := LoadConfigFile(writeConfig(t, "limits:\n  callTimeout: depois do almoço\n")); err == nil {
		t.Fatal("unparseable duration must error")
	}
}

func TestMergeFlagsWinOverFile(t *testing.T) {
	fc, err := LoadConfigFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	flags := Config{
		Topics:   []string{"troca de telhado"},
		LLMModel: "gpt-4o-mini",
		MinWords: 500,
	}
	cfg := fc.Merge(flags)

	if len(cfg.Topics) != 1 || cfg.Topics[0] != "troca de telhado" {
		t.Fatalf("flag topics lost: %v", cfg.Topics)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("flag model lost: %q", cfg.LLMModel)
	}
	if cfg.MinWords != 500 {
		t.Fatalf("flag minWords lost: %d", cfg.MinWords)
	}

	if cfg.OutputDir != "./artigos" {
		t.Fatalf("file outputDir not applied: %q", cfg.OutputDir)
	}
	if cfg.LLMBaseURL != "http://localhost:8080/v1" || cfg.LLMAPIKey != "segredo" {
		t.Fatalf("file llm values not applied: %+v", cfg)
	}
	if cfg.MaxWords != 1500 || cfg.MaxSources != 7 {
		t.Fatalf("file article values not applied: %+v", cfg)
	}
	if !cfg.IncludeSources || !cfg.IncludeFAQ || !cfg.WithMetadata || cfg.FactCheck {
		t.Fatalf("file toggles not applied: %+v", cfg)
	}
	if cfg.CallTimeout != 45*time.Second || cfg.RequestsPerMin != 30 || cfg.MaxConcurrent != 2 {
		t.Fatalf("file limits not applied: %+v", cfg)
	}
	if !cfg.Verbose || cfg.CacheDir != "./.cache" {
		t.Fatalf("file cache/verbose not applied: %+v", cfg)
	}
}

func TestMergeFileOverridesDefaultedFlags(t *testing.T) {
	fc, err := LoadConfigFile(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	flags := Config{
		Tone:           DefaultTone,
		MinWords:       DefaultMinWords,
		CallTimeout:    DefaultCallTimeout,
		RequestsPerMin: DefaultRequestsPerMin,
	}
	cfg := fc.Merge(flags)
	if cfg.Tone != "profissional" {
		t.Fatalf("defaulted tone should yield to file, got %q", cfg.Tone)
	}
	if cfg.MinWords != 800 {
		t.Fatalf("defaulted minWords should yield to file, got %d", cfg.MinWords)
	}
	if cfg.CallTimeout != 45*time.Second || cfg.RequestsPerMin != 30 {
		t.Fatalf("defaulted limits should yield to file: %+v", cfg)
	}
}

func TestMergeEmptyFileKeepsFlags(t *testing.T) {
	var fc FileConfig
	flags := Config{Topics: []string{"t"}, LLMModel: "m", Verbose: false}
	cfg := fc.Merge(flags)
	if len(cfg.Topics) != 1 || cfg.LLMModel != "m" || cfg.Verbose {
		t.Fatalf("empty file changed flags: %+v", cfg)
	}
}
