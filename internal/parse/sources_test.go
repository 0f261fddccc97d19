package parse

import "testing"

func TestParseSourcesAllFields(t *testing.T) {
	text := "[FONTE]\n" +
		"Título: Guia ABNT de Pintura\n" +
		"Autor: ABNT\n" +
		"Data: 2023\n" +
		"URL: https://example.com/abnt\n" +
		"Tipo: norma técnica\n" +
		"Resumo: Requisitos para pintura de fachadas.\n" +
		"Relevância: alta\n" +
		"[/FONTE]\n"
	sources := ParseSources(text)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	s := sources[0]
	if s.Title != "Guia ABNT de Pintura" || s.Author != "ABNT" || s.Date != "2023" {
		t.Fatalf("unexpected source %+v", s)
	}
	if s.URL != "https://example.com/abnt" || s.Type != "norma técnica" || s.Relevance != "alta" {
		t.Fatalf("unexpected source %+v", s)
	}
}

func TestParseSourcesURLNotAvailable(t *testing.T) {
	text := "[FONTE]\nTítulo: Apostila impressa\nURL: Não disponível online\n[/FONTE]\n"
	sources := ParseSources(text)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}
	if sources[0].URL != "" {
		t.Fatalf("expected empty URL, got %q", sources[0].URL)
	}
}

func TestParseSourcesRelevanceDefault(t *testing.T) {
	text := "[FONTE]\nTítulo: Sem relevância declarada\n[/FONTE]\n"
	sources := ParseSources(text)
	if sources[0].Relevance != RelevanceUnspecified {
		t.Fatalf("expected %q, got %q", RelevanceUnspecified, sources[0].Relevance)
	}
}

func TestParseSourcesLegacyFallback(t *testing.T) {
	text := "Fonte 1: Manual de Reformas\nAutor: Editora Obra\nAno: 2021\n\n" +
		"Fonte 2: Revista Construção\nURL: Não disponível online\n"
	sources := ParseSources(text)
	if len(sources) != 2 {
		t.Fatalf("expected 2 legacy sources, got %d", len(sources))
	}
	if sources[0].Title != "Manual de Reformas" || sources[0].Author != "Editora Obra" || sources[0].Date != "2021" {
		t.Fatalf("unexpected legacy source %+v", sources[0])
	}
	if sources[1].URL != "" {
		t.Fatalf("legacy URL should normalize to empty, got %q", sources[1].URL)
	}
	if sources[0].Relevance != RelevanceUnspecified {
		t.Fatalf("legacy relevance should default, got %q", sources[0].Relevance)
	}
}

func TestParseSourcesNothingRecognizable(t *testing.T) {
	sources := ParseSources("texto corrido sem nenhuma fonte estruturada")
	if sources == nil {
		t.Fatal("expected non-nil slice")
	}
	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}
