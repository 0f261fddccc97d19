package seo

import "testing"

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"casa": 2,
		"não":  1,
	}
	for word, want := range cases {
		if got := CountSyllables(word); got != want {
			t.Errorf("CountSyllables(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestCountSyllablesNeverBelowOne(t *testing.T) {
	words := []string{"a", "e", "ai", "pai", "sol", "chão", "2023", "água", "construção", "x"}
	for _, w := range words {
		if got := CountSyllables(w); got < 1 {
			t.Errorf("CountSyllables(%q) = %d, want >= 1", w, got)
		}
	}
}

func TestCountSyllablesEmpty(t *testing.T) {
	if got := CountSyllables(""); got != 0 {
		t.Fatalf("empty word should count 0, got %d", got)
	}
}

func TestCountSyllablesDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := CountSyllables("manutenção"); got != CountSyllables("manutenção") {
			t.Fatalf("nondeterministic result %d", got)
		}
	}
}

func TestSentenceCount(t *testing.T) {
	text := "A tinta secou. O muro ficou pronto! Ficou bom? Sim."
	if got := SentenceCount(text); got != 4 {
		t.Fatalf("SentenceCount = %d, want 4", got)
	}
	if got := SentenceCount(""); got != 0 {
		t.Fatalf("empty SentenceCount = %d, want 0", got)
	}
}

func TestFleschScoreClamped(t *testing.T) {
	m := Compute("Impermeabilização extraordinariamente complexa; considerações arquitetônicas extraordinariamente multidimensionais caracterizam especificações contemporâneas internacionalmente reconhecidas.", nil)
	if m.FleschScore < 0 || m.FleschScore > 100 {
		t.Fatalf("FleschScore out of range: %f", m.FleschScore)
	}

	m = Compute("Sol. Lua. Mar.", nil)
	if m.FleschScore < 0 || m.FleschScore > 100 {
		t.Fatalf("FleschScore out of range: %f", m.FleschScore)
	}
}

func TestPassiveVoiceDetection(t *testing.T) {
	m := Compute("A parede foi pintada pela equipe. Os azulejos foram assentados ontem.", nil)
	if m.PassiveVoiceCount < 2 {
		t.Fatalf("expected at least 2 passive constructions, got %d", m.PassiveVoiceCount)
	}
	m = Compute("A equipe pintou a parede rapidamente.", nil)
	if m.PassiveVoiceCount != 0 {
		t.Fatalf("active sentence flagged as passive: %d", m.PassiveVoiceCount)
	}
}
