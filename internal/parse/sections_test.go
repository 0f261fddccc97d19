package parse

import "testing"

func TestKeyNormalization(t *testing.T) {
	cases := map[string]string{
		"Especificações Técnicas": "ESPECIFICACOES_TECNICAS",
		"Visão Geral":             "VISAO_GERAL",
		"visao geral":             "VISAO_GERAL",
		"  Custos  ":              "CUSTOS",
		"Inovações":               "INOVACOES",
		"Previsões   de  mercado": "PREVISOES_DE_MERCADO",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Errorf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSectionsLookupIgnoresAccents(t *testing.T) {
	text := "introdução solta que deve ser descartada\n\n" +
		"## Especificações Técnicas\nfoo\n\n## Custos\nentre R$ 20 e R$ 40 por m²\n"
	sections := Sections(text)
	if got := sections["ESPECIFICACOES_TECNICAS"]; got != "foo" {
		t.Fatalf("technical section = %q, want %q", got, "foo")
	}
	if got := sections["CUSTOS"]; got != "entre R$ 20 e R$ 40 por m²" {
		t.Fatalf("costs section = %q", got)
	}
	if _, ok := sections["INTRODUCAO"]; ok {
		t.Fatal("text outside any heading must be discarded")
	}
}

func TestSectionsEmptyInput(t *testing.T) {
	if s := Sections(""); s == nil || len(s) != 0 {
		t.Fatalf("expected empty non-nil map, got %v", s)
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Visão GERAL"); got != "visao geral" {
		t.Fatalf("Fold = %q", got)
	}
}
