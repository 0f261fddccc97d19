package parse

import "testing"

func TestBlocksRoundTrip(t *testing.T) {
	text := "Aqui estão as fontes encontradas:\n\n" +
		"[FONTE]\n" +
		"Título: Guia de Pintura Externa\n" +
		"Autor: Conselho Brasileiro da Construção\n" +
		"Data: 2023\n" +
		"URL: https://example.com/guia\n" +
		"Tipo: guia técnico\n" +
		"Resumo: Procedimentos de preparação e aplicação.\n" +
		"Relevância: alta\n" +
		"[/FONTE]\n"

	blocks := Blocks(text, SourceMarker)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	b := blocks[0]
	want := map[string]string{
		"TITULO":     "Guia de Pintura Externa",
		"AUTOR":      "Conselho Brasileiro da Construção",
		"DATA":       "2023",
		"URL":        "https://example.com/guia",
		"TIPO":       "guia técnico",
		"RESUMO":     "Procedimentos de preparação e aplicação.",
		"RELEVANCIA": "alta",
	}
	for label, val := range want {
		got, ok := b.Get(label)
		if !ok {
			t.Fatalf("missing field %q", label)
		}
		if got != val {
			t.Fatalf("field %q: got %q want %q", label, got, val)
		}
	}
}

func TestBlocksMultilineValue(t *testing.T) {
	text := "[FONTE]\nTítulo: Relatório\nResumo: primeira linha\nsegunda linha\n[/FONTE]\n"
	blocks := Blocks(text, SourceMarker)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	got, _ := blocks[0].Get("RESUMO")
	if got != "primeira linha\nsegunda linha" {
		t.Fatalf("continuation not appended: %q", got)
	}
}

func TestBlocksKeepsInputOrder(t *testing.T) {
	text := "[PERGUNTA]\nPergunta: A?\nResposta: Sim.\n[/PERGUNTA]\n" +
		"[PERGUNTA]\nPergunta: B?\nResposta: Não.\n[/PERGUNTA]\n"
	blocks := Blocks(text, FAQMarker)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if q, _ := blocks[0].Get("PERGUNTA"); q != "A?" {
		t.Fatalf("order not preserved, first question %q", q)
	}
	labels := blocks[0].Labels()
	if len(labels) != 2 || labels[0] != "PERGUNTA" || labels[1] != "RESPOSTA" {
		t.Fatalf("unexpected label order %v", labels)
	}
}

func TestBlocksNoMatchesReturnsEmpty(t *testing.T) {
	for _, text := range []string{"", "apenas prosa solta\nsem marcadores", "[OUTRA]\nCampo: x\n[/OUTRA]"} {
		blocks := Blocks(text, SourceMarker)
		if blocks == nil {
			t.Fatalf("expected non-nil slice for %q", text)
		}
		if len(blocks) != 0 {
			t.Fatalf("expected no blocks for %q, got %d", text, len(blocks))
		}
	}
}

func TestBlocksUnterminatedBlockKept(t *testing.T) {
	text := "[FONTE]\nTítulo: Sem fechamento\n"
	blocks := Blocks(text, SourceMarker)
	if len(blocks) != 1 {
		t.Fatalf("expected unterminated block to be kept, got %d", len(blocks))
	}
}
