package llm

import (
	"strings"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"padded", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeReply(t *testing.T) {
	reply := `{"categoria":"Desfase procesal","accion_recomendada":"Validar en Rama Judicial","respuesta_sugerida":"Estimado equipo, ..."}`
	c, err := DecodeReply(reply)
	if err != nil {
		t.Fatalf("DecodeReply: %v", err)
	}
	if c.Categoria != "Desfase procesal" {
		t.Errorf("Categoria = %q", c.Categoria)
	}
	if c.AccionRecomendada != "Validar en Rama Judicial" {
		t.Errorf("AccionRecomendada = %q", c.AccionRecomendada)
	}
	if c.RespuestaSugerida != "Estimado equipo, ..." {
		t.Errorf("RespuestaSugerida = %q", c.RespuestaSugerida)
	}
}

func TestDecodeReplyFenced(t *testing.T) {
	reply := "```json\n{\"categoria\":\"Embargo no aplicado\",\"accion_recomendada\":\"Oficiar al juzgado\"}\n```"
	c, err := DecodeReply(reply)
	if err != nil {
		t.Fatalf("DecodeReply: %v", err)
	}
	if c.Categoria != "Embargo no aplicado" {
		t.Errorf("Categoria = %q", c.Categoria)
	}
}

func TestDecodeReplyRepairsDoubledQuotes(t *testing.T) {
	reply := `{""categoria"":""Desistimiento"",""accion_recomendada"":""Archivar proceso""}`
	c, err := DecodeReply(reply)
	if err != nil {
		t.Fatalf("DecodeReply after repair: %v", err)
	}
	if c.Categoria != "Desistimiento" {
		t.Errorf("Categoria = %q", c.Categoria)
	}
}

func TestDecodeReplyRejectsProse(t *testing.T) {
	if _, err := DecodeReply("Lo siento, no puedo clasificar este documento."); err == nil {
		t.Fatal("expected an error for a prose reply")
	}
}

func TestDecodeReplyRejectsMissingRequiredKeys(t *testing.T) {
	_, err := DecodeReply(`{"respuesta_sugerida":"hola"}`)
	if err == nil {
		t.Fatal("expected schema validation to reject the reply")
	}
	if !strings.Contains(err.Error(), "schema") {
		t.Errorf("unexpected error: %v", err)
	}
}
