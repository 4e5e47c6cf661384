package llm

import "context"

// Classification is the normalized shape we want from the model. Every field
// is a string; Normalize fills each recognized key with its default before a
// value leaves this package, so callers never see a partially-populated map.
type Classification struct {
	Categoria          string `json:"categoria"`
	AccionRecomendada  string `json:"accion_recomendada"`
	RespuestaSugerida  string `json:"respuesta_sugerida"`
	Subcategoria       string `json:"subcategoria,omitempty"`
	Impacto            string `json:"impacto,omitempty"`
	Resumen            string `json:"resumen,omitempty"`
	Detalle            string `json:"detalle,omitempty"`
	AccionAutomatizada string `json:"accion_automatizada,omitempty"`
	ValidadoPorIA      string `json:"validado_por_ia,omitempty"`
}

// Classifier is the interface the pipeline depends on. Classify never
// returns an error: every failure mode resolves to a sentinel
// Classification flagged for manual review.
type Classifier interface {
	Classify(ctx context.Context, text string) Classification
}
