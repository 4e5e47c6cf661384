package llm

import (
	"strings"

	"github.com/contacto-solutions/novedades-tracker/constants"
)

// Normalize fills every recognized key with its default and derives the
// validado_por_ia flag. The flag is always computed locally, never trusted
// from the model: "Sí" unless the category contains "ERROR"
// (case-insensitive) or is exactly the manual-review sentinel.
func Normalize(c Classification) Classification {
	c.Categoria = strings.TrimSpace(c.Categoria)
	c.AccionRecomendada = strings.TrimSpace(c.AccionRecomendada)
	c.Subcategoria = strings.TrimSpace(c.Subcategoria)
	c.Impacto = strings.TrimSpace(c.Impacto)

	if c.Categoria == "" {
		c.Categoria = constants.CategoryValidarManualmente
	}
	if c.AccionRecomendada == "" {
		c.AccionRecomendada = "Revisar manualmente el contenido."
	}

	if constants.IsSentinel(c.Categoria) {
		c.ValidadoPorIA = constants.ValidadoNo
	} else {
		c.ValidadoPorIA = constants.ValidadoSi
	}
	return c
}
