package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/contacto-solutions/novedades-tracker/internal/extract"
	"github.com/contacto-solutions/novedades-tracker/internal/identify"
	"github.com/contacto-solutions/novedades-tracker/internal/llm"
)

// ProcessedAtLayout renders timestamps at minute precision, local time.
const ProcessedAtLayout = "2006-01-02 15:04"

// NoveltyRecord is the row persisted and displayed: the union of the source
// file name, extracted headers, identifier match and classification. Created
// once per processed file and never mutated afterward.
type NoveltyRecord struct {
	ID                 uuid.UUID `json:"id"`
	Archivo            string    `json:"archivo"`
	Asunto             string    `json:"asunto"`
	Remitente          string    `json:"remitente"`
	FechaCorreo        string    `json:"fecha_correo"`
	Cedula             string    `json:"cedula"`
	NombreCliente      string    `json:"nombre_cliente"`
	Categoria          string    `json:"categoria"`
	Subcategoria       string    `json:"subcategoria"`
	Impacto            string    `json:"impacto"`
	Resumen            string    `json:"resumen"`
	AccionRecomendada  string    `json:"accion_recomendada"`
	AccionAutomatizada string    `json:"accion_automatizada"`
	Detalle            string    `json:"detalle"`
	RespuestaSugerida  string    `json:"respuesta_sugerida"`
	ValidadoPorIA      string    `json:"validado_por_ia"`
	ProcesadoEn        time.Time `json:"procesado_en"`
}

// NewNoveltyRecord merges the pipeline stages into one row.
func NewNoveltyRecord(archivo string, content extract.Content, match identify.Match, c llm.Classification, at time.Time) NoveltyRecord {
	return NoveltyRecord{
		ID:                 uuid.New(),
		Archivo:            archivo,
		Asunto:             content.Subject,
		Remitente:          content.Sender,
		FechaCorreo:        content.Date,
		Cedula:             match.Cedula,
		NombreCliente:      match.Nombre,
		Categoria:          c.Categoria,
		Subcategoria:       c.Subcategoria,
		Impacto:            c.Impacto,
		Resumen:            c.Resumen,
		AccionRecomendada:  c.AccionRecomendada,
		AccionAutomatizada: c.AccionAutomatizada,
		Detalle:            c.Detalle,
		RespuestaSugerida:  c.RespuestaSugerida,
		ValidadoPorIA:      c.ValidadoPorIA,
		ProcesadoEn:        at.Truncate(time.Minute),
	}
}

// Headers lists the export columns, order matching field declaration order.
func Headers() []string {
	return []string{
		"ARCHIVO",
		"ASUNTO",
		"REMITENTE",
		"FECHA_CORREO",
		"CEDULA",
		"NOMBRE_CLIENTE",
		"CATEGORIA",
		"SUBCATEGORIA",
		"IMPACTO",
		"RESUMEN",
		"ACCION_RECOMENDADA",
		"ACCION_AUTOMATIZADA",
		"DETALLE",
		"RESPUESTA_SUGERIDA",
		"VALIDADO_POR_IA",
		"PROCESADO_EN",
	}
}

// Row renders the record in Headers order.
func (r NoveltyRecord) Row() []string {
	return []string{
		r.Archivo,
		r.Asunto,
		r.Remitente,
		r.FechaCorreo,
		r.Cedula,
		r.NombreCliente,
		r.Categoria,
		r.Subcategoria,
		r.Impacto,
		r.Resumen,
		r.AccionRecomendada,
		r.AccionAutomatizada,
		r.Detalle,
		r.RespuestaSugerida,
		r.ValidadoPorIA,
		r.ProcesadoEn.Format(ProcessedAtLayout),
	}
}
