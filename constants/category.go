package constants

import "strings"

// Sentinel categories flag records that need manual review instead of a
// model-produced classification. Store these exact strings.
const (
	CategoryValidarManualmente = "VALIDAR MANUALMENTE"
	CategoryErrorFormato       = "ERROR DE FORMATO"
	CategoryErrorProcesamiento = "ERROR DE PROCESAMIENTO"
	CategoryErrorLectura       = "ERROR DE LECTURA"
)

// RespuestaManual is the placeholder reply carried by every sentinel record.
const RespuestaManual = "VALIDAR MANUALMENTE"

// Values for the validado_por_ia column.
const (
	ValidadoSi = "Sí"
	ValidadoNo = "No"
)

// IsSentinel reports whether a category marks a degraded or failed
// classification requiring human attention.
func IsSentinel(categoria string) bool {
	c := strings.TrimSpace(categoria)
	if c == CategoryValidarManualmente {
		return true
	}
	return strings.Contains(strings.ToUpper(c), "ERROR")
}
