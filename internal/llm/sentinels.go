package llm

import (
	"fmt"

	"github.com/contacto-solutions/novedades-tracker/constants"
)

// Unavailable is returned when the remote service was never initialized
// (missing credential, init failure). No network call is attempted.
func Unavailable() Classification {
	return Normalize(Classification{
		Categoria:         constants.CategoryValidarManualmente,
		AccionRecomendada: "Revisar manualmente el contenido. La IA no está disponible.",
		RespuestaSugerida: constants.RespuestaManual,
	})
}

// FormatError is returned when the service replied but the reply is not the
// expected JSON object. The raw reply is preserved verbatim in
// RespuestaSugerida for manual inspection; it must not be discarded.
func FormatError(raw string) Classification {
	return Normalize(Classification{
		Categoria:         constants.CategoryErrorFormato,
		AccionRecomendada: "La IA no devolvió un JSON válido.",
		RespuestaSugerida: raw,
	})
}

// ProcessingError is returned for any transport or call failure (timeout,
// auth, rate limit, malformed request). The cause travels in
// AccionRecomendada so the operator sees it in the sheet.
func ProcessingError(err error) Classification {
	return Normalize(Classification{
		Categoria:         constants.CategoryErrorProcesamiento,
		AccionRecomendada: fmt.Sprintf("Validar manualmente. Error: %v", err),
		RespuestaSugerida: constants.RespuestaManual,
	})
}

// ReadError is the sentinel for extraction failures upstream of
// classification.
func ReadError(cause string) Classification {
	return Normalize(Classification{
		Categoria:         constants.CategoryErrorLectura,
		AccionRecomendada: fmt.Sprintf("Revisar manualmente (%s)", cause),
		RespuestaSugerida: constants.RespuestaManual,
	})
}
