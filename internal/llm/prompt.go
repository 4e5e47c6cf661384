package llm

import "strings"

// SystemPersona is the fixed system-role message describing the assistant.
const SystemPersona = "Eres un abogado experto en operaciones judiciales bancarias."

// BuildUserPrompt embeds the document text in the fixed instruction
// template. Replies are expected as a bare JSON object; the key list here
// must stay in sync with BuildReplySchema.
func BuildUserPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Analiza el siguiente correo o documento de novedad operativa y clasifícalo según su naturaleza.\n\n")
	b.WriteString("Texto:\n")
	b.WriteString(text)
	b.WriteString("\n\nResponde estrictamente en formato JSON con las siguientes claves:\n")
	b.WriteString("- categoria\n")
	b.WriteString("- accion_recomendada\n")
	b.WriteString("- respuesta_sugerida\n")
	b.WriteString("Opcionalmente puedes incluir: subcategoria, impacto, resumen, detalle, accion_automatizada.\n")
	b.WriteString("No incluyas texto fuera del objeto JSON.")
	return b.String()
}
