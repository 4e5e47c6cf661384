package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildReplySchema returns the JSON-Schema (draft 2020-12 subset) a model
// reply must satisfy: an object with non-empty categoria and
// accion_recomendada. All variant keys are optional strings; unknown keys
// are tolerated, the decoder simply ignores them.
func BuildReplySchema() map[string]any {
	strProp := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"categoria":           map[string]any{"type": "string", "minLength": 1},
			"accion_recomendada":  map[string]any{"type": "string", "minLength": 1},
			"respuesta_sugerida":  strProp,
			"subcategoria":        strProp,
			"impacto":             strProp,
			"resumen":             strProp,
			"detalle":             strProp,
			"accion_automatizada": strProp,
			"validado_por_ia":     strProp,
		},
		"required": []string{"categoria", "accion_recomendada"},
	}
}

// ValidateAgainstSchema validates data against schemaMap.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
