package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes ```json ... ``` (or plain ```) markup some models
// wrap around their reply.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// the fence may carry a language tag on the first line
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if first == "" || !strings.ContainsAny(first, "{}") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// repairDoubledQuotes collapses "" to ". Some replies escape quotes by
// doubling them, spreadsheet style, which breaks JSON decoding.
func repairDoubledQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// DecodeReply turns a raw model reply into a Classification. Decoding is
// strictly structured: fences stripped, one doubled-quote repair retry, then
// schema validation. Any failure returns an error; the caller degrades to
// the format-error sentinel carrying the raw reply.
func DecodeReply(raw string) (Classification, error) {
	content := StripCodeFences(raw)

	data := []byte(content)
	var probe map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		repaired := []byte(repairDoubledQuotes(content))
		if err2 := json.Unmarshal(repaired, &probe); err2 != nil {
			return Classification{}, fmt.Errorf("decode reply: %w", err)
		}
		data = repaired
	}

	if err := ValidateAgainstSchema(BuildReplySchema(), data); err != nil {
		return Classification{}, err
	}

	var c Classification
	if err := json.Unmarshal(data, &c); err != nil {
		return Classification{}, fmt.Errorf("unmarshal reply: %w", err)
	}
	return c, nil
}
