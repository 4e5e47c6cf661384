package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contacto-solutions/novedades-tracker/internal/llm"
)

// Classify implements llm.Classifier over text-only chat/completions.
// Exactly one call per document, bounded temperature, no retry and no
// backoff: the workload is interactive and low-volume. Every failure mode
// resolves to a sentinel Classification; errors never cross this boundary.
func (c *Client) Classify(ctx context.Context, text string) llm.Classification {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.classify.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", *c.cfg.Temperature,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": *c.cfg.Temperature,
		"messages": []map[string]any{
			{"role": "system", "content": llm.SystemPersona},
			{"role": "user", "content": llm.BuildUserPrompt(text)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.logger.Error("llm.classify.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ProcessingError(err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.classify.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ProcessingError(fmt.Errorf("decode openai response: %w", err))
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.classify.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.ProcessingError(errors.New("no choices in openai response"))
	}
	content := strings.TrimSpace(cc.Choices[0].Message.Content)

	out, err := llm.DecodeReply(content)
	if err != nil {
		c.logger.Warn("llm.classify.format_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.FormatError(content)
	}

	out = llm.Normalize(out)
	c.logger.Info("llm.classify.ok",
		"req_id", rid,
		"categoria", out.Categoria,
		"validado", out.ValidadoPorIA,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("llm.response_body_close_error", "error", err)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}
