// Package pipeline wires the stages together: extract -> identify ->
// classify -> accumulate. Batches run strictly sequentially in upload
// order; no failure mode aborts a batch.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/contacto-solutions/novedades-tracker/constants"
	"github.com/contacto-solutions/novedades-tracker/internal/bitacora"
	"github.com/contacto-solutions/novedades-tracker/internal/entity"
	"github.com/contacto-solutions/novedades-tracker/internal/extract"
	"github.com/contacto-solutions/novedades-tracker/internal/identify"
	"github.com/contacto-solutions/novedades-tracker/internal/llm"
	"github.com/contacto-solutions/novedades-tracker/internal/session"
)

// Processor coordinates one file's trip through the pipeline and appends
// the result to the session and, when configured, to durable storage.
type Processor struct {
	Logger     *slog.Logger
	Extractor  extract.TextExtractor
	Classifier llm.Classifier
	Session    *session.Session
	Workbook   *bitacora.Workbook // optional durable bitácora
	History    *bitacora.Store    // optional durable history
}

// BatchResult summarizes one processed batch. A completion acknowledgment
// is produced regardless of how many records landed in an error state.
type BatchResult struct {
	Processed    int                    `json:"processed"`
	Errored      int                    `json:"errored"`
	DurableError string                 `json:"durable_error,omitempty"`
	Records      []entity.NoveltyRecord `json:"records"`
}

func NewProcessor(logger *slog.Logger, ex extract.TextExtractor, cl llm.Classifier, sess *session.Session, wb *bitacora.Workbook, hist *bitacora.Store) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		Logger:     logger,
		Extractor:  ex,
		Classifier: cl,
		Session:    sess,
		Workbook:   wb,
		History:    hist,
	}
}

// ProcessBatch runs every document through the pipeline, one at a time, in
// the given order. Each file yields exactly one NoveltyRecord; extraction
// and classification failures degrade to sentinel records instead of
// dropping the file or aborting the batch.
func (p *Processor) ProcessBatch(ctx context.Context, docs []extract.SourceDocument) BatchResult {
	start := time.Now()
	res := BatchResult{Records: make([]entity.NoveltyRecord, 0, len(docs))}

	for _, doc := range docs {
		rec := p.processOne(ctx, doc)
		res.Records = append(res.Records, rec)
		res.Processed++
		if rec.ValidadoPorIA != constants.ValidadoSi {
			res.Errored++
		}
	}

	p.Session.Append(res.Records...)

	if p.Workbook != nil {
		if err := p.Workbook.Append(res.Records); err != nil {
			p.Logger.Error("pipeline.bitacora.workbook_failed", "error", err)
			res.DurableError = err.Error()
		}
	}
	if p.History != nil {
		if err := p.History.Append(res.Records); err != nil {
			p.Logger.Error("pipeline.bitacora.history_failed", "error", err)
			if res.DurableError == "" {
				res.DurableError = err.Error()
			}
		}
	}

	p.Logger.Info("pipeline.batch.done",
		"session_id", p.Session.ID(),
		"files", len(docs),
		"errored", res.Errored,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func (p *Processor) processOne(ctx context.Context, doc extract.SourceDocument) entity.NoveltyRecord {
	content := p.Extractor.Extract(doc)

	// identifiers come from the subject first, body as fallback
	match := identify.Extract(content.Subject)
	if match.Empty() {
		match = identify.Extract(content.Body)
	}

	var c llm.Classification
	if content.Err != "" {
		c = llm.ReadError(content.Err)
	} else {
		c = p.Classifier.Classify(ctx, classifyText(content))
	}

	return entity.NewNoveltyRecord(doc.Name, content, match, c, time.Now())
}

// classifyText frames the body with the structured headers so the model
// sees the same context an operator reading the mail would.
func classifyText(c extract.Content) string {
	var b strings.Builder
	if c.Sender != "" {
		b.WriteString("De: ")
		b.WriteString(c.Sender)
		b.WriteString("\n")
	}
	if c.Subject != "" {
		b.WriteString("Asunto: ")
		b.WriteString(c.Subject)
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(c.Body)
	return b.String()
}
