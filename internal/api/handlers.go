package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/contacto-solutions/novedades-tracker/constants"
	"github.com/contacto-solutions/novedades-tracker/internal/bitacora"
	"github.com/contacto-solutions/novedades-tracker/internal/common"
	"github.com/contacto-solutions/novedades-tracker/internal/export"
	"github.com/contacto-solutions/novedades-tracker/internal/extract"
	"github.com/contacto-solutions/novedades-tracker/internal/pipeline"
	"github.com/contacto-solutions/novedades-tracker/internal/session"
)

// MaxBatchFiles bounds one processing request. Operator batches are a few
// dozen files; anything bigger is almost certainly a mistake.
const MaxBatchFiles = 200

// Handler serves the operator-facing API.
type Handler struct {
	logger    *slog.Logger
	processor *pipeline.Processor
	session   *session.Session
	exporter  *export.Service
	workbook  *bitacora.Workbook
	history   *bitacora.Store
}

func NewHandler(logger *slog.Logger, proc *pipeline.Processor, sess *session.Session, exp *export.Service, wb *bitacora.Workbook, hist *bitacora.Store) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		processor: proc,
		session:   sess,
		exporter:  exp,
		workbook:  wb,
		history:   hist,
	}
}

// HandleHealth reports liveness and the session size.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":     "ok",
		"session_id": h.session.ID(),
		"records":    h.session.Len(),
		"time":       time.Now().Format(time.RFC3339),
	})
}

type processResponse struct {
	Mensaje string `json:"mensaje"`
	pipeline.BatchResult
}

// HandleProcess accepts a multipart batch under the "files" field, runs the
// pipeline, and acknowledges completion regardless of how many records
// landed in an error state.
func (h *Handler) HandleProcess(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return NewBadRequestError("multipart form required", err)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return NewValidationError("files")
	}
	if len(files) > MaxBatchFiles {
		return NewBadRequestError(fmt.Sprintf("too many files in one batch (max %d)", MaxBatchFiles), nil)
	}

	docs := make([]extract.SourceDocument, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return NewInternalError("failed to open uploaded file", err)
		}
		raw, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return NewInternalError("failed to read uploaded file", err)
		}
		docs = append(docs, extract.SourceDocument{
			Name: fh.Filename,
			Kind: constants.MapExtToKind(filepath.Ext(fh.Filename)),
			Raw:  raw,
		})
	}

	res := h.processor.ProcessBatch(c.Request().Context(), docs)
	return c.JSON(http.StatusOK, processResponse{
		Mensaje:     "Análisis completado correctamente.",
		BatchResult: res,
	})
}

// HandleListNovelties returns the session records in insertion order.
func (h *Handler) HandleListNovelties(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.Records())
}

// HandleExport downloads the accumulated records as a spreadsheet, or CSV
// when ?format=csv (and as the automatic fallback).
func (h *Handler) HandleExport(c echo.Context) error {
	format := c.QueryParam("format")
	if format != "" && format != "xlsx" && format != "csv" {
		return NewValidationError("format")
	}
	data, mime, filename, err := h.exporter.Export(h.session.Records(), format)
	if err != nil {
		return NewInternalError("failed to render export", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, mime, data)
}

// HandleSummary returns the executive summary of the current session.
func (h *Handler) HandleSummary(c echo.Context) error {
	summary := h.exporter.Summary(h.session.Records())
	if summary == nil {
		summary = []export.CategorySummary{}
	}
	return c.JSON(http.StatusOK, summary)
}

// HandleReset clears the in-memory session. The durable bitácora is never
// deleted by a reset.
func (h *Handler) HandleReset(c echo.Context) error {
	h.session.Reset()
	h.logger.Info("session.reset", "session_id", h.session.ID())
	return c.NoContent(http.StatusNoContent)
}

// HandleBitacoraExport downloads the durable bitácora workbook.
func (h *Handler) HandleBitacoraExport(c echo.Context) error {
	path := h.workbook.Path()
	if err := h.workbook.Stat(); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return &APIError{
				Status:  http.StatusNotFound,
				Code:    "NOT_FOUND",
				Message: "bitácora not found: no records have been processed yet",
			}
		}
		return NewInternalError("failed to read bitácora", err)
	}
	return c.Attachment(path, filepath.Base(path))
}

// HandleBitacoraStats returns the all-time per-category tallies from the
// history store.
func (h *Handler) HandleBitacoraStats(c echo.Context) error {
	total, err := h.history.Count()
	if err != nil {
		return NewInternalError("failed to read history", err)
	}
	byCat, err := h.history.CountByCategory()
	if err != nil {
		return NewInternalError("failed to read history", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"total":         total,
		"por_categoria": byCat,
	})
}
