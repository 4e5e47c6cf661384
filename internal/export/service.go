// Package export renders accumulated novelty records as downloadable
// spreadsheet or delimited-text bytes.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

// MIME types for the two output formats.
const (
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeCSV  = "text/csv; charset=utf-8"
)

// Sheet is the results worksheet name.
const Sheet = "Novedades"

// Service renders exports. Column order always matches the NoveltyRecord
// field declaration order.
type Service struct {
	impactLabels map[string]string
	logger       *slog.Logger
}

// NewService builds an exporter. impactLabels may be nil; the summary then
// uses the built-in table.
func NewService(impactLabels map[string]string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{impactLabels: impactLabels, logger: logger}
}

// Export renders records as XLSX, falling back to UTF-8 CSV if spreadsheet
// encoding fails. Returns the bytes, the MIME type and a suggested filename.
func (s *Service) Export(records []entity.NoveltyRecord, format string) ([]byte, string, string, error) {
	if format == "csv" {
		b, err := s.RecordsCSV(records)
		return b, MimeCSV, "Novedades_Operativas_Resultados.csv", err
	}
	b, err := s.RecordsXLSX(records)
	if err != nil {
		s.logger.Warn("export.xlsx.failed_falling_back_csv", "error", err)
		cb, cerr := s.RecordsCSV(records)
		return cb, MimeCSV, "Novedades_Operativas_Resultados.csv", cerr
	}
	return b, MimeXLSX, "Novedades_Operativas_Resultados.xlsx", nil
}

// RecordsXLSX returns an XLSX workbook listing every field of every record,
// one header row first.
func (s *Service) RecordsXLSX(records []entity.NoveltyRecord) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", Sheet)

	for col, h := range entity.Headers() {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(Sheet, cell, h)
	}
	for i, r := range records {
		for col, v := range r.Row() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(Sheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell: %w", err)
			}
		}
	}

	// widen the reading-heavy columns
	_ = f.SetColWidth(Sheet, "A", "B", 28)
	_ = f.SetColWidth(Sheet, "G", "G", 24)
	_ = f.SetColWidth(Sheet, "K", "N", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// RecordsCSV returns the comma-delimited UTF-8 fallback rendering.
func (s *Service) RecordsCSV(records []entity.NoveltyRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(entity.Headers()); err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return nil, fmt.Errorf("csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv flush: %w", err)
	}
	s.logger.Info("export.csv.ok", "rows", len(records))
	return buf.Bytes(), nil
}
