// Package bitacora is the durable side of accumulation: an append-only
// SQLite history that survives sessions, and the fixed-path XLSX workbook
// the back office treats as the bitácora proper. Neither is ever truncated
// by a session reset.
package bitacora

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

// Entry is one processed novelty in the history table.
type Entry struct {
	ID                 uint   `gorm:"primaryKey"`
	RecordID           string `gorm:"index"`
	Archivo            string
	Asunto             string
	Remitente          string
	FechaCorreo        string
	Cedula             string
	NombreCliente      string
	Categoria          string `gorm:"index"`
	Subcategoria       string
	Impacto            string
	Resumen            string
	AccionRecomendada  string
	AccionAutomatizada string
	Detalle            string
	RespuestaSugerida  string
	ValidadoPorIA      string
	ProcesadoEn        time.Time
	CreatedAt          time.Time
}

// Store persists every processed record across sessions.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// OpenStore opens (or creates) the history database and migrates its schema.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Append inserts records; rows are never updated or deleted afterward.
func (s *Store) Append(records []entity.NoveltyRecord) error {
	if len(records) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			RecordID:           r.ID.String(),
			Archivo:            r.Archivo,
			Asunto:             r.Asunto,
			Remitente:          r.Remitente,
			FechaCorreo:        r.FechaCorreo,
			Cedula:             r.Cedula,
			NombreCliente:      r.NombreCliente,
			Categoria:          r.Categoria,
			Subcategoria:       r.Subcategoria,
			Impacto:            r.Impacto,
			Resumen:            r.Resumen,
			AccionRecomendada:  r.AccionRecomendada,
			AccionAutomatizada: r.AccionAutomatizada,
			Detalle:            r.Detalle,
			RespuestaSugerida:  r.RespuestaSugerida,
			ValidadoPorIA:      r.ValidadoPorIA,
			ProcesadoEn:        r.ProcesadoEn,
		})
	}
	if err := s.db.Create(&entries).Error; err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	s.logger.Info("bitacora.history.appended", "rows", len(entries))
	return nil
}

// Count reports the total number of historical entries.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&Entry{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// CategoryCount is a per-category tally over the full history.
type CategoryCount struct {
	Categoria string `json:"categoria"`
	Total     int64  `json:"total"`
}

// CountByCategory groups the full history by category.
func (s *Store) CountByCategory() ([]CategoryCount, error) {
	var out []CategoryCount
	err := s.db.Model(&Entry{}).
		Select("categoria, count(*) as total").
		Group("categoria").
		Order("total desc").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}
	return out, nil
}
