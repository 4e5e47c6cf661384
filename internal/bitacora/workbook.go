package bitacora

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/contacto-solutions/novedades-tracker/internal/common"
	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

// Sheet is the bitácora worksheet name.
const Sheet = "Bitacora"

// Workbook appends processed records to the XLSX bitácora at a fixed path.
// Appends go through a temp file in the same directory followed by a rename,
// so an interrupted write cannot corrupt the existing bitácora. The file is
// never auto-truncated. In-process appends are serialized by a mutex so
// concurrent batches cannot read the same base rows and lose an update.
// Writers from other processes are not guarded against; deployment is
// single-operator, single-process.
type Workbook struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

func NewWorkbook(path string, logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workbook{path: path, logger: logger}
}

// Path returns the bitácora location on disk.
func (w *Workbook) Path() string {
	return w.path
}

// Stat reports whether the workbook exists on disk. Returns
// common.ErrNotFound before the first append.
func (w *Workbook) Stat() error {
	if _, err := os.Stat(w.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return common.ErrNotFound
		}
		return common.WrapError(err, "stat bitacora")
	}
	return nil
}

// Append adds one row per record after the existing content.
func (w *Workbook) Append(records []entity.NoveltyRecord) error {
	if len(records) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	start := time.Now()

	f, nextRow, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	for _, r := range records {
		for col, v := range r.Row() {
			cell, err := excelize.CoordinatesToCellName(col+1, nextRow)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(Sheet, cell, v); err != nil {
				return fmt.Errorf("set cell: %w", err)
			}
		}
		nextRow++
	}

	if err := w.saveAtomic(f); err != nil {
		return err
	}
	w.logger.Info("bitacora.workbook.appended",
		"path", w.path,
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// open loads the existing workbook or creates a fresh one with the header
// row, returning the first free row index (1-based).
func (w *Workbook) open() (*excelize.File, int, error) {
	if _, err := os.Stat(w.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, 0, fmt.Errorf("stat bitacora: %w", err)
		}
		f := excelize.NewFile()
		f.SetSheetName("Sheet1", Sheet)
		for col, h := range entity.Headers() {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(Sheet, cell, h)
		}
		return f, 2, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open bitacora: %w", err)
	}
	if idx, _ := f.GetSheetIndex(Sheet); idx == -1 {
		if _, err := f.NewSheet(Sheet); err != nil {
			f.Close()
			return nil, 0, fmt.Errorf("create sheet: %w", err)
		}
		for col, h := range entity.Headers() {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			_ = f.SetCellValue(Sheet, cell, h)
		}
		return f, 2, nil
	}
	rows, err := f.GetRows(Sheet)
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("read bitacora rows: %w", err)
	}
	return f, len(rows) + 1, nil
}

func (w *Workbook) saveAtomic(f *excelize.File) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create bitacora dir: %w", err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(w.path)+".tmp")
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("write bitacora temp: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename bitacora: %w", err)
	}
	return nil
}
