package bitacora

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/contacto-solutions/novedades-tracker/internal/common"
	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(Sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestWorkbookCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitacora.xlsx")
	wb := NewWorkbook(path, nil)

	if err := wb.Append([]entity.NoveltyRecord{testRecord("Desfase procesal")}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want header + 1", len(rows))
	}
	for i, h := range entity.Headers() {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "novedad.eml" {
		t.Errorf("first data cell = %q", rows[1][0])
	}
}

func TestWorkbookAppendAccumulates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitacora.xlsx")
	wb := NewWorkbook(path, nil)

	if err := wb.Append([]entity.NoveltyRecord{
		testRecord("Desfase procesal"),
		testRecord("Desistimiento"),
	}); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if err := wb.Append([]entity.NoveltyRecord{testRecord("Desistimiento")}); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header + 3", len(rows))
	}
	// header is written once; later appends only add data rows
	if rows[0][0] != entity.Headers()[0] {
		t.Errorf("header[0] = %q", rows[0][0])
	}
}

func TestWorkbookConcurrentAppendsLoseNothing(t *testing.T) {
	// parallel batches must not read the same base rows and drop an update
	path := filepath.Join(t.TempDir(), "bitacora.xlsx")
	wb := NewWorkbook(path, nil)

	const writers, batches = 4, 5
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < batches; j++ {
				if err := wb.Append([]entity.NoveltyRecord{testRecord("Desfase procesal")}); err != nil {
					t.Errorf("Append: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	rows := readRows(t, path)
	if len(rows) != writers*batches+1 {
		t.Fatalf("rows = %d, want header + %d", len(rows), writers*batches)
	}
}

func TestWorkbookStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitacora.xlsx")
	wb := NewWorkbook(path, nil)

	if err := wb.Stat(); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("Stat before first append = %v, want ErrNotFound", err)
	}
	if err := wb.Append([]entity.NoveltyRecord{testRecord("Desfase procesal")}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := wb.Stat(); err != nil {
		t.Errorf("Stat after append = %v", err)
	}
}

func TestWorkbookAppendEmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitacora.xlsx")
	wb := NewWorkbook(path, nil)
	if err := wb.Append(nil); err != nil {
		t.Fatalf("Append(nil): %v", err)
	}
	if _, err := excelize.OpenFile(path); err == nil {
		t.Error("expected no file to be created for an empty append")
	}
}
