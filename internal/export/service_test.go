package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/contacto-solutions/novedades-tracker/constants"
	"github.com/contacto-solutions/novedades-tracker/internal/entity"
)

func sampleRecords() []entity.NoveltyRecord {
	at := time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)
	return []entity.NoveltyRecord{
		{
			ID:                uuid.New(),
			Archivo:           "novedad1.eml",
			Asunto:            "Desfase en radicado",
			Remitente:         "juzgado@rama.gov.co",
			Cedula:            "1234567890",
			NombreCliente:     "Juan Perez",
			Categoria:         "Desfase procesal",
			Resumen:           "El radicado no coincide",
			AccionRecomendada: "Verificar radicado en el sistema",
			ValidadoPorIA:     constants.ValidadoSi,
			ProcesadoEn:       at,
		},
		{
			ID:            uuid.New(),
			Archivo:       "novedad2.pdf",
			Categoria:     constants.CategoryValidarManualmente,
			ValidadoPorIA: constants.ValidadoNo,
			ProcesadoEn:   at,
		},
		{
			ID:            uuid.New(),
			Archivo:       "novedad3.eml",
			Categoria:     "Desfase procesal",
			ValidadoPorIA: constants.ValidadoSi,
			ProcesadoEn:   at,
		},
	}
}

func TestRecordsXLSXRoundTrip(t *testing.T) {
	svc := NewService(nil, nil)
	records := sampleRecords()

	b, err := svc.RecordsXLSX(records)
	if err != nil {
		t.Fatalf("RecordsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(Sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != len(records)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(records)+1)
	}
	for i, h := range entity.Headers() {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	for i, want := range records[0].Row() {
		got := ""
		if i < len(rows[1]) {
			got = rows[1][i]
		}
		if got != want {
			t.Errorf("row 1 col %d = %q, want %q", i, got, want)
		}
	}
}

func TestRecordsCSV(t *testing.T) {
	svc := NewService(nil, nil)
	b, err := svc.RecordsCSV(sampleRecords())
	if err != nil {
		t.Fatalf("RecordsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ARCHIVO,ASUNTO,") {
		t.Errorf("header line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "novedad1.eml,") {
		t.Errorf("data line = %q", lines[1])
	}
}

func TestExportFormats(t *testing.T) {
	svc := NewService(nil, nil)
	records := sampleRecords()

	b, mime, name, err := svc.Export(records, "xlsx")
	if err != nil {
		t.Fatalf("Export xlsx: %v", err)
	}
	if mime != MimeXLSX || name != "Novedades_Operativas_Resultados.xlsx" {
		t.Errorf("xlsx mime/name = %q %q", mime, name)
	}
	if len(b) == 0 {
		t.Error("empty xlsx bytes")
	}

	b, mime, name, err = svc.Export(records, "csv")
	if err != nil {
		t.Fatalf("Export csv: %v", err)
	}
	if mime != MimeCSV || name != "Novedades_Operativas_Resultados.csv" {
		t.Errorf("csv mime/name = %q %q", mime, name)
	}
	if !bytes.HasPrefix(b, []byte("ARCHIVO,")) {
		t.Error("csv bytes missing header")
	}
}

func TestSummaryGroupsAndLabels(t *testing.T) {
	svc := NewService(map[string]string{"Desfase procesal": constants.ImpactAlto}, nil)
	got := svc.Summary(sampleRecords())

	if len(got) != 2 {
		t.Fatalf("groups = %d, want 2", len(got))
	}
	first := got[0]
	if first.Categoria != "Desfase procesal" || first.Total != 2 {
		t.Errorf("first group = %+v", first)
	}
	if first.Porcentaje < 66.6 || first.Porcentaje > 66.7 {
		t.Errorf("porcentaje = %v", first.Porcentaje)
	}
	if first.Impacto != constants.ImpactAlto {
		t.Errorf("impacto = %q", first.Impacto)
	}
	second := got[1]
	if second.Categoria != constants.CategoryValidarManualmente || second.Total != 1 {
		t.Errorf("second group = %+v", second)
	}
	if second.Impacto != constants.ImpactMedio {
		t.Errorf("sentinel impacto = %q, want %q", second.Impacto, constants.ImpactMedio)
	}
}

func TestSummaryEmpty(t *testing.T) {
	svc := NewService(nil, nil)
	if got := svc.Summary(nil); got != nil {
		t.Errorf("Summary(nil) = %v, want nil", got)
	}
}
