package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contacto-solutions/novedades-tracker/constants"
	"github.com/contacto-solutions/novedades-tracker/internal/bitacora"
	"github.com/contacto-solutions/novedades-tracker/internal/export"
	"github.com/contacto-solutions/novedades-tracker/internal/extract"
	"github.com/contacto-solutions/novedades-tracker/internal/llm"
	"github.com/contacto-solutions/novedades-tracker/internal/pipeline"
	"github.com/contacto-solutions/novedades-tracker/internal/session"
)

const uploadEml = "From: juzgado@rama.gov.co\r\n" +
	"Subject: Novedad JUAN PEREZ CC 1234567890\r\n" +
	"Date: Mon, 24 Aug 2026 09:30:00 -0500\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Se presenta un desfase en el radicado del proceso.\r\n"

// newTestServer wires the full stack against temp-dir durable storage with
// the classifier disabled, so every upload degrades to manual review.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()

	hist, err := bitacora.OpenStore(filepath.Join(dir, "historia.db"), nil)
	require.NoError(t, err)
	wb := bitacora.NewWorkbook(filepath.Join(dir, "bitacora.xlsx"), nil)

	sess := session.New()
	proc := pipeline.NewProcessor(nil, extract.NewExtractor(nil), llm.Disabled{}, sess, wb, hist)
	exp := export.NewService(nil, nil)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	RegisterRoutes(e, NewHandler(nil, proc, sess, exp, wb, hist))
	return e
}

func multipartUpload(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, name := range filenames {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, uploadEml)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func doRequest(e *echo.Echo, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	e := newTestServer(t)
	rec := doRequest(e, http.MethodGet, "/api/health", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["session_id"])
}

func TestHandleProcessDegradesWithoutClassifier(t *testing.T) {
	e := newTestServer(t)
	body, ctype := multipartUpload(t, "novedad.eml")
	rec := doRequest(e, http.MethodPost, "/api/novelties/process", ctype, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Mensaje string `json:"mensaje"`
		pipeline.BatchResult
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Análisis completado correctamente.", res.Mensaje)
	require.Len(t, res.Records, 1)
	assert.Equal(t, constants.CategoryValidarManualmente, res.Records[0].Categoria)
	assert.Equal(t, "1234567890", res.Records[0].Cedula)
	assert.Equal(t, "Juan Perez", res.Records[0].NombreCliente)
	assert.Equal(t, 1, res.Errored)
}

func TestHandleProcessRequiresFiles(t *testing.T) {
	e := newTestServer(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.Close())
	rec := doRequest(e, http.MethodPost, "/api/novelties/process", w.FormDataContentType(), &body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestHandleListAfterProcess(t *testing.T) {
	e := newTestServer(t)
	body, ctype := multipartUpload(t, "a.eml", "b.eml")
	require.Equal(t, http.StatusOK, doRequest(e, http.MethodPost, "/api/novelties/process", ctype, body).Code)

	rec := doRequest(e, http.MethodGet, "/api/novelties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "a.eml", records[0]["archivo"])
	assert.Equal(t, "b.eml", records[1]["archivo"])
}

func TestHandleExportHeaders(t *testing.T) {
	e := newTestServer(t)
	body, ctype := multipartUpload(t, "novedad.eml")
	doRequest(e, http.MethodPost, "/api/novelties/process", ctype, body)

	rec := doRequest(e, http.MethodGet, "/api/novelties/export", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.MimeXLSX, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "Novedades_Operativas_Resultados.xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = doRequest(e, http.MethodGet, "/api/novelties/export?format=csv", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.MimeCSV, rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "ARCHIVO,"))

	rec = doRequest(e, http.MethodGet, "/api/novelties/export?format=pdf", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSummary(t *testing.T) {
	e := newTestServer(t)

	// empty session yields an empty list, not null
	rec := doRequest(e, http.MethodGet, "/api/novelties/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	body, ctype := multipartUpload(t, "novedad.eml")
	doRequest(e, http.MethodPost, "/api/novelties/process", ctype, body)

	rec = doRequest(e, http.MethodGet, "/api/novelties/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary []export.CategorySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Len(t, summary, 1)
	assert.Equal(t, constants.CategoryValidarManualmente, summary[0].Categoria)
	assert.Equal(t, float64(100), summary[0].Porcentaje)
}

func TestHandleResetClearsSessionNotBitacora(t *testing.T) {
	e := newTestServer(t)
	body, ctype := multipartUpload(t, "novedad.eml")
	doRequest(e, http.MethodPost, "/api/novelties/process", ctype, body)

	rec := doRequest(e, http.MethodPost, "/api/session/reset", "", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/novelties", "", nil)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	assert.Empty(t, records)

	// the durable history survives the reset
	rec = doRequest(e, http.MethodGet, "/api/bitacora/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Total)
}

func TestHandleBitacoraExport(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/api/bitacora/export", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body, ctype := multipartUpload(t, "novedad.eml")
	doRequest(e, http.MethodPost, "/api/novelties/process", ctype, body)

	rec = doRequest(e, http.MethodGet, "/api/bitacora/export", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "bitacora.xlsx")
}
