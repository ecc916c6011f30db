package ui

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetlens/internal/config"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0"},
		Upload: config.UploadConfig{
			Dir:             t.TempDir(),
			MaxFileSizeMB:   5,
			SessionTTL:      time.Minute,
			MaxParallelLoad: 2,
		},
	}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	return app
}

func uploadCSV(t *testing.T, app *App, content string) string {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("workbook", "people.csv")
	require.NoError(t, err)
	_, err = io.Copy(part, strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/workbooks/"))
	return location
}

func TestIndexPage(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Upload")
}

func TestHelpPage(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/help", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "header row")
}

func TestUploadAndPreview(t *testing.T) {
	app := testApp(t)
	location := uploadCSV(t, app, "Unit,Portfolio,Person\nA,X,p1\nB,Y,p2\n")

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "people.csv")
	assert.Contains(t, body, "Portfolio")
}

func TestUploadRejectsBadExtension(t *testing.T) {
	app := testApp(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("workbook", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	app := testApp(t)
	location := uploadCSV(t, app, "Unit,Portfolio,Person,Sales\nA,X,p1,100\nA,X,p2,150\nB,Y,p3,200\n")

	url := location + "/analyze?sheet=people&header=0&unit=Unit&portfolio=Portfolio&person=Person&value=Sales&unit_value=Sales"
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No inconsistencies found")
	assert.Contains(t, body, "Total people")
	assert.Contains(t, body, "grouped-bar")
}

func TestAnalyzeUnknownSession(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workbooks/nope/analyze", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEvictsSession(t *testing.T) {
	app := testApp(t)
	location := uploadCSV(t, app, "A,B\n1,2\n")

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, location+"/delete", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticAssets(t *testing.T) {
	app := testApp(t)

	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/charts.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sheetlensCharts")
}
