package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetlens/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&config.Config{
		API: config.APIConfig{Port: "0", GinMode: "test"},
		Upload: config.UploadConfig{
			Dir:             t.TempDir(),
			MaxFileSizeMB:   5,
			SessionTTL:      time.Minute,
			MaxParallelLoad: 2,
		},
	})
}

func uploadCSV(t *testing.T, server *Server, content string) string {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("workbook", "people.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/workbooks", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		WorkbookID string   `json:"workbook_id"`
		Sheets     []string `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.WorkbookID)
	return resp.WorkbookID
}

func TestUploadAndSheets(t *testing.T) {
	server := testServer(t)
	id := uploadCSV(t, server, "Unit,Portfolio,Person\nA,X,p1\n")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workbooks/"+id+"/sheets", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "people")
}

func TestAnalysisEndpoint(t *testing.T) {
	server := testServer(t)
	id := uploadCSV(t, server, "Unit,Portfolio,Person,Sales\nA,X,p1,100\nA,X,p2,150\nB,Y,p3,200\n")

	url := "/api/workbooks/" + id + "/analysis?sheet=people&header=0&unit=Unit&portfolio=Portfolio&person=Person&value=Sales&unit_value=Sales"
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"Unit", "Portfolio", "Person", "Sales"}, resp.Columns)
	require.Len(t, resp.PairCounts, 2)
	assert.Equal(t, 2, resp.PairCounts[0].Count)
	assert.Equal(t, 1, resp.PairCounts[1].Count)
	assert.Empty(t, resp.Inconsistencies)
	require.NotNil(t, resp.Pie)
	assert.Equal(t, []float64{250, 200}, resp.Pie.Values)
}

func TestAnalysisPieWarning(t *testing.T) {
	server := testServer(t)
	id := uploadCSV(t, server, "Unit,Portfolio,Person\nA,X,p1\nB,Y,p2\n")

	url := "/api/workbooks/" + id + "/analysis?sheet=people&header=0&value=Person"
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Pie)
	assert.NotEmpty(t, resp.PieWarning)
}

func TestAnalysisUnknownSession(t *testing.T) {
	server := testServer(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workbooks/missing/analysis", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEndpoint(t *testing.T) {
	server := testServer(t)
	id := uploadCSV(t, server, "A,B\n1,2\n")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/workbooks/"+id, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/workbooks/"+id+"/sheets", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsBadExtension(t *testing.T) {
	server := testServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("workbook", "bad.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/workbooks", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
