package ui

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sheetlens/adapters/excel"
	"sheetlens/app"
	"sheetlens/internal/session"
)

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Title":     "Sheetlens - Spreadsheet Analysis",
		"MaxSizeMB": a.cfg.Upload.MaxFileSizeMB,
	})
}

// handleUpload stores the workbook as a transient working copy and redirects
// to the sheet picker
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	log.Printf("[handleUpload] Starting file upload process")

	maxBytes := int64(a.cfg.Upload.MaxFileSizeMB) * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("workbook")
	if err != nil {
		log.Printf("[handleUpload] FAILED - No file uploaded: %v", err)
		a.renderError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		log.Printf("[handleUpload] FAILED - File too large: %d bytes", header.Size)
		a.renderError(w, http.StatusBadRequest,
			fmt.Sprintf("File size (%.1f MB) exceeds the %dMB limit", float64(header.Size)/(1024*1024), a.cfg.Upload.MaxFileSizeMB))
		return
	}

	if !session.AllowedExtension(header.Filename) {
		log.Printf("[handleUpload] FAILED - Invalid file extension: %s", header.Filename)
		a.renderError(w, http.StatusBadRequest, "Only Excel (.xlsx, .xls) and CSV (.csv) files are allowed")
		return
	}

	upload, err := a.store.Save(header.Filename, file)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Could not store upload: %v", err)
		a.renderError(w, http.StatusInternalServerError, "Failed to store the uploaded file")
		return
	}

	http.Redirect(w, r, "/workbooks/"+upload.ID, http.StatusSeeOther)
}

// handleWorkbook shows the sheet picker, header-row picker and a raw preview
func (a *App) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	upload, ok := a.store.Get(chi.URLParam(r, "id"))
	if !ok {
		a.renderError(w, http.StatusNotFound, "Upload session not found or expired")
		return
	}

	reader := excel.NewWorkbookReader(upload.Path, a.readerCfg)
	sheets, err := reader.SheetNames()
	if err != nil {
		log.Printf("[handleWorkbook] FAILED - Could not list sheets: %v", err)
		a.renderError(w, http.StatusUnprocessableEntity, "Could not read the uploaded workbook")
		return
	}
	if len(sheets) == 0 {
		a.renderError(w, http.StatusUnprocessableEntity, "The workbook has no sheets")
		return
	}

	sheet := r.URL.Query().Get("sheet")
	if !contains(sheets, sheet) {
		sheet = sheets[0]
	}
	headerRow := parseIntOrDefault(r.URL.Query().Get("header"), 0)

	var preview [][]string
	err = a.store.WithParseSlot(r.Context(), func() error {
		var previewErr error
		preview, previewErr = reader.Preview(sheet, a.readerCfg.PreviewRows)
		return previewErr
	})
	if err != nil {
		log.Printf("[handleWorkbook] FAILED - Preview failed: %v", err)
		a.renderError(w, http.StatusUnprocessableEntity, "Could not read the selected sheet")
		return
	}

	a.renderTemplate(w, "workbook.html", map[string]interface{}{
		"Title":        "Sheetlens - " + upload.Filename,
		"Upload":       upload,
		"Sheets":       sheets,
		"Sheet":        sheet,
		"HeaderRow":    headerRow,
		"MaxHeaderRow": a.readerCfg.MaxHeaderScan,
		"Preview":      preview,
	})
}

// handleAnalyze runs the full pipeline for the current selections
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	upload, ok := a.store.Get(chi.URLParam(r, "id"))
	if !ok {
		a.renderError(w, http.StatusNotFound, "Upload session not found or expired")
		return
	}

	q := r.URL.Query()
	reader := excel.NewWorkbookReader(upload.Path, a.readerCfg)

	var sheet *excel.RawSheet
	err := a.store.WithParseSlot(r.Context(), func() error {
		var readErr error
		sheet, readErr = reader.ReadSheet(q.Get("sheet"), parseIntOrDefault(q.Get("header"), 0))
		return readErr
	})
	if err != nil {
		log.Printf("[handleAnalyze] FAILED - Sheet read failed: %v", err)
		a.renderError(w, http.StatusUnprocessableEntity, "Could not read the selected sheet")
		return
	}

	analysis, err := a.analysis.Run(app.AnalysisRequest{
		Sheet:           sheet,
		UnitColumn:      q.Get("unit"),
		PortfolioColumn: q.Get("portfolio"),
		PersonColumn:    q.Get("person"),
		ValueColumn:     q.Get("value"),
		UnitValueColumn: q.Get("unit_value"),
	})
	if err != nil {
		log.Printf("[handleAnalyze] FAILED - Pipeline failed: %v", err)
		a.renderError(w, http.StatusUnprocessableEntity, "Analysis failed: "+err.Error())
		return
	}

	a.renderTemplate(w, "analyze.html", map[string]interface{}{
		"Title":     "Sheetlens - Analysis",
		"Upload":    upload,
		"Sheet":     sheet,
		"HeaderRow": sheet.HeaderRow,
		"Analysis":  analysis,
	})
}

// handleDelete evicts the session and its working copy
func (a *App) handleDelete(w http.ResponseWriter, r *http.Request) {
	a.store.Remove(chi.URLParam(r, "id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func parseIntOrDefault(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return defaultValue
}
