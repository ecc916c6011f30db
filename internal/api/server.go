package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sheetlens/adapters/excel"
	"sheetlens/app"
	"sheetlens/internal/config"
	"sheetlens/internal/session"
)

// Server exposes the analysis pipeline as a JSON API
type Server struct {
	engine    *gin.Engine
	store     *session.Store
	analysis  *app.AnalysisService
	cfg       *config.Config
	readerCfg excel.ReaderConfig
}

// NewServer creates the API server
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.API.GinMode)

	store := session.NewStore(cfg.Upload.Dir, cfg.Upload.SessionTTL, cfg.Upload.MaxParallelLoad)
	store.StartSweeper(context.Background(), cfg.Upload.SessionTTL/2)

	s := &Server{
		engine:    gin.Default(),
		store:     store,
		analysis:  app.NewAnalysisService(),
		cfg:       cfg,
		readerCfg: excel.DefaultReaderConfig(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.POST("/api/workbooks", s.handleUpload)
	s.engine.GET("/api/workbooks/:id/sheets", s.handleSheets)
	s.engine.GET("/api/workbooks/:id/analysis", s.handleAnalysis)
	s.engine.DELETE("/api/workbooks/:id", s.handleDelete)
}

// Start runs the API server
func (s *Server) Start() error {
	log.Printf("[API] Listening on :%s", s.cfg.API.Port)
	return s.engine.Run(":" + s.cfg.API.Port)
}

// Handler exposes the underlying engine, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleUpload(c *gin.Context) {
	file, header, err := c.Request.FormFile("workbook")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	maxBytes := int64(s.cfg.Upload.MaxFileSizeMB) * 1024 * 1024
	if header.Size > maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File size exceeds the %dMB limit", s.cfg.Upload.MaxFileSizeMB)})
		return
	}
	if !session.AllowedExtension(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only Excel (.xlsx, .xls) and CSV (.csv) files are allowed"})
		return
	}

	upload, err := s.store.Save(header.Filename, file)
	if err != nil {
		log.Printf("[handleUpload] FAILED - Could not store upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store the uploaded file"})
		return
	}

	reader := excel.NewWorkbookReader(upload.Path, s.readerCfg)
	sheets, err := reader.SheetNames()
	if err != nil {
		s.store.Remove(upload.ID)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not read the uploaded workbook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"workbook_id": upload.ID,
		"filename":    upload.Filename,
		"sheets":      sheets,
	})
}

func (s *Server) handleSheets(c *gin.Context) {
	upload, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload session not found or expired"})
		return
	}

	reader := excel.NewWorkbookReader(upload.Path, s.readerCfg)
	sheets, err := reader.SheetNames()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not read the uploaded workbook"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sheets": sheets})
}

func (s *Server) handleAnalysis(c *gin.Context) {
	upload, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Upload session not found or expired"})
		return
	}

	headerRow := 0
	if v := c.Query("header"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &headerRow); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "header must be an integer"})
			return
		}
	}

	reader := excel.NewWorkbookReader(upload.Path, s.readerCfg)
	var sheet *excel.RawSheet
	err := s.store.WithParseSlot(c.Request.Context(), func() error {
		var readErr error
		sheet, readErr = reader.ReadSheet(c.Query("sheet"), headerRow)
		return readErr
	})
	if err != nil {
		log.Printf("[handleAnalysis] FAILED - Sheet read failed: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not read the selected sheet"})
		return
	}

	analysis, err := s.analysis.Run(app.AnalysisRequest{
		Sheet:           sheet,
		UnitColumn:      c.Query("unit"),
		PortfolioColumn: c.Query("portfolio"),
		PersonColumn:    c.Query("person"),
		ValueColumn:     c.Query("value"),
		UnitValueColumn: c.Query("unit_value"),
	})
	if err != nil {
		log.Printf("[handleAnalysis] FAILED - Pipeline failed: %v", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, buildAnalysisResponse(sheet, analysis))
}

func (s *Server) handleDelete(c *gin.Context) {
	s.store.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Upload session removed"})
}
