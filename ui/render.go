package ui

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func (a *App) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[renderTemplate] FAILED - Template %s: %v", name, err)
		http.Error(w, "Template rendering failed", http.StatusInternalServerError)
	}
}

func (a *App) renderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, "error.html", map[string]interface{}{
		"Title":   "Sheetlens - Error",
		"Status":  status,
		"Message": message,
	}); err != nil {
		log.Printf("[renderError] FAILED - Template: %v", err)
		http.Error(w, message, status)
	}
}

// handleHelp renders the embedded usage guide from markdown
func (a *App) handleHelp(w http.ResponseWriter, r *http.Request) {
	source, err := embeddedFiles.ReadFile("templates/help.md")
	if err != nil {
		log.Printf("[handleHelp] FAILED - Help source missing: %v", err)
		a.renderError(w, http.StatusInternalServerError, "Help page unavailable")
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(source, p, renderer)

	a.renderTemplate(w, "help.html", map[string]interface{}{
		"Title": "Sheetlens - Help",
		"Body":  template.HTML(body),
	})
}
