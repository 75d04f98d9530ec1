package analyzer

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/Bahjat/design-playbook/internal/model"
)

//go:embed templates/index.html
var pageFS embed.FS

var pageTemplate = template.Must(template.ParseFS(pageFS, "templates/index.html"))

type pageData struct {
	URL      string
	Message  string
	Analysis *model.DesignAnalysis
	Details  string
}

func (t *Transport) handleForm(w http.ResponseWriter, _ *http.Request) {
	t.renderPage(w, http.StatusOK, pageData{})
}

func (t *Transport) handleFormSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		t.renderPage(w, http.StatusBadRequest, pageData{Message: "Invalid form submission."})
		return
	}

	data := pageData{URL: r.PostForm.Get("url")}
	if err := (analyzeRequest{URL: data.URL}).validate(); err != nil {
		data.Message = "Please enter a website URL to analyze."
		t.renderPage(w, http.StatusBadRequest, data)
		return
	}

	result, err := t.analyze(r.Context(), data.URL)
	if err != nil {
		data.Message = "An unexpected error occurred."
		t.renderPage(w, http.StatusInternalServerError, data)
		return
	}

	details, err := json.MarshalIndent(result.Summary, "", "  ")
	if err != nil {
		t.logger.Error("failed to encode summary", "error", err)
	}
	data.URL = result.URL
	data.Analysis = result
	data.Details = string(details)
	t.renderPage(w, http.StatusOK, data)
}

func (t *Transport) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		t.logger.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
