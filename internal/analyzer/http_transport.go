package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/Bahjat/design-playbook/internal/designinsight"
	"github.com/Bahjat/design-playbook/internal/model"
	"github.com/Bahjat/design-playbook/internal/platform/errs"
)

const (
	defaultAnalyzeTimeout = 30 * time.Second
	maxRequestBody        = 1 << 20 // 1 MB
)

var errURLRequired = errors.New("the \"url\" field is required")

// Transport handles HTTP requests for design analysis.
type Transport struct {
	service *Service
	logger  *slog.Logger
	timeout time.Duration
}

// NewTransport creates an HTTP transport backed by the given service. A
// non-positive timeout selects the 30s default.
func NewTransport(service *Service, logger *slog.Logger, timeout time.Duration) *Transport {
	if timeout <= 0 {
		timeout = defaultAnalyzeTimeout
	}
	return &Transport{service: service, logger: logger, timeout: timeout}
}

// RegisterRoutes attaches the transport's handlers to the given mux.
func (t *Transport) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", t.handleForm)
	mux.HandleFunc("POST /{$}", t.handleFormSubmit)
	mux.HandleFunc("POST /analyze", t.handleAnalyze)
	mux.HandleFunc("POST /download", t.handleDownload)
	mux.HandleFunc("GET /healthz", t.handleHealth)
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (r analyzeRequest) validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errURLRequired
	}
	return nil
}

func (t *Transport) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid request body. Please send a JSON object with a \"url\" field.")
		return
	}

	if err := req.validate(); err != nil {
		t.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := t.analyze(r.Context(), req.URL)
	if err != nil {
		t.handleServiceError(w, err)
		return
	}

	t.renderJSON(w, http.StatusOK, result)
}

// handleDownload returns an already generated specification as a text file.
// It never fetches anything.
func (t *Transport) handleDownload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := r.ParseForm(); err != nil {
		t.renderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	// Browsers submit textarea and hidden field line breaks as CRLF.
	spec := strings.ReplaceAll(r.PostForm.Get("specification"), "\r\n", "\n")
	if spec == "" {
		t.renderError(w, http.StatusBadRequest, "Nothing to download. Analyze a website first.")
		return
	}
	title := r.PostForm.Get("title")
	if title == "" {
		title = model.DefaultTitle
	}

	w.Header().Set("Content-Type", designinsight.SpecContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": designinsight.SpecFileName(title),
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(spec))
}

func (t *Transport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	t.renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (t *Transport) analyze(ctx context.Context, targetURL string) (*model.DesignAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.service.Analyze(ctx, targetURL)
}

func (t *Transport) handleServiceError(w http.ResponseWriter, err error) {
	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		t.renderError(w, statusFor(appErr.Kind), appErr.Message)
		return
	}

	t.renderError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.InvalidInput:
		return http.StatusBadRequest
	case errs.Unreachable:
		return http.StatusBadGateway
	case errs.Timeout:
		return http.StatusGatewayTimeout
	case errs.ParsingFailed, errs.Unknown:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func (t *Transport) renderJSON(w http.ResponseWriter, status int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		t.logger.Error("failed to encode response", "error", err)
		http.Error(w, `{"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (t *Transport) renderError(w http.ResponseWriter, status int, message string) {
	t.renderJSON(w, status, model.ErrorResponse{
		Error:      http.StatusText(status),
		StatusCode: status,
		Message:    message,
	})
}
