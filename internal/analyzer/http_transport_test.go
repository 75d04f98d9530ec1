package analyzer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bahjat/design-playbook/internal/model"
	"github.com/Bahjat/design-playbook/internal/platform/errs"
)

// mockProvider implements DesignProvider for testing.
type mockProvider struct {
	result   *model.DesignAnalysis
	err      error
	received []string
}

func (m *mockProvider) Analyze(_ context.Context, targetURL string) (*model.DesignAnalysis, error) {
	m.received = append(m.received, targetURL)
	return m.result, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMux(provider DesignProvider) *http.ServeMux {
	logger := discardLogger()
	transport := NewTransport(NewService(provider, logger), logger, time.Second)
	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)
	return mux
}

func sampleAnalysis() *model.DesignAnalysis {
	return &model.DesignAnalysis{
		URL: "https://acme.test",
		Summary: model.DesignSummary{
			Title:    "Acme Store",
			NavItems: []string{"Home", "Shop"},
			Headings: []string{"Welcome"},
			Colors:   []string{"#FF00AA"},
			Buttons:  []string{},
		},
		Stats:         "Domain: acme.test • Contains 3 links",
		Specification: "**PROFESSIONAL WEBSITE DESIGN SPECIFICATION**\n",
		FileName:      "design_spec_Acme_Store.txt",
		HTMLVersion:   "HTML5",
	}
}

func postJSON(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func postForm(mux http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHandleAnalyze_Success(t *testing.T) {
	provider := &mockProvider{result: sampleAnalysis()}
	mux := newTestMux(provider)

	rec := postJSON(mux, "/analyze", `{"url": "acme.test"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, []string{"acme.test"}, provider.received)

	var result model.DesignAnalysis
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "Acme Store", result.Summary.Title)
	assert.Equal(t, []string{"#FF00AA"}, result.Summary.Colors)
	assert.Empty(t, result.FetchError)
}

func TestHandleAnalyze_DegradedResultIsOK(t *testing.T) {
	degraded := sampleAnalysis()
	degraded.FetchError = "Error fetching website: connection refused"
	mux := newTestMux(&mockProvider{result: degraded})

	rec := postJSON(mux, "/analyze", `{"url": "https://down.example.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, degraded.FetchError, result["fetch_error"])
}

func TestHandleAnalyze_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty url", body: `{"url": ""}`},
		{name: "blank url", body: `{"url": "   "}`},
		{name: "missing body", body: ``},
		{name: "malformed json", body: `{invalid json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{}
			rec := postJSON(newTestMux(provider), "/analyze", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).StatusCode)
			assert.Empty(t, provider.received)
		})
	}
}

func TestHandleAnalyze_ProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		kind errs.Kind
		want int
	}{
		{name: "invalid input", kind: errs.InvalidInput, want: http.StatusBadRequest},
		{name: "unreachable", kind: errs.Unreachable, want: http.StatusBadGateway},
		{name: "timeout", kind: errs.Timeout, want: http.StatusGatewayTimeout},
		{name: "parsing failed", kind: errs.ParsingFailed, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{err: &errs.AppError{Kind: tt.kind, Message: "boom"}}
			rec := postJSON(newTestMux(provider), "/analyze", `{"url": "https://example.com"}`)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, "boom", decodeError(t, rec).Message)
		})
	}
}

func TestHandleAnalyze_WrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()

	newTestMux(&mockProvider{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleDownload(t *testing.T) {
	mux := newTestMux(&mockProvider{})
	spec := "**PROFESSIONAL WEBSITE DESIGN SPECIFICATION**\n\nbody\n"

	rec := postForm(mux, "/download", url.Values{
		"title":         {"Acme Store"},
		"specification": {spec},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=design_spec_Acme_Store.txt`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, spec, rec.Body.String())
}

func TestHandleDownload_NormalizesLineEndings(t *testing.T) {
	rec := postForm(newTestMux(&mockProvider{}), "/download", url.Values{
		"title":         {"Acme Store"},
		"specification": {"**PROFESSIONAL WEBSITE DESIGN SPECIFICATION**\r\n\r\nbody\r\n"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "**PROFESSIONAL WEBSITE DESIGN SPECIFICATION**\n\nbody\n", rec.Body.String())
}

func TestHandleDownload_DefaultsTitle(t *testing.T) {
	rec := postForm(newTestMux(&mockProvider{}), "/download", url.Values{"specification": {"x"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "design_spec_Website.txt")
}

func TestHandleDownload_NothingToDownload(t *testing.T) {
	provider := &mockProvider{}
	rec := postForm(newTestMux(provider), "/download", url.Values{"title": {"Acme"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, provider.received, "download never triggers an analysis")
}

func TestHandleForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	newTestMux(&mockProvider{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `name="url"`)
	assert.Contains(t, rec.Body.String(), "INTELLIGENT DESIGN ANALYSIS")
	assert.Contains(t, rec.Body.String(), "COMPATIBLE AI DESIGN TOOLS")
	assert.Contains(t, rec.Body.String(), "Figma AI • Replit Agent • Lovable")
	assert.NotContains(t, rec.Body.String(), "Design Specification")
}

func TestHandleFormSubmit(t *testing.T) {
	analysis := sampleAnalysis()
	analysis.Summary.Title = `Acme <script>alert(1)</script>`
	provider := &mockProvider{result: analysis}

	rec := postForm(newTestMux(provider), "/", url.Values{"url": {"acme.test"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Website Overview:")
	assert.Contains(t, body, "Domain: acme.test • Contains 3 links")
	assert.Contains(t, body, "Download Specification")
	assert.Contains(t, body, `value="https://acme.test"`)
	assert.NotContains(t, body, "<script>alert(1)</script>", "page output is HTML-escaped")
	assert.Equal(t, []string{"acme.test"}, provider.received)
}

func TestHandleFormSubmit_ShowsFetchError(t *testing.T) {
	degraded := sampleAnalysis()
	degraded.FetchError = "Error fetching website: 404 Not Found"

	rec := postForm(newTestMux(&mockProvider{result: degraded}), "/", url.Values{"url": {"https://gone.test"}})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "404 Not Found")
	assert.Contains(t, rec.Body.String(), "Download Specification")
}

func TestHandleFormSubmit_EmptyURL(t *testing.T) {
	provider := &mockProvider{}

	rec := postForm(newTestMux(provider), "/", url.Values{"url": {""}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a website URL to analyze.")
	assert.Empty(t, provider.received)
}

func TestHandleHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newTestMux(&mockProvider{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
