package model

// DefaultTitle is used when a page has no usable <title>.
const DefaultTitle = "Website"

// DesignSummary is the bounded set of design cues extracted from one page.
type DesignSummary struct {
	NavItems []string `json:"nav_items"`
	Headings []string `json:"headings"`
	Colors   []string `json:"colors"`
	Buttons  []string `json:"buttons"`
	Title    string   `json:"title"`
}

// EmptySummary returns the summary reported when no document is available.
func EmptySummary() DesignSummary {
	return DesignSummary{
		NavItems: []string{},
		Headings: []string{},
		Colors:   []string{},
		Buttons:  []string{},
		Title:    DefaultTitle,
	}
}

// DesignAnalysis holds the complete result of analyzing a web page.
// FetchError is set when the page could not be retrieved; the other fields
// then describe the degraded, fallback-only output.
type DesignAnalysis struct {
	URL           string        `json:"url"`
	Summary       DesignSummary `json:"summary"`
	Stats         string        `json:"stats"`
	Specification string        `json:"specification"`
	FileName      string        `json:"file_name"`
	HTMLVersion   string        `json:"html_version"`
	FetchError    string        `json:"fetch_error,omitempty"`
}

// Degraded reports whether the analysis ran without a fetched document.
func (a *DesignAnalysis) Degraded() bool {
	return a.FetchError != ""
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
