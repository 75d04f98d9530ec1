package designinsight

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/Bahjat/design-playbook/internal/model"
)

// Fallback lines used when the page yielded nothing for a section.
const (
	FallbackNavigation  = "Clean navigation architecture"
	FallbackColors      = "Sophisticated color scheme"
	FallbackInteractive = "Strategic call-to-action placement"

	maxSpecNavItems = 8
)

//go:embed templates/design_spec.tmpl
var templateFS embed.FS

var specTemplate = template.Must(template.ParseFS(templateFS, "templates/design_spec.tmpl"))

type specData struct {
	Title         string
	URL           string
	NavSection    string
	ColorSection  string
	ButtonSection string
}

// Synthesize renders the design specification for url from summary. The
// output depends only on its arguments.
func Synthesize(url string, summary model.DesignSummary) string {
	data := specData{
		Title:         summary.Title,
		URL:           url,
		NavSection:    bullet("Navigation structure", truncate(summary.NavItems, maxSpecNavItems), FallbackNavigation),
		ColorSection:  bullet("Color palette", summary.Colors, FallbackColors),
		ButtonSection: bullet("Interactive elements", summary.Buttons, FallbackInteractive),
	}

	var b strings.Builder
	if err := specTemplate.Execute(&b, data); err != nil {
		// Only reachable if the embedded template references a missing field.
		panic(fmt.Sprintf("designinsight: render specification: %v", err))
	}
	return b.String()
}

func bullet(label string, items []string, fallback string) string {
	if len(items) == 0 {
		return "- " + fallback
	}
	return "- " + label + ": " + strings.Join(items, ", ")
}
