package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Bahjat/design-playbook/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("0")).
			Padding(0, 2)

	factsStyle = lipgloss.NewStyle().
			Italic(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("0")).
			PaddingLeft(1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func renderOverview(result *model.DesignAnalysis, path string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("PLAYBOOK PRO · " + result.Summary.Title))
	b.WriteString("\n\n")
	b.WriteString(factsStyle.Render("Website Overview: " + result.Stats))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		items []string
	}{
		{"Navigation", result.Summary.NavItems},
		{"Headings", result.Summary.Headings},
		{"Colors", result.Summary.Colors},
		{"Buttons", result.Summary.Buttons},
	}
	for _, row := range rows {
		value := "none found"
		if len(row.items) > 0 {
			value = strings.Join(row.items, ", ")
		}
		b.WriteString(labelStyle.Render(row.label+":") + " " + value + "\n")
	}

	b.WriteString("\n" + labelStyle.Render("Specification:") + " " + path)
	return b.String()
}
