package designinsight

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Bahjat/design-playbook/internal/model"
)

// Upper bounds on each list in a DesignSummary.
const (
	MaxNavItems = 10
	MaxHeadings = 5
	MaxColors   = 5
	MaxButtons  = 5
)

// hexColor matches 6-digit codes before 3-digit ones, with no boundary check:
// "#abcd" yields "#abc" and "#abcdef0" yields "#abcdef".
var hexColor = regexp.MustCompile(`#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}`)

// Extract walks doc and returns the design cues found on the page. A nil doc
// yields the empty summary titled "Website". The url argument is accepted for
// symmetry with Stats and does not influence the result.
func Extract(doc *goquery.Document, _ string) model.DesignSummary {
	if doc == nil {
		return model.EmptySummary()
	}

	return model.DesignSummary{
		NavItems: navItems(doc),
		Headings: truncate(texts(doc.Find("h1, h2, h3")), MaxHeadings),
		Colors:   colors(doc),
		Buttons:  truncate(texts(doc.Find("button, input")), MaxButtons),
		Title:    title(doc),
	}
}

// navItems collects link text per <nav>/<header> container. A link inside
// nested containers is reported once for each of them.
func navItems(doc *goquery.Document) []string {
	items := []string{}
	doc.Find("nav, header").Each(func(_ int, container *goquery.Selection) {
		items = append(items, texts(container.Find("a"))...)
	})
	return truncate(items, MaxNavItems)
}

// colors gathers hex codes from inline <style> blocks, deduplicated in order
// of first appearance.
func colors(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	found := []string{}
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		css := s.Text()
		if css == "" {
			return
		}
		for _, c := range hexColor.FindAllString(css, -1) {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			found = append(found, c)
		}
	})
	return truncate(found, MaxColors)
}

func title(doc *goquery.Document) string {
	t := strings.TrimSpace(doc.Find("title").First().Text())
	if t == "" {
		return model.DefaultTitle
	}
	return t
}

// texts returns the trimmed, non-empty text of every node in sel.
func texts(sel *goquery.Selection) []string {
	out := []string{}
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			out = append(out, t)
		}
	})
	return out
}

func truncate(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
