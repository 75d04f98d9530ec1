package designinsight

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	statsSeparator   = " • "
	maxStatsClauses  = 6
	statsUnavailable = "Unable to analyze website content."
	statsMinimal     = "Clean, minimal website structure"
)

// Stats summarizes the page structure in at most six clauses. The domain
// clause always comes first when doc is present.
func Stats(doc *goquery.Document, url string) string {
	if doc == nil {
		return statsUnavailable
	}

	facts := []string{"Domain: " + RegistrableDomain(url)}

	if n := doc.Find("a").Length(); n > 0 {
		facts = append(facts, fmt.Sprintf("Contains %d links", n))
	}
	if n := doc.Find("img").Length(); n > 0 {
		facts = append(facts, fmt.Sprintf("Features %d images", n))
	}
	if n := doc.Find("p").Length(); n > 0 {
		facts = append(facts, fmt.Sprintf("Has %d content paragraphs", n))
	}
	if hasMeta(doc, "viewport") {
		facts = append(facts, "Mobile-optimized design")
	}
	if doc.Find("script").Length() > 0 {
		facts = append(facts, "Uses JavaScript for interactivity")
	}
	if hasMeta(doc, "description") {
		facts = append(facts, "SEO-optimized with meta descriptions")
	}

	if len(facts) == 0 {
		return statsMinimal
	}
	return strings.Join(truncate(facts, maxStatsClauses), statsSeparator)
}

func hasMeta(doc *goquery.Document, name string) bool {
	return doc.Find("meta").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr("name")
		return ok && v == name
	}).Length() > 0
}
