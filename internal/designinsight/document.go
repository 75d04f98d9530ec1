package designinsight

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NormalizeURL trims raw and prepends https:// when it has neither an
// http:// nor an https:// prefix.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// RegistrableDomain returns the host of rawURL, port included, with one
// leading "www." removed. It returns "" when rawURL cannot be parsed.
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// HTMLVersion reports the document type declared by doc: "HTML5",
// "HTML 4.01", "XHTML 1.0", "XHTML 1.1", or "Unknown".
func HTMLVersion(doc *goquery.Document) string {
	if doc == nil {
		return "Unknown"
	}
	for _, root := range doc.Nodes {
		for n := root.FirstChild; n != nil; n = n.NextSibling {
			if n.Type == html.DoctypeNode {
				return doctypeVersion(n)
			}
		}
	}
	return "Unknown"
}

func doctypeVersion(n *html.Node) string {
	var public string
	for _, a := range n.Attr {
		if a.Key == "public" {
			public = strings.ToLower(a.Val)
		}
	}

	// https://www.w3.org/QA/2002/04/valid-dtd-list.html
	switch {
	case public == "":
		if strings.EqualFold(n.Data, "html") {
			return "HTML5"
		}
		return "Unknown"
	case strings.Contains(public, "xhtml 1.1") || strings.Contains(public, "xhtml basic 1.1"):
		return "XHTML 1.1"
	case strings.Contains(public, "xhtml 1.0"):
		return "XHTML 1.0"
	case strings.Contains(public, "html 4.01"):
		return "HTML 4.01"
	default:
		return "Unknown"
	}
}
