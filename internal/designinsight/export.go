package designinsight

import "strings"

// SpecContentType is the MIME type of a downloaded specification.
const SpecContentType = "text/plain"

// SpecFileName names the download for a page titled title. Only spaces are
// replaced; any other character is kept as is.
func SpecFileName(title string) string {
	return "design_spec_" + strings.ReplaceAll(title, " ", "_") + ".txt"
}
