package data

import "strings"

// Request describes one conversion run.
type Request struct {
	EnginePath      string
	SourcePath      string
	PreProcess      bool
	DestinationPath string
}

// PageText is the recognized text of a single page. Number is 1-based.
type PageText struct {
	Number int
	Text   string
}

// Concatenate joins texts in order with no separator.
func Concatenate(texts []string) string {
	return strings.Join(texts, "")
}

// Texts returns the page texts in slice order.
func Texts(pages []PageText) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.Text
	}
	return out
}
