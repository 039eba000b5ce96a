package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// extractText returns the visible text inside an element named name whose
// inner markup is inner. Tags, comments and the content of script and style
// elements are dropped; text is kept byte for byte, entities included.
func extractText(name, inner string) string {
	if isHidden(name) {
		return ""
	}
	var (
		b      strings.Builder
		hidden []string
	)
	lex(inner, func(tok token) {
		switch tok.kind {
		case html.TextToken:
			if len(hidden) == 0 {
				b.WriteString(inner[tok.begin:tok.end])
			}
		case html.StartTagToken:
			if isHidden(tok.name) {
				hidden = append(hidden, tok.name)
			}
		case html.EndTagToken:
			if n := len(hidden); n > 0 && hidden[n-1] == tok.name {
				hidden = hidden[:n-1]
			}
		}
	})
	return b.String()
}
