package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		inner string
		want  string
	}{
		{"plain text", "div", "Hello World!", "Hello World!"},
		{"nested tags dropped", "body", `<div id='hello'>Hello <b>World</b>!</div>`, "Hello World!"},
		{"script and style skipped", "div", `a<script>var x = "<b>";</script>b<style>p { color: red }</style>c`, "abc"},
		{"comments skipped", "p", "x<!-- hidden -->y", "xy"},
		{"hidden element itself", "script", "alert(1)", ""},
		{"style element itself", "style", "body { margin: 0 }", ""},
		{"entities kept verbatim", "p", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"whitespace kept", "pre", "  a\n\tb  ", "  a\n\tb  "},
		{"void elements", "p", "line<br>next<img src=x>", "linenext"},
		{"empty", "div", "", ""},
		{"self-closed script", "div", `<script src="a.js"/><p>hi</p>`, "hi"},
		{"noscript markup stripped", "div", `<noscript><img src="pixel.gif"></noscript><p>x</p>`, "x"},
		{"textarea markup stripped", "div", "<textarea><b>t</b></textarea>", "t"},
		{"plaintext markup stripped", "div", "<plaintext><p>a</p>", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractText(tt.tag, tt.inner))
		})
	}
}
