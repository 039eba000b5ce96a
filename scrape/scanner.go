package scrape

import (
	"strings"

	"golang.org/x/net/html"
)

// token is one lexed piece of markup. Offsets are byte offsets into the
// scanned string; name is set for tag tokens only.
type token struct {
	kind  html.TokenType
	name  string
	begin int
	end   int
}

// lex walks markup left to right and reports every token with its offsets.
// The tokenizer is used purely as a lexer: no tree is built and no text is
// decoded, so markup[begin:end] is always the verbatim source of a token.
// The content of an open script or style element comes back as one text
// token.
func lex(markup string, visit func(token)) {
	z := html.NewTokenizer(strings.NewReader(markup))
	offset := 0
	for {
		kind := z.Next()
		if kind == html.ErrorToken {
			return
		}
		// Raw must be measured before TagName, which lowercases the buffer in place.
		tok := token{kind: kind, begin: offset, end: offset + len(z.Raw())}
		offset = tok.end
		switch kind {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			tok.name = string(name)
		}
		// Only an open script or style keeps its content opaque. Everything
		// else the tokenizer treats as raw text (textarea, title, noscript,
		// iframe, plaintext and the rest, or any self-closed tag) is scanned
		// for tags like ordinary markup.
		if kind == html.SelfClosingTagToken || (kind == html.StartTagToken && !isHidden(tok.name)) {
			z.NextIsNotRawText()
		}
		visit(tok)
	}
}

// openTag is an element whose closing tag has not been seen yet.
type openTag struct {
	name  string
	slot  int
	start int
}

// scan extracts every element of markup at any depth, in the order their
// opening tags appear. A closing tag closes the most recently opened element
// of the same name; anything opened after that element and still open is
// closed at the same point. Closing tags without an open match are ignored
// and elements still open at the end run to the end of the string.
func scan(markup string) []Element {
	var (
		elements []Element
		stack    []openTag
	)
	lex(markup, func(tok token) {
		switch tok.kind {
		case html.StartTagToken, html.SelfClosingTagToken:
			elements = append(elements, Element{name: tok.name, opening: markup[tok.begin:tok.end]})
			if tok.kind == html.SelfClosingTagToken || isVoid(tok.name) {
				return
			}
			stack = append(stack, openTag{name: tok.name, slot: len(elements) - 1, start: tok.end})
		case html.EndTagToken:
			i := lastOpen(stack, tok.name)
			if i < 0 {
				return
			}
			for _, open := range stack[i:] {
				elements[open.slot].inner = markup[open.start:tok.begin]
			}
			stack = stack[:i]
		}
	})
	for _, open := range stack {
		elements[open.slot].inner = markup[open.start:]
	}
	return elements
}

func lastOpen(stack []openTag, name string) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].name == name {
			return i
		}
	}
	return -1
}
