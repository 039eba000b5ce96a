package scrape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned by Parse when the markup cannot hold a tag.
var ErrInvalidInput = errors.New("invalid input")

// Document is an ordered set of elements. A Document returned by Parse
// covers the whole input; any Document returned by Filter holds matches.
// The two render differently, see HTML.
type Document struct {
	elements []Element
	whole    bool
}

// Parse extracts every element of markup. It fails only when markup has no
// '<' or no '>'.
func Parse(markup string) (Document, error) {
	if !strings.Contains(markup, "<") || !strings.Contains(markup, ">") {
		return Document{}, fmt.Errorf("parse html: %w: markup has no tags", ErrInvalidInput)
	}
	return Document{elements: scan(markup), whole: true}, nil
}

// MustParse is like Parse but panics on error. It is meant for fixed markup
// such as fixtures.
func MustParse(markup string) Document {
	doc, err := Parse(markup)
	if err != nil {
		panic(err)
	}
	return doc
}

// Len returns the number of elements.
func (d Document) Len() int { return len(d.elements) }

// Elements returns a copy of the elements in source order.
func (d Document) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// IsWholeDocument reports whether d came straight from Parse.
func (d Document) IsWholeDocument() bool { return d.whole }

// Find is shorthand for Filter(Sel(parts...)).
func (d Document) Find(parts ...string) Document {
	return d.Filter(Sel(parts...))
}

// Filter returns the elements matching sel, in source order. An
// unconstrained selector returns d unchanged. Filtering a whole document
// first re-extracts the elements of its root element, so matches are found
// at any depth; filtering a match set narrows it directly.
func (d Document) Filter(sel Selector) Document {
	sel = sel.normalize()
	if sel.IsZero() {
		return Document{elements: d.Elements(), whole: d.whole}
	}

	elements := d.elements
	if d.whole {
		elements = scan(d.HTML())
	}
	if sel.Tag != "" {
		elements = keep(elements, func(el Element) bool {
			return strings.EqualFold(el.name, sel.Tag)
		})
	}
	if sel.Attr != "" {
		key := sel.Attr + "="
		elements = keep(elements, func(el Element) bool {
			return strings.Contains(el.opening, key)
		})
	}
	if sel.Value != "" {
		forms := []string{
			`="` + sel.Value + `"`,
			`='` + sel.Value + `'`,
			"=" + sel.Value + ">",
			"=" + sel.Value + " ",
		}
		elements = keep(elements, func(el Element) bool {
			for _, f := range forms {
				if strings.Contains(el.opening, f) {
					return true
				}
			}
			return false
		})
	}
	return Document{elements: elements}
}

func keep(elements []Element, match func(Element) bool) []Element {
	out := make([]Element, 0, len(elements))
	for _, el := range elements {
		if match(el) {
			out = append(out, el)
		}
	}
	return out
}

// HTML renders d as markup. A whole document renders its first element only,
// which is the root and already contains everything nested in it. A match
// set renders every element once, dropping exact duplicates.
func (d Document) HTML() string { return d.render(Element.HTML) }

// String implements fmt.Stringer.
func (d Document) String() string { return d.HTML() }

// InnerHTML is like HTML but renders each element's inner markup.
func (d Document) InnerHTML() string { return d.render(Element.InnerHTML) }

// Text is like HTML but renders each element's visible text.
func (d Document) Text() string { return d.render(Element.Text) }

// AttrValue concatenates the value of attr for every element, dropping
// exact duplicates. Unlike the other renderings it does not special-case
// whole documents.
func (d Document) AttrValue(attr string) string {
	return joinUnique(d.elements, false, func(el Element) string {
		return el.AttrValue(attr)
	})
}

func (d Document) render(f func(Element) string) string {
	if !d.whole {
		return joinUnique(d.elements, true, f)
	}
	for _, el := range d.elements {
		if el.named() {
			return f(el)
		}
	}
	return ""
}

func joinUnique(elements []Element, namedOnly bool, f func(Element) string) string {
	seen := make(map[string]struct{}, len(elements))
	var b strings.Builder
	for _, el := range elements {
		if namedOnly && !el.named() {
			continue
		}
		s := f(el)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		b.WriteString(s)
	}
	return b.String()
}
