package scrape

import "strings"

// Element is one opening tag found in the source markup together with the
// markup it encloses. Elements are immutable.
type Element struct {
	name    string
	opening string
	inner   string
}

// Name returns the lowercase tag name.
func (e Element) Name() string { return e.name }

// OpeningMarkup returns the opening tag exactly as written, attributes and
// original casing included.
func (e Element) OpeningMarkup() string { return e.opening }

// InnerHTML returns the markup between the opening tag and its matching
// closing tag. It is empty for void and self-closed elements.
func (e Element) InnerHTML() string { return e.inner }

// HTML returns the element as markup. The closing tag is always regenerated,
// so void and self-closed elements render as <name ...></name>.
func (e Element) HTML() string {
	return e.opening + e.inner + "</" + e.name + ">"
}

// String implements fmt.Stringer.
func (e Element) String() string { return e.HTML() }

// Text returns the visible text of the element with all tags removed.
func (e Element) Text() string { return extractText(e.name, e.inner) }

// AttrValue returns the value of the first attr= in the opening tag, or an
// empty string when the attribute is absent. Quoted values end at the
// matching quote. Unquoted values end at the next space, or when no space
// follows, one byte before the end of the tag (dropping the closing '>').
func (e Element) AttrValue(attr string) string {
	key := attr + "="
	i := strings.Index(e.opening, key)
	if i < 0 {
		return ""
	}
	rest := e.opening[i+len(key):]
	if rest == "" {
		return ""
	}
	if q := rest[0]; q == '"' || q == '\'' {
		rest = rest[1:]
		if j := strings.IndexByte(rest, q); j >= 0 {
			return rest[:j]
		}
		return rest
	}
	if j := strings.IndexByte(rest, ' '); j >= 0 {
		return rest[:j]
	}
	return rest[:len(rest)-1]
}

func (e Element) named() bool {
	return strings.TrimSpace(e.name) != ""
}
