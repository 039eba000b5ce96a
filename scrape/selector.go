package scrape

// Wildcard matches anything, same as an empty component.
const Wildcard = "*"

// Selector narrows a Document by tag name, attribute name and attribute
// value. An empty or Wildcard component leaves that dimension unconstrained.
type Selector struct {
	Tag   string
	Attr  string
	Value string
}

// Sel builds a Selector from up to three positional components:
// tag, tag+attribute, or tag+attribute+value. Missing components are
// unconstrained and components past the third are ignored.
func Sel(parts ...string) Selector {
	var s Selector
	fields := []*string{&s.Tag, &s.Attr, &s.Value}
	for i := 0; i < len(parts) && i < len(fields); i++ {
		*fields[i] = parts[i]
	}
	return s
}

func (s Selector) normalize() Selector {
	return Selector{Tag: constraint(s.Tag), Attr: constraint(s.Attr), Value: constraint(s.Value)}
}

// IsZero reports whether the selector constrains nothing.
func (s Selector) IsZero() bool {
	n := s.normalize()
	return n.Tag == "" && n.Attr == "" && n.Value == ""
}

func constraint(v string) string {
	if v == Wildcard {
		return ""
	}
	return v
}
