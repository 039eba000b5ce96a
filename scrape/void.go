package scrape

// voidElements never have a closing tag or inner content.
var voidElements = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
	// legacy
	"basefont": {},
	"command":  {},
	"frame":    {},
	"isindex":  {},
	"keygen":   {},
	"menuitem": {},
}

// hiddenElements hold content that is never shown as page text.
var hiddenElements = map[string]struct{}{
	"script": {},
	"style":  {},
}

func isVoid(name string) bool {
	_, ok := voidElements[name]
	return ok
}

func isHidden(name string) bool {
	_, ok := hiddenElements[name]
	return ok
}
