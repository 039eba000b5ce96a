// Package scrape extracts elements from HTML markup and narrows them by tag
// name, attribute name and attribute value.
//
// It is not an HTML5 parser. Elements are matched by a single scan that
// pairs each closing tag with the most recent open tag of the same name,
// which is enough to find an element at any depth without walking a tree:
//
//	doc, err := scrape.Parse(`<html><body><div id="hello">Hello World!</div></body></html>`)
//	if err != nil {
//		return err
//	}
//	hello := doc.Find("div", "id", "hello")
//	fmt.Println(hello.Text()) // Hello World!
//
// Rendered markup and text are the source bytes; entities are not decoded.
package scrape
