package scrape_test

import (
	"fmt"

	"github.com/hyperifyio/goscrape/scrape"
)

func ExampleParse() {
	doc, err := scrape.Parse(`<html><body><div id="hello">Hello World!</div></body></html>`)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(doc.Find("body").InnerHTML())
	fmt.Println(doc.Find("body").Text())
	// Output:
	// <div id="hello">Hello World!</div>
	// Hello World!
}

func ExampleDocument_Find() {
	doc := scrape.MustParse(`<ul><li class="a">one</li><li class="b">two</li><li>three</li></ul>`)
	fmt.Println(doc.Find("li").Len())
	fmt.Println(doc.Find("li", "class").AttrValue("class"))
	fmt.Println(doc.Find("li", "class", "b").Text())
	fmt.Println(doc.Find("*", "*", "a").HTML())
	// Output:
	// 3
	// ab
	// two
	// <li class="a">one</li>
}

func ExampleParse_invalidInput() {
	_, err := scrape.Parse("no markup here")
	fmt.Println(err)
	// Output: parse html: invalid input: markup has no tags
}
