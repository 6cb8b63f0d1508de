package fetcher

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ExtractText parses the body as HTML and extracts the text of the first
// matching content region, in priority order: a main landmark, a div tagged
// as the page's content container, the document body, or nothing. Text nodes
// are trimmed and concatenated without separators.
func ExtractText(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", err
	}

	sel := doc.Find("main").First()
	if sel.Length() == 0 {
		sel = doc.Find("div.content").First()
	}
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}
	if sel.Length() == 0 {
		return "", nil
	}

	var sb strings.Builder
	collectText(sel.Nodes[0], &sb)
	return sb.String(), nil
}

// collectText appends every non-blank text node under n, trimmed, in document order.
func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
