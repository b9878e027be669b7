package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// invisibleSelector matches nodes whose content never renders as page text
const invisibleSelector = "script, style, noscript"

// Page is the visible text of a fetched document, prepared for heuristics
type Page struct {
	// Text is the lowercased visible text with whitespace runs collapsed
	Text string
	// Words is the number of whitespace separated tokens in Text
	Words int
}

// NewPage extracts the visible text from raw HTML. Documents that cannot be
// parsed yield an empty page.
func NewPage(rawHTML string) Page {
	text := VisibleText(rawHTML)

	return Page{
		Text:  text,
		Words: len(strings.Fields(text)),
	}
}

// VisibleText strips script, style and noscript elements, joins the remaining
// text nodes with a space, collapses whitespace and lowercases the result
func VisibleText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		log.Debug().Err(err).Msg("failed to parse html for text extraction")
		return ""
	}

	doc.Find(invisibleSelector).Remove()

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}

	return strings.ToLower(strings.Join(strings.Fields(strings.Join(parts, " ")), " "))
}

// collectText appends the non-blank text nodes under n in document order
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}

		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
