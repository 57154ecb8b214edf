// Package docrepo screen-scrapes the IVOA document repository: the index
// page listing finished standards and the per-document landing pages.
package docrepo

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	spaceRun    = regexp.MustCompile(`\s+`)
	conjunction = regexp.MustCompile(`,? and `)
)

// CleanField normalizes a scraped field for inclusion in a tagged record:
// whitespace is collapsed and "X and Y" conjunctions become comma
// separated. "Grid and Web Services" is a document title, not a
// conjunction, and is restored afterwards. Don't do this to abstracts.
func CleanField(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = conjunction.ReplaceAllString(s, ", ")
	return strings.ReplaceAll(s, "Grid, Web Services", "Grid and Web Services")
}

// findEnclosing returns the first element of the given tag whose text
// contains substr, or nil.
func findEnclosing(doc *goquery.Document, tag, substr string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find(tag).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.Contains(sel.Text(), substr) {
			found = sel
			return false
		}
		return true
	})
	return found
}

// joinedText returns the text content of a selection with the text nodes
// joined by single blanks, then whitespace-normalized.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(strings.Join(parts, " "), " "))
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
