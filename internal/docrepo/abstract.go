package docrepo

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// abstractText finds the abstract on a landing page. The abstract isn't
// marked up as such, so we look for the "Abstract" heading and gobble up
// sibling material until the next div.
func abstractText(doc *goquery.Document) (string, error) {
	head := findEnclosing(doc, "h2", "Abstract")
	if head == nil || len(head.Nodes) == 0 {
		return "", fmt.Errorf(`no "Abstract" heading found`)
	}

	var parts []string
	for n := head.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "div" {
			break
		}
		text, stop := formatNode(n)
		parts = append(parts, text)
		if stop {
			// A div inside the accumulated content means the document
			// structure is off; keep what we have and stop.
			break
		}
	}
	return strings.ReplaceAll(strings.Join(parts, " "), "\r", ""), nil
}

// formatNode flattens a node to plain text. Lists are folded to a
// parenthesized enumeration since that is all the markup ADS abstracts
// support; paragraphs contribute a paragraph break. The second return
// value reports that a div turned up below this node, which signals
// accumulation must end there.
func formatNode(n *html.Node) (string, bool) {
	if n.Type == html.TextNode {
		return n.Data, false
	}
	if n.Type != html.ElementNode {
		return "", false
	}

	switch n.Data {
	case "div":
		return "", true

	case "ul", "ol":
		// No way to render ul in running text, so both fold to an
		// enumeration.
		var parts []string
		index := 0
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || c.Data != "li" {
				continue
			}
			index++
			text, stop := formatNode(c)
			parts = append(parts, fmt.Sprintf(" (%d) %s ", index, text))
			if stop {
				return strings.Join(parts, " "), true
			}
		}
		return strings.Join(parts, " "), false

	default:
		var parts []string
		if n.Data == "p" {
			parts = append(parts, "\n\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			text, stop := formatNode(c)
			parts = append(parts, text)
			if stop {
				return strings.Join(parts, " "), true
			}
		}
		return strings.Join(parts, " "), false
	}
}
