package docrepo

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseIndex extracts the landing-page URLs of all finished standards from
// the documents index page: anchors of class rec or ucd-en in the
// Technical Specifications table plus anchors of class en in the Endorsed
// Note table. Different versions are different documents; each URL is
// returned once, in document order.
func ParseIndex(page []byte, repoURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing index page: %w", err)
	}

	recHead := findEnclosing(doc, "h3", "Technical Specifications")
	if recHead == nil {
		return nil, fmt.Errorf(`no "Technical Specifications" heading found`)
	}
	recTable := recHead.NextAllFiltered("table").First()

	enHead := findEnclosing(doc, "h3", "Endorsed Note")
	if enHead == nil {
		return nil, fmt.Errorf(`no "Endorsed Note" heading found`)
	}
	enTable := enHead.NextAllFiltered("table").First()

	var urls []string
	seen := make(map[string]bool)
	add := func(table *goquery.Selection, class string) {
		table.Find("td.versionold a." + class).Each(func(_ int, anchor *goquery.Selection) {
			href, ok := anchor.Attr("href")
			if !ok {
				return
			}
			// Uppercase Documents was fairly common in the old days.
			href = strings.ReplaceAll(href, "Documents", "documents")
			url := resolveURL(repoURL, href)
			if seen[url] {
				return
			}
			seen[url] = true
			urls = append(urls, url)
		})
	}
	add(recTable, "rec")
	add(recTable, "ucd-en")
	add(enTable, "en")

	return urls, nil
}
