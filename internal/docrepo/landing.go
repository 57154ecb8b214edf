package docrepo

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/ivoa/adsharvest/internal/localmeta"
	"github.com/ivoa/adsharvest/internal/record"
)

// ParseLandingPage extracts raw document metadata from one landing page.
// pageURL is the canonical landing-page URL; it anchors relative links and
// the arXiv id lookup.
func ParseLandingPage(page []byte, pageURL string, lm *localmeta.Metadata, ov *localmeta.Overrides) (record.RawMetadata, error) {
	var raw record.RawMetadata

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return raw, fmt.Errorf("parsing landing page: %w", err)
	}

	raw.URL = pageURL

	authorLabel := findEnclosing(doc, "dt", "Author(s):")
	if authorLabel == nil {
		return raw, fmt.Errorf(`no "Author(s):" label found`)
	}
	raw.Authors = CleanField(joinedText(authorLabel.NextAllFiltered("dd").First()))

	editorLabel := findEnclosing(doc, "dt", "Editor(s):")
	if editorLabel == nil {
		return raw, fmt.Errorf(`no "Editor(s):" label found`)
	}
	editors := CleanField(joinedText(editorLabel.NextAllFiltered("dd").First()))
	raw.Editors = &editors

	tagline := doc.Find("h2").First()
	if tagline.Length() == 0 {
		return raw, fmt.Errorf("no tagline sub-heading found")
	}
	raw.Journal = joinedText(tagline)
	raw.Date, err = parseSubheadDate(raw.Journal)
	if err != nil {
		return raw, err
	}

	raw.Abstract, err = abstractText(doc)
	if err != nil {
		return raw, err
	}

	title := doc.Find("h1").First()
	if title.Length() == 0 {
		return raw, fmt.Errorf("no title heading found")
	}
	raw.Title = CleanField(joinedText(title))

	if pdfAnchor := findEnclosing(doc, "a", "PDF"); pdfAnchor != nil {
		if href, ok := pdfAnchor.Attr("href"); ok {
			raw.PDF = resolveURL(pageURL, href)
		}
	}

	id, ok, err := lm.ArXivIDForURL(pageURL, ov)
	if err != nil {
		return raw, err
	}
	if ok {
		// Absence is fine for notes; harvest check reports RECs
		// without one.
		raw.ArXivID = id
	}

	return raw, nil
}

// resolveURL resolves ref against base, returning ref untouched when
// either does not parse.
func resolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
