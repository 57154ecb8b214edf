// Package record models IVOA document metadata and its export to the ADS
// tagged record format.
package record

import (
	"fmt"
	"sort"
	"strings"
)

// Document types. Recommendations and Endorsed Notes are "spec", everything
// else (Notes) is "rept". These are the category names ADS expects inside
// bibcodes.
const (
	TypeSpec = "spec"
	TypeRept = "rept"
)

// Source is the %G value stamped on every record.
const Source = "IVOA"

// Date is a calendar date without a time zone, as printed on landing pages.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// IsZero reports whether d carries no date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or 1 comparing d to o chronologically.
func (d Date) Compare(o Date) int {
	a := [3]int{d.Year, d.Month, d.Day}
	b := [3]int{o.Year, o.Month, o.Day}
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Tables holds the manually curated override tables consulted during
// identifier generation. They are loaded from the overrides file; see
// package localmeta.
type Tables struct {
	// Qualifiers maps landing-page URLs to bibcode qualifier characters,
	// used to disambiguate documents published on the same day by authors
	// with the same initial.
	Qualifiers map[string]string
	// Surnames lists known multi-word surnames that the last-token
	// heuristic would split.
	Surnames []string
}

// RawMetadata is what the landing-page parser recovers from one document.
// Editors is a pointer so that an empty-but-present editor line can be told
// apart from a page with no editor line at all.
type RawMetadata struct {
	URL      string
	Title    string
	Authors  string
	Editors  *string
	Date     Date
	Abstract string
	Journal  string
	PDF      string
	ArXivID  string
}

// Document is validated, enriched metadata for one IVOA document.
type Document struct {
	URL      string
	Title    string
	Authors  string // editors merged to the front, see reconcileAuthors
	Editors  string
	Date     Date
	Abstract string
	Journal  string
	Source   string
	Type     string // TypeSpec or TypeRept
	PDF      string
	ArXivID  string

	// IvoaDocID is assigned by the collection once global ordering is
	// known; empty until then.
	IvoaDocID string
}

// NewDocument validates raw metadata and builds a Document from it.
// Missing mandatory fields are reported together, alphabetically, naming
// the document's URL.
func NewDocument(raw RawMetadata) (*Document, error) {
	var missing []string
	if raw.Abstract == "" {
		missing = append(missing, "abstract")
	}
	if raw.Authors == "" {
		missing = append(missing, "authors")
	}
	if raw.Date.IsZero() {
		missing = append(missing, "date")
	}
	if raw.Editors == nil {
		missing = append(missing, "editors")
	}
	if raw.Journal == "" {
		missing = append(missing, "journal")
	}
	if raw.Title == "" {
		missing = append(missing, "title")
	}
	if raw.URL == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		origin := raw.URL
		if origin == "" {
			origin = "<unknown origin>"
		}
		sort.Strings(missing)
		return nil, validationf("document at %s: missing key(s) %s",
			origin, strings.Join(missing, ", "))
	}

	d := &Document{
		URL:      raw.URL,
		Title:    raw.Title,
		Authors:  raw.Authors,
		Editors:  *raw.Editors,
		Date:     raw.Date,
		Abstract: raw.Abstract,
		Journal:  raw.Journal,
		Source:   Source,
		PDF:      raw.PDF,
		ArXivID:  raw.ArXivID,
	}

	// The editors did most of the work that went into a document, so they
	// get the first author slots.
	authors, err := reconcileAuthors(d.Authors, d.Editors)
	if err != nil {
		return nil, fmt.Errorf("document at %s: %w", d.URL, err)
	}
	d.Authors = authors

	if strings.Contains(d.Journal, "Recommendation") ||
		strings.Contains(d.Journal, "Endorsed Note") {
		d.Type = TypeSpec
	} else {
		d.Type = TypeRept
	}

	return d, nil
}

// FirstAuthorSurname returns the surname of the first author after editor
// reconciliation. Bibcode generation depends on it, so the heuristics here
// have to stay in sync with what ADS expects.
func (d *Document) FirstAuthorSurname(exceptions []string) (string, error) {
	authors, err := ParseAuthors(d.Authors)
	if err != nil {
		return "", err
	}
	return SurnameOf(authors[0], exceptions), nil
}

// Bibcode computes the deterministic record identifier:
// {year}ivoa.{type}{qualifier}{month:02}{day:02}{initial}. The qualifier
// is "." unless this document's URL is in the override table.
func (d *Document) Bibcode(t Tables) (string, error) {
	surname, err := d.FirstAuthorSurname(t.Surnames)
	if err != nil {
		return "", err
	}
	qualifier := t.Qualifiers[d.URL]
	if qualifier == "" {
		qualifier = "."
	}
	initial := []rune(surname)[0]
	return fmt.Sprintf("%divoa.%s%s%02d%02d%c",
		d.Date.Year, d.Type, qualifier, d.Date.Month, d.Date.Day, initial), nil
}
