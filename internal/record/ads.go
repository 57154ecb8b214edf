package record

import (
	"fmt"
	"strings"
)

// adsFields is the fixed tag order for the free-text fields of a record.
var adsFields = []struct {
	tag string
	get func(*Document) string
}{
	{"A", func(d *Document) string { return d.Authors }},
	{"e", func(d *Document) string { return d.Editors }},
	{"T", func(d *Document) string { return d.Title }},
	{"G", func(d *Document) string { return d.Source }},
	{"J", func(d *Document) string { return d.Journal }},
	{"B", func(d *Document) string { return d.Abstract }},
}

// ADSRecord renders the document in ADS tagged format: a %R identifier
// line, a %D month/year line, a %I links line, then one %<tag> line per
// non-empty field in fixed order. The rendered block carries no trailing
// newline.
func (d *Document) ADSRecord(t Tables) (string, error) {
	bibcode, err := d.Bibcode(t)
	if err != nil {
		return "", err
	}

	parts := []string{"%R " + bibcode}
	parts = append(parts, fmt.Sprintf("%%D %d/%d", d.Date.Month, d.Date.Year))

	links := "%I ELECTR: " + d.URL
	if d.PDF != "" {
		links += ";\nPDF: " + d.PDF
	}
	if d.IvoaDocID != "" {
		links += ";\nEPRINT: " + d.IvoaDocID
	}
	if d.ArXivID != "" {
		links += ";\nARXIV: " + d.ArXivID
	}
	parts = append(parts, links)

	for _, f := range adsFields {
		if val := f.get(d); val != "" {
			parts = append(parts, "%"+f.tag+" "+val)
		}
	}

	return strings.Join(parts, "\n"), nil
}

// ParseRecordBibcode recovers the record identifier from a rendered ADS
// tagged record.
func ParseRecordBibcode(rec string) (string, error) {
	line, _, _ := strings.Cut(rec, "\n")
	bibcode, ok := strings.CutPrefix(line, "%R ")
	if !ok {
		return "", fmt.Errorf("not an ADS tagged record: %q", line)
	}
	return bibcode, nil
}
