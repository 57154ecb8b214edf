package record

import (
	"fmt"
	"sort"
	"strings"
)

// Collection is an ordered set of documents plus the logic that needs to
// see all of them at once: ordering, identifier assignment and bibcode
// uniqueness. The document order is fixed at construction time.
type Collection struct {
	Docs   []*Document
	tables Tables
}

// NewCollection sorts the documents, assigns their ivoadoc ids and
// validates bibcode uniqueness. The input slice is not retained.
func NewCollection(docs []*Document, tables Tables) (*Collection, error) {
	c := &Collection{
		Docs:   append([]*Document(nil), docs...),
		tables: tables,
	}
	if err := c.sortDocs(); err != nil {
		return nil, err
	}
	c.assignIdentifiers()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// sortDocs orders the documents by date, first-author surname and title,
// which is the order ivoadoc id generation depends on.
func (c *Collection) sortDocs() error {
	type key struct {
		doc     *Document
		surname string
	}
	keys := make([]key, len(c.Docs))
	for i, d := range c.Docs {
		surname, err := d.FirstAuthorSurname(c.tables.Surnames)
		if err != nil {
			return fmt.Errorf("document at %s: %w", d.URL, err)
		}
		keys[i] = key{doc: d, surname: surname}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if cmp := a.doc.Date.Compare(b.doc.Date); cmp != 0 {
			return cmp < 0
		}
		if a.surname != b.surname {
			return a.surname < b.surname
		}
		return a.doc.Title < b.doc.Title
	})
	for i := range keys {
		c.Docs[i] = keys[i].doc
	}
	return nil
}

// assignIdentifiers stamps every document with its ivoadoc id,
// ivoa:{r|n}.{year}.{month}.{index}. The index is a running count per
// document type over the whole sorted collection; the id's month comes
// from the document itself, not from the counter scope.
func (c *Collection) assignIdentifiers() {
	counts := make(map[string]int)
	for _, d := range c.Docs {
		kind := "n"
		if d.Type == TypeSpec {
			kind = "r"
		}
		d.IvoaDocID = fmt.Sprintf("ivoa:%s.%04d.%02d.%02d",
			kind, d.Date.Year, d.Date.Month, counts[d.Type])
		counts[d.Type]++
	}
}

// validate fails if two documents generate the same bibcode. The fix is a
// manual qualifier entry for one of them, so the message names every
// clashing URL.
func (c *Collection) validate() error {
	byBibcode := make(map[string][]*Document)
	for _, d := range c.Docs {
		bibcode, err := d.Bibcode(c.tables)
		if err != nil {
			return fmt.Errorf("document at %s: %w", d.URL, err)
		}
		byBibcode[bibcode] = append(byBibcode[bibcode], d)
	}

	var clashing []string
	for _, docs := range byBibcode {
		if len(docs) > 1 {
			urls := make([]string, len(docs))
			for i, d := range docs {
				urls[i] = d.URL
			}
			clashing = append(clashing, strings.Join(urls, " and "))
		}
	}
	if len(clashing) > 0 {
		sort.Strings(clashing)
		return validationf("the following documents generated clashing"+
			" bibcodes: %s. fix by adding one of them to the bibcode"+
			" qualifier overrides", strings.Join(clashing, " AND ALSO\n"))
	}
	return nil
}

// Bibcodes returns the bibcodes of all documents in collection order.
func (c *Collection) Bibcodes() ([]string, error) {
	bibcodes := make([]string, len(c.Docs))
	for i, d := range c.Docs {
		bibcode, err := d.Bibcode(c.tables)
		if err != nil {
			return nil, err
		}
		bibcodes[i] = bibcode
	}
	return bibcodes, nil
}

// ShortNames groups the collection's bibcodes by document short name, for
// external consumption. The caller supplies the short-name heuristic so
// the collection stays independent of URL-layout knowledge.
func (c *Collection) ShortNames(shortName func(url string) (string, error)) (map[string][]string, error) {
	byName := make(map[string][]string)
	for _, d := range c.Docs {
		name, err := shortName(d.URL)
		if err != nil {
			return nil, fmt.Errorf("document at %s: %w", d.URL, err)
		}
		bibcode, err := d.Bibcode(c.tables)
		if err != nil {
			return nil, err
		}
		byName[name] = append(byName[name], bibcode)
	}
	return byName, nil
}
