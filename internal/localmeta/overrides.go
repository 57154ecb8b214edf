package localmeta

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivoa/adsharvest/internal/record"
)

// Overrides holds the curated exception tables. They ship with built-in
// defaults and can be extended through a YAML file so that a new clash or
// odd surname doesn't require a rebuild.
type Overrides struct {
	// BibcodeQualifiers maps landing-page URLs to qualifier characters for
	// documents published on the same day by authors with the same
	// initial. The document coordinator tries to avoid such situations,
	// so this list grows rarely.
	BibcodeQualifiers map[string]string `yaml:"bibcode_qualifiers"`
	// SurnameExceptions lists multi-word surnames the last-token heuristic
	// would split.
	SurnameExceptions []string `yaml:"surname_exceptions"`
	// ShortNameExceptions remaps known historical abbreviations to the
	// short names used in the arXiv id map.
	ShortNameExceptions map[string]string `yaml:"short_name_exceptions"`
}

// DefaultOverrides returns the built-in exception tables.
func DefaultOverrides() *Overrides {
	return &Overrides{
		BibcodeQualifiers: map[string]string{
			"http://www.ivoa.net/documents/cover/ConeSearch-20080222.html": "Q",
			"http://www.ivoa.net/documents/VOSpace/20091007/":              "Q",
			"http://www.ivoa.net/documents/SLAP/20101209/":                 "Q",
		},
		SurnameExceptions: []string{
			"Preite Martinez",
		},
		ShortNameExceptions: map[string]string{
			"VOT": "VOTable",
		},
	}
}

// LoadOverrides returns the defaults merged with the YAML file at path.
// An empty path returns just the defaults. File entries win over
// defaults; list entries are appended.
func LoadOverrides(path string) (*Overrides, error) {
	ov := DefaultOverrides()
	if path == "" {
		return ov, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	var extra Overrides
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing overrides %s: %w", path, err)
	}

	for url, qualifier := range extra.BibcodeQualifiers {
		ov.BibcodeQualifiers[url] = qualifier
	}
	ov.SurnameExceptions = append(ov.SurnameExceptions, extra.SurnameExceptions...)
	for abbrev, name := range extra.ShortNameExceptions {
		ov.ShortNameExceptions[abbrev] = name
	}
	return ov, nil
}

// Tables returns the subset of the overrides that record generation
// consults.
func (o *Overrides) Tables() record.Tables {
	return record.Tables{
		Qualifiers: o.BibcodeQualifiers,
		Surnames:   o.SurnameExceptions,
	}
}
