package localmeta

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// writeFile writes content to a temp file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "arXiv_ids.txt", "SAMP 1110.0528\n\nVOTable astro-ph/0403120\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if id, ok := m.ArXivID("SAMP"); !ok || id != "1110.0528" {
		t.Errorf("ArXivID(SAMP) = %q, %v", id, ok)
	}
	if id, ok := m.ArXivID("VOTable"); !ok || id != "astro-ph/0403120" {
		t.Errorf("ArXivID(VOTable) = %q, %v", id, ok)
	}
	if _, ok := m.ArXivID("TAP"); ok {
		t.Error("ArXivID(TAP) should miss")
	}
}

func TestLoad_MalformedLineIsFatal(t *testing.T) {
	path := writeFile(t, "arXiv_ids.txt", "SAMP 1110.0528\nbroken-entry\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject a one-column line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Load() error should name the line number, got %q", err)
	}
}

func TestArXivIDForURL(t *testing.T) {
	path := writeFile(t, "arXiv_ids.txt", "SAMP 1110.0528\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	ov := DefaultOverrides()

	id, ok, err := m.ArXivIDForURL("http://www.ivoa.net/documents/SAMP/20120411/", ov)
	if err != nil {
		t.Fatalf("ArXivIDForURL() error: %v", err)
	}
	if !ok || id != "1110.0528" {
		t.Errorf("ArXivIDForURL() = %q, %v", id, ok)
	}

	// Unknown short name is no error, just a miss.
	_, ok, err = m.ArXivIDForURL("http://www.ivoa.net/documents/TAP/20100327/", ov)
	if err != nil {
		t.Fatalf("ArXivIDForURL() error: %v", err)
	}
	if ok {
		t.Error("ArXivIDForURL() should miss for TAP")
	}
}

func TestReadNotesList(t *testing.T) {
	path := writeFile(t, "published_notes.txt",
		"# notes the exec wants on ADS\n"+
			"http://www.ivoa.net/documents/Notes/1/\n"+
			"\n"+
			"http://www.ivoa.net/documents/Notes/2/\n")
	urls, err := ReadNotesList(path)
	if err != nil {
		t.Fatalf("ReadNotesList() error: %v", err)
	}
	want := []string{
		"http://www.ivoa.net/documents/Notes/1/",
		"http://www.ivoa.net/documents/Notes/2/",
	}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("ReadNotesList() = %v, want %v", urls, want)
	}
}

func TestLoadOverrides_Defaults(t *testing.T) {
	ov, err := LoadOverrides("")
	if err != nil {
		t.Fatalf("LoadOverrides() error: %v", err)
	}
	if ov.BibcodeQualifiers["http://www.ivoa.net/documents/VOSpace/20091007/"] != "Q" {
		t.Error("default qualifier for VOSpace missing")
	}
	if ov.ShortNameExceptions["VOT"] != "VOTable" {
		t.Error("default short-name exception for VOT missing")
	}
}

func TestLoadOverrides_MergesFile(t *testing.T) {
	path := writeFile(t, "overrides.yml", `
bibcode_qualifiers:
  "http://www.ivoa.net/documents/New/20260101/": "R"
surname_exceptions:
  - "Van der Berg"
short_name_exceptions:
  CS: ConeSearch
`)
	ov, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("LoadOverrides() error: %v", err)
	}
	if ov.BibcodeQualifiers["http://www.ivoa.net/documents/New/20260101/"] != "R" {
		t.Error("file qualifier not merged")
	}
	if ov.BibcodeQualifiers["http://www.ivoa.net/documents/SLAP/20101209/"] != "Q" {
		t.Error("default qualifier lost during merge")
	}
	found := false
	for _, s := range ov.SurnameExceptions {
		if s == "Van der Berg" {
			found = true
		}
	}
	if !found {
		t.Error("file surname exception not merged")
	}
	if ov.ShortNameExceptions["CS"] != "ConeSearch" {
		t.Error("file short-name exception not merged")
	}
}

func TestLoadOverrides_BadYAML(t *testing.T) {
	path := writeFile(t, "overrides.yml", "bibcode_qualifiers: [not a map\n")
	if _, err := LoadOverrides(path); err == nil {
		t.Error("LoadOverrides() should reject malformed YAML")
	}
}
