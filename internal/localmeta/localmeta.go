// Package localmeta reads the manually maintained metadata files that
// accompany a harvest run: the short-name to arXiv id map, the list of
// notes cleared for publication, and the override tables.
package localmeta

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Metadata is the externally maintained lookup data, read once at startup
// and never written by the harvester.
type Metadata struct {
	arXivIDs map[string]string
}

// Load reads a whitespace-delimited two-column <short-name> <arXiv-id>
// file. A malformed line is fatal and reported with its line number.
func Load(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading arXiv id map: %w", err)
	}
	defer f.Close()

	m := &Metadata{arXivIDs: make(map[string]string)}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s, line %d: entry not in"+
				" <short-name> <arXiv-id> format", path, lineNo)
		}
		m.arXivIDs[fields[0]] = fields[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// ArXivID returns the arXiv id for a document short name, if one is known.
func (m *Metadata) ArXivID(shortName string) (string, bool) {
	id, ok := m.arXivIDs[shortName]
	return id, ok
}

// ArXivIDForURL looks up the arXiv id for a document repository URL. This
// involves guessing the short name, which may fail for weirdly formed
// URLs; a failed lookup on a known short name is not an error (only RECs
// carry arXiv ids by Exec decree).
func (m *Metadata) ArXivIDForURL(url string, ov *Overrides) (string, bool, error) {
	shortName, err := GuessShortName(url, ov)
	if err != nil {
		return "", false, err
	}
	id, ok := m.arXivIDs[shortName]
	return id, ok, nil
}

// ReadNotesList reads the manually curated list of note landing-page URLs,
// one per line. Blank lines and lines starting with # are ignored.
func ReadNotesList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading notes list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return urls, nil
}
