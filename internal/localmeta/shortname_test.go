package localmeta

import (
	"strings"
	"testing"
)

func TestGuessShortName(t *testing.T) {
	ov := DefaultOverrides()
	cases := []struct {
		url  string
		want string
	}{
		{"http://www.ivoa.net/documents/SAMP/20120411/", "SAMP"},
		{"www.ivoa.net/documents/cover/SAMP-20090421.html", "SAMP"},
		{"http://www.ivoa.net/documents/TAP/20100327/index.html", "TAP"},
	}
	for _, tc := range cases {
		got, err := GuessShortName(tc.url, ov)
		if err != nil {
			t.Errorf("GuessShortName(%q) error: %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("GuessShortName(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestGuessShortName_ExceptionRemap(t *testing.T) {
	got, err := GuessShortName("http://www.ivoa.net/documents/cover/VOT-20040811.html", DefaultOverrides())
	if err != nil {
		t.Fatalf("GuessShortName() error: %v", err)
	}
	if got != "VOTable" {
		t.Errorf("GuessShortName() = %q, want VOTable", got)
	}
}

func TestGuessShortName_TieIsFatal(t *testing.T) {
	_, err := GuessShortName("http://www.ivoa.net/documents/ABC/ABC/", DefaultOverrides())
	if err == nil {
		t.Fatal("GuessShortName() should fail on a top-score tie")
	}
	if !strings.Contains(err.Error(), "cannot infer short name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPathShortName(t *testing.T) {
	ov := DefaultOverrides()
	cases := []struct {
		url  string
		want string
	}{
		{"http://www.ivoa.net/documents/SAMP/20120411/", "SAMP"},
		{"http://www.ivoa.net/documents/notes/UCDlist/20070402/", "UCDlist"},
		{"http://www.ivoa.net/documents/cover/VOT-20040811.html", "VOT-20040811.html"},
	}
	for _, tc := range cases {
		got, err := PathShortName(tc.url, ov)
		if err != nil {
			t.Errorf("PathShortName(%q) error: %v", tc.url, err)
			continue
		}
		if got != tc.want {
			t.Errorf("PathShortName(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
