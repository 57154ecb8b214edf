package record

import (
	"regexp"
	"strings"
)

// trailingInitial matches literals ending in an abbreviated given name,
// which indicates "Last, F." style entries.
var trailingInitial = regexp.MustCompile(`[A-Z]\.$`)

// ParseAuthors splits an author literal into individual names.
//
// It understands both "First1 Last1, First2 Last2" and
// "Last1, F.; Last2, J." conventions: a literal that contains a semicolon
// or ends with an initial is split on semicolons, anything else on commas.
// A particle without a blank is rejected as an implausible name.
func ParseAuthors(literal string) ([]string, error) {
	var parts []string
	if trailingInitial.MatchString(literal) || strings.Contains(literal, ";") {
		parts = strings.Split(literal, ";")
	} else {
		parts = strings.Split(literal, ",")
	}

	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, " ") {
			return nil, validationf("unlikely author name %q", part)
		}
		names = append(names, part)
	}
	return names, nil
}

// reconcileAuthors rewrites an author literal so that the named editors
// come first, keeping the remaining authors in their original relative
// order. It is idempotent; an empty editors literal leaves the authors
// untouched.
func reconcileAuthors(authors, editors string) (string, error) {
	if strings.TrimSpace(editors) == "" {
		return authors, nil
	}

	eds, err := ParseAuthors(editors)
	if err != nil {
		return "", err
	}
	auths, err := ParseAuthors(authors)
	if err != nil {
		return "", err
	}

	isEditor := make(map[string]bool, len(eds))
	for _, e := range eds {
		isEditor[e] = true
	}
	var nonEditors []string
	for _, a := range auths {
		if !isEditor[a] {
			nonEditors = append(nonEditors, a)
		}
	}
	if len(nonEditors) > 0 {
		auths = append(append([]string(nil), eds...), nonEditors...)
	}

	// Re-serialize with ; when the first entry is Last-first style, since
	// such entries contain commas themselves.
	if strings.Contains(auths[0], ",") {
		return strings.Join(auths, "; "), nil
	}
	return strings.Join(auths, ", "), nil
}

// SurnameOf extracts the surname from a single parsed author name.
// "Last, F." entries carry the surname up front; for "First Last" entries
// the exceptions list of known multi-word surnames is consulted before
// falling back to the last blank-delimited token.
func SurnameOf(name string, exceptions []string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return name[:i]
	}
	for _, exc := range exceptions {
		if strings.Contains(name, exc) {
			return exc
		}
	}
	fields := strings.Fields(name)
	return fields[len(fields)-1]
}
