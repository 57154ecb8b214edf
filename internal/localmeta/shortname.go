package localmeta

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	docPrefix   = regexp.MustCompile(`.*documents/`)
	tokenSplit  = regexp.MustCompile(`[/-]`)
	upperLetter = regexp.MustCompile(`[A-Z]`)
	lowerLetter = regexp.MustCompile(`[a-z]`)
)

// GuessShortName guesses the short name of a document from its repository
// URL. Due to historically confusing practices this is pure heuristics:
// known junk segments are thrown out and the remaining token with the most
// name-like letters wins, where uppercase letters count full and lowercase
// ones a fifth. A tie at the top is a validation-grade failure; known
// abbreviations are remapped through the overrides table.
func GuessShortName(url string, ov *Overrides) (string, error) {
	localPath := docPrefix.ReplaceAllString(url, "")
	unjunked := strings.ReplaceAll(localPath, "cover/", "")
	unjunked = strings.ReplaceAll(unjunked, "index.html", "")

	type scored struct {
		score float64
		token string
	}
	var candidates []scored
	for _, token := range tokenSplit.Split(unjunked, -1) {
		score := float64(len(upperLetter.FindAllString(token, -1))) +
			float64(len(lowerLetter.FindAllString(token, -1)))/5
		candidates = append(candidates, scored{score: score, token: token})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score < candidates[j].score
		}
		return candidates[i].token < candidates[j].token
	})

	last := len(candidates) - 1
	if len(candidates) > 1 && candidates[last].score == candidates[last-1].score {
		return "", fmt.Errorf("cannot infer short name: %s", url)
	}

	name := candidates[last].token
	if mapped, ok := ov.ShortNameExceptions[name]; ok {
		return mapped, nil
	}
	return name, nil
}

// PathShortName derives a grouping key for the short-name report from a
// repository URL: the first path segment after documents/, skipping notes
// and cover segments. When that leaves nothing, the scored heuristic of
// GuessShortName decides.
func PathShortName(url string, ov *Overrides) (string, error) {
	localPath := docPrefix.ReplaceAllString(url, "")
	for _, segment := range strings.Split(localPath, "/") {
		if segment == "" || segment == "notes" || segment == "cover" {
			continue
		}
		return segment, nil
	}
	return GuessShortName(url, ov)
}
