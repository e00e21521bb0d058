// Package match scores how well a resolved candidate matches the original
// record. Scores are in [0,1] and feed directly into verification
// confidence.
package match

import (
	"strings"
)

// stopwords are filler words excluded from token overlap so that short
// titles sharing only articles and prepositions do not score.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "with": {}, "and": {}, "or": {},
}

// Weights for the combined title+author score.
const (
	titleWeight  = 0.7
	authorWeight = 0.3
)

// TokenOverlap returns the Jaccard similarity of the two strings' word
// sets after lowercasing and stopword removal. Returns 0 when either
// side has no content words, so a missing field never inflates
// confidence.
func TokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// AuthorContainment scores whether the query's first author appears in
// the candidate's author list. A full substring match scores 1; otherwise
// the fraction of the first author's name words found in the candidate
// list.
func AuthorContainment(queryAuthors, candidateAuthors string) float64 {
	first := strings.ToLower(strings.TrimSpace(strings.SplitN(queryAuthors, ",", 2)[0]))
	if first == "" || candidateAuthors == "" {
		return 0
	}
	candidate := strings.ToLower(candidateAuthors)
	if strings.Contains(candidate, first) {
		return 1
	}

	words := strings.Fields(first)
	if len(words) == 0 {
		return 0
	}
	found := 0
	for _, w := range words {
		if strings.Contains(candidate, w) {
			found++
		}
	}
	return float64(found) / float64(len(words))
}

// TitleAuthorScore combines title overlap and author containment into a
// single candidate score, weighting the title at 0.7 and the author list
// at 0.3. The author component only contributes when both sides have
// authors.
func TitleAuthorScore(queryTitle, queryAuthors, candidateTitle, candidateAuthors string) float64 {
	score := TokenOverlap(queryTitle, candidateTitle) * titleWeight
	if queryAuthors != "" && candidateAuthors != "" {
		score += AuthorContainment(queryAuthors, candidateAuthors) * authorWeight
	}
	if score > 1 {
		score = 1
	}
	return score
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}
