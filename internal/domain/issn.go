package domain

import (
	"regexp"
	"strings"
)

// issnPattern matches the canonical NNNN-NNNC form anywhere in text.
var issnPattern = regexp.MustCompile(`\b(\d{4})-(\d{3}[\dXx])\b`)

// issnLabelPattern matches values introduced by an explicit "ISSN:" label.
var issnLabelPattern = regexp.MustCompile(`(?i)ISSN[:\s]+(\d{4})-(\d{3}[\dXx])`)

// issnScanLimit bounds how much text ExtractISSNs scans. Front matter
// carries the ISSN when present; scanning further only finds references.
const issnScanLimit = 2000

var issnExactPattern = regexp.MustCompile(`^\d{4}-\d{3}[\dXx]$`)

// LooksLikeISSN reports whether the whole value has the NNNN-NNNC shape,
// without validating the checksum. Used to catch ISSNs filed in the
// identifier field of a record.
func LooksLikeISSN(value string) bool {
	return issnExactPattern.MatchString(strings.TrimSpace(value))
}

// NormalizeISSN strips separators and reformats the value as NNNN-NNNC.
// Returns "" when the input does not contain exactly eight code characters.
func NormalizeISSN(issn string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == 'X' || r == 'x':
			return 'X'
		}
		return -1
	}, issn)
	if len(cleaned) != 8 {
		return ""
	}
	return cleaned[:4] + "-" + cleaned[4:]
}

// ValidISSN reports whether the value is a well-formed ISSN with a correct
// mod-11 check digit. The first seven digits are weighted 8 down to 2; the
// eighth character is the check digit, with X standing for 10.
func ValidISSN(issn string) bool {
	normalized := NormalizeISSN(issn)
	if normalized == "" {
		return false
	}
	digits := strings.ReplaceAll(normalized, "-", "")

	total := 0
	for i := 0; i < 7; i++ {
		total += int(digits[i]-'0') * (8 - i)
	}

	expected := (11 - total%11) % 11
	check := digits[7]
	if check == 'X' {
		return expected == 10
	}
	return expected == int(check-'0')
}

// ExtractISSNs scans free text for checksum-valid ISSNs, looking at both
// bare NNNN-NNNC occurrences and values behind an explicit "ISSN:" label.
// Only the first 2000 characters are considered. Returns ISSNs in order of
// first appearance with duplicates removed.
func ExtractISSNs(text string) []string {
	if len(text) > issnScanLimit {
		text = text[:issnScanLimit]
	}

	var found []string
	seen := make(map[string]bool)
	add := func(matches [][]string) {
		for _, m := range matches {
			issn := m[1] + "-" + strings.ToUpper(m[2])
			if !seen[issn] && ValidISSN(issn) {
				seen[issn] = true
				found = append(found, issn)
			}
		}
	}

	add(issnPattern.FindAllStringSubmatch(text, -1))
	add(issnLabelPattern.FindAllStringSubmatch(text, -1))

	return found
}
