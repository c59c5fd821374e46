package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier for fuzzy comparison: CamelCase is
// split into tokens, everything is lowercased and separators are dropped.
// "pageCount", "page_count" and "Page-Count" all become "pagecount".
func NormalizeIdent(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// NormalizePath normalizes every segment of a dotted path, keeping the dots.
func NormalizePath(path string) string {
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		segments[i] = NormalizeIdent(segment)
	}

	return strings.Join(segments, ".")
}

// TokenizeIdent splits an identifier into lowercase tokens.
// Examples:
//   - "pageCount" -> ["page", "count"]
//   - "ISBNCode" -> ["isbn", "code"]
//   - "first_name" -> ["first", "name"]
func TokenizeIdent(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// startsToken reports whether a new CamelCase token begins at runes[i]:
// on a lower-to-upper transition, or on the last capital of an acronym
// followed by a lowercase letter ("XMLParser" splits before 'P').
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return !isSeparator(prev)
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
