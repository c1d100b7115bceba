package util

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Fold lower-cases s, strips diacritics and collapses whitespace so "Rosé"
// and "ROSE" compare equal.
func Fold(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, input)
	if err != nil {
		s = input
	}
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ContainsFolded reports whether needle occurs in haystack ignoring case and
// accents.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// TitleCase lower-cases then title-cases every word.
func TitleCase(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	return cases.Title(language.Und).String(s)
}

// NormalizeCell trims a spreadsheet cell and drops the "nan" placeholder older
// exports leave behind.
func NormalizeCell(input string) string {
	s := strings.TrimSpace(reSpaces.ReplaceAllString(strings.ReplaceAll(input, "\u00A0", " "), " "))
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// ParseIDs splits a comma-separated id list. Tokens that are not integers are
// skipped individually; a code stored as "12.0" is accepted as 12.
func ParseIDs(input string) []int {
	out := []int{}
	for _, token := range strings.Split(input, ",") {
		if id, ok := ParseID(token); ok {
			out = append(out, id)
		}
	}
	return out
}

// ParseID parses one id token.
func ParseID(token string) (int, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}
	if id, err := strconv.Atoi(token); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// JoinIDs renders ids sorted ascending, comma-separated.
func JoinIDs(ids []int) string {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, id := range sorted {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

// SanitizeName makes a suggestion name safe to use as a file name or key.
func SanitizeName(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", "\"", "_")
	out := strings.TrimSpace(repl.Replace(input))
	out = strings.Trim(out, ".")
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
