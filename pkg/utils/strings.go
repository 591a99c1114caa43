// Package utils holds identifier helpers shared by the code generators.
package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// RemoveAccents folds accented letters to their base form ("ação" -> "acao").
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// SplitWords breaks a schema name into words. Separators are any run of
// non-alphanumerics; inside a run, a new word starts at a lower-to-upper
// transition or at the last capital of an acronym ("XMLHttp" -> XML, Http).
func SplitWords(s string) []string {
	s = RemoveAccents(strings.TrimSpace(s))
	var words []string
	for _, chunk := range nonAlnum.Split(s, -1) {
		words = append(words, splitCamel(chunk)...)
	}
	return words
}

func splitCamel(s string) []string {
	if s == "" {
		return nil
	}
	rs := []rune(s)
	var out []string
	start := 0
	for i := 1; i < len(rs); i++ {
		if !isUpper(rs[i]) {
			continue
		}
		if !isUpper(rs[i-1]) || (i+1 < len(rs) && !isUpper(rs[i+1])) {
			out = append(out, string(rs[start:i]))
			start = i
		}
	}
	return append(out, string(rs[start:]))
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// ToPascalCase capitalises each word and lowercases the rest of it.
func ToPascalCase(s string) string {
	var b strings.Builder
	for _, w := range SplitWords(s) {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}
