package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// localePattern matches locale codes used in file suffixes and
// subdirectory names: "fr", "en-US", "pt-br".
var localePattern = regexp.MustCompile(`^[a-zA-Z]{2}(-[a-zA-Z]{2,3})?$`)

// IsLocale reports whether s looks like a locale code.
func IsLocale(s string) bool {
	return localePattern.MatchString(s)
}

// ToRemoteLocale converts an ISO locale to the lowercase form the remote
// service expects: "en-US" -> "en-us".
func ToRemoteLocale(locale string) string {
	return strings.ToLower(locale)
}

// ToISOLocale converts a remote lowercase locale back to ISO form:
// "en-us" -> "en-US".
func ToISOLocale(locale string) string {
	first, second, ok := strings.Cut(locale, "-")
	if !ok {
		return locale
	}
	return first + "-" + strings.ToUpper(second)
}

var (
	nonWord  = regexp.MustCompile(`[^\w\s-]`)
	collapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify converts a title into a directory or file name: ASCII-folds,
// lowercases, strips non-word characters and collapses whitespace and
// dashes into single dashes. Used when import derives local paths from
// remote titles.
func Slugify(value string) string {
	folded, _, err := transform.String(transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	), value)
	if err != nil {
		folded = value
	}
	folded = nonWord.ReplaceAllString(folded, "")
	folded = strings.ToLower(strings.TrimSpace(folded))
	return collapse.ReplaceAllString(folded, "-")
}
