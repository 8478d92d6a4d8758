package nlp

import (
	"regexp"
	"unicode/utf8"
)

// tokenPattern keeps runs of word characters or characters in the
// Hiragana, Katakana and CJK unified ideograph ranges; any other
// character splits the text.
var tokenPattern = regexp.MustCompile(`[\w\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]+`)

// ExtractKeywords tokenizes the question into candidate search terms,
// in order of occurrence and without deduplication. Single-character
// tokens are dropped as too ambiguous to match usefully.
func ExtractKeywords(text string) []string {
	keywords := []string{}
	for _, token := range tokenPattern.FindAllString(text, -1) {
		if utf8.RuneCountInString(token) > 1 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}
