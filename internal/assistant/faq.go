package assistant

import (
	"regexp"
	"strings"
	"unicode"
)

// FAQEntry is one question and answer from the FAQ text.
type FAQEntry struct {
	Question string
	Answer   string

	// keywords holds the first two words of the lower-cased question.
	keywords []string
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

// ParseFAQ splits the FAQ text into entries. Blocks without both markers are skipped.
func ParseFAQ(text string) []FAQEntry {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var entries []FAQEntry
	for _, block := range blankLine.Split(strings.TrimSpace(text), -1) {
		block = strings.TrimSpace(block)
		i := strings.Index(block, "\nA:")
		if !strings.HasPrefix(block, "Q:") || i < 0 {
			continue
		}

		question := strings.TrimSpace(strings.TrimPrefix(block[:i], "Q:"))
		answer := strings.TrimSpace(block[i+len("\nA:"):])
		if question == "" || answer == "" {
			continue
		}

		words := tokenize(question)
		if len(words) > 2 {
			words = words[:2]
		}
		entries = append(entries, FAQEntry{
			Question: strings.ToLower(question),
			Answer:   answer,
			keywords: words,
		})
	}
	return entries
}

// tokenize lower-cases s and splits it into words. Punctuation separates words.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
