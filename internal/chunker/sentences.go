package chunker

import (
	"regexp"
	"strings"
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// Sentences splits a query into sentences on runs of '.', '!' and '?',
// trimming whitespace and dropping empties. If nothing survives, the whole
// query is returned as a single sentence so a punctuation-only or unpunctuated
// input still gets matched.
func Sentences(query string) []string {
	parts := sentenceSplitter.Split(query, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return []string{query}
	}
	return sentences
}
