package lexical

import (
	"regexp"
	"strings"
)

// tokenPattern extracts runs of letters and digits. Unicode classes so that
// accented and Turkish characters survive tokenization intact.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// defaultStopwords covers the high-frequency function words of the corpora we
// index (instructor material is mostly English and Turkish).
var defaultStopwords = []string{
	// English
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "from",
	"has", "have", "in", "is", "it", "its", "of", "on", "or", "that", "the",
	"this", "to", "was", "were", "will", "with",
	// Turkish
	"acaba", "ama", "ancak", "bir", "bu", "da", "de", "gibi", "ile", "için",
	"mi", "mu", "mü", "ne", "nedir", "o", "şu", "ve", "veya", "ya", "çok",
	"daha", "en", "her", "ki",
}

// Tokenizer normalizes query and document text for lexical scoring:
// lowercase, boundary split, stopword and single-character removal.
// Numeric and alphanumeric tokens (years, product codes) are kept because
// exact identifiers are precisely what lexical matching exists to catch.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the default stopword set plus any
// caller-supplied additions.
func NewTokenizer(extraStopwords ...string) *Tokenizer {
	stop := make(map[string]struct{}, len(defaultStopwords)+len(extraStopwords))
	for _, w := range defaultStopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range extraStopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stop}
}

// Tokenize splits text into normalized tokens. Returns nil for text that
// produces no usable tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	var tokens []string
	for _, tok := range raw {
		// Single-rune tokens carry no signal ("a", "I", stray digits).
		if len([]rune(tok)) <= 1 {
			continue
		}
		if _, isStop := t.stopwords[tok]; isStop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenizeAll tokenizes a batch of documents, preserving order.
func (t *Tokenizer) TokenizeAll(docs []string) [][]string {
	out := make([][]string, len(docs))
	for i, d := range docs {
		out[i] = t.Tokenize(d)
	}
	return out
}
