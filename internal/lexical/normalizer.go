// Package lexical turns raw article text into stemmed keyword frequencies.
package lexical

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonLetterExpr = regexp.MustCompile(`[^A-Za-z .\-]+`)

// Normalizer extracts noun-like keywords from raw text. Tagger and stemmer
// are injected so the NLP models are constructed explicitly instead of living
// in package state.
type Normalizer struct {
	tagger  Tagger
	stemmer Stemmer
}

// NewNormalizer wires a tagger and a stemmer; nil arguments select the
// French defaults.
func NewNormalizer(tagger Tagger, stemmer Stemmer) *Normalizer {
	if tagger == nil {
		tagger = NewFrenchTagger()
	}
	if stemmer == nil {
		stemmer = FrenchStemmer{}
	}
	return &Normalizer{tagger: tagger, stemmer: stemmer}
}

// Nouns strips diacritics and non-letter noise, collapses whitespace, and
// returns the surface forms of tokens tagged noun or proper noun with more
// than one character.
func (n *Normalizer) Nouns(text string) []string {
	cleaned := stripDiacritics(text)
	cleaned = nonLetterExpr.ReplaceAllString(cleaned, " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	tokens := tokenize(cleaned)
	tags := n.tagger.Tag(tokens)

	var nouns []string
	for i, tok := range tokens {
		if len(tok.Word) <= 1 {
			continue
		}
		if tags[i] == TagNoun || tags[i] == TagProperNoun {
			nouns = append(nouns, tok.Word)
		}
	}
	return nouns
}

// Stems applies the stemmer to each token independently, order-preserving.
func (n *Normalizer) Stems(tokens []string) []string {
	stems := make([]string, len(tokens))
	for i, t := range tokens {
		stems[i] = n.stemmer.Stem(t)
	}
	return stems
}

// KeywordFrequencies is the full Nouns → Stems → Frequencies pipeline.
func (n *Normalizer) KeywordFrequencies(text string) map[string]int {
	return Frequencies(n.Stems(n.Nouns(text)))
}

// Token is one word with its sentence position, as seen by the tagger.
type Token struct {
	Word          string
	SentenceStart bool
}

func tokenize(cleaned string) []Token {
	fields := strings.Fields(cleaned)
	tokens := make([]Token, 0, len(fields))
	start := true
	for _, f := range fields {
		endsSentence := strings.HasSuffix(f, ".")
		word := strings.Trim(f, ".-")
		if word == "" {
			start = start || endsSentence
			continue
		}
		tokens = append(tokens, Token{Word: word, SentenceStart: start})
		start = endsSentence
	}
	return tokens
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
