package lexical

import (
	"strings"

	"github.com/kljensen/snowball/french"
)

// Stemmer reduces a word to its stem. Deterministic, no side effects.
type Stemmer interface {
	Stem(word string) string
}

// FrenchStemmer applies the French Snowball algorithm. Inflected forms of the
// same lemma collapse to one stem, so "articles" and "article" count as one
// keyword downstream.
type FrenchStemmer struct{}

// Stem implements Stemmer.
func (FrenchStemmer) Stem(word string) string {
	return french.Stem(strings.ToLower(word), false)
}
