package lexical

import (
	"reflect"
	"testing"
)

func TestNounsFiltersStopwordsAndDiacritics(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, nil)
	got := n.Nouns("Le président Emmanuel Macron visite une centrale nucléaire.")
	want := []string{"president", "Emmanuel", "Macron", "visite", "centrale", "nucleaire"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected nouns: got %v, want %v", got, want)
	}
}

func TestNounsDropsDigitsAndShortTokens(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, nil)
	got := n.Nouns("L'économie française a progressé de 2,5 % en 2024 !")
	want := []string{"economie", "francaise", "progresse"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected nouns: got %v, want %v", got, want)
	}
}

func TestNounsEmptyText(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, nil)
	if got := n.Nouns(""); len(got) != 0 {
		t.Fatalf("expected no nouns, got %v", got)
	}
}

func TestKeywordFrequenciesCountsRepeatedStems(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(nil, nil)
	freq := n.KeywordFrequencies("La centrale nucléaire produit. La centrale produit encore.")

	if len(freq) != 3 {
		t.Fatalf("expected 3 distinct stems, got %d: %v", len(freq), freq)
	}
	if got := SignificantCount(freq); got != 2 {
		t.Fatalf("expected 2 repeated stems, got %d: %v", got, freq)
	}
}

func TestFrenchTaggerSentencePosition(t *testing.T) {
	t.Parallel()

	tagger := NewFrenchTagger()
	tags := tagger.Tag([]Token{
		{Word: "Paris", SentenceStart: true},
		{Word: "accueille", SentenceStart: false},
		{Word: "Macron", SentenceStart: false},
		{Word: "les", SentenceStart: false},
	})

	want := []Tag{TagNoun, TagNoun, TagProperNoun, TagOther}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("unexpected tags: got %v, want %v", tags, want)
	}
}

func TestFrenchStemmerCollapsesInflections(t *testing.T) {
	t.Parallel()

	s := FrenchStemmer{}

	if s.Stem("articles") != s.Stem("article") {
		t.Fatalf("plural did not collapse: %q vs %q", s.Stem("articles"), s.Stem("article"))
	}
	if s.Stem("centrales") != s.Stem("centrale") {
		t.Fatalf("plural did not collapse: %q vs %q", s.Stem("centrales"), s.Stem("centrale"))
	}
	if s.Stem("Centrale") != s.Stem("centrale") {
		t.Fatalf("stemming is case sensitive: %q vs %q", s.Stem("Centrale"), s.Stem("centrale"))
	}
}

func TestFrequencies(t *testing.T) {
	t.Parallel()

	freq := Frequencies([]string{"a", "b", "a", "c", "b", "a"})

	want := map[string]int{"a": 3, "b": 2, "c": 1}
	if !reflect.DeepEqual(freq, want) {
		t.Fatalf("unexpected frequencies: got %v, want %v", freq, want)
	}
	if got := SignificantCount(freq); got != 2 {
		t.Fatalf("expected 2 significant keywords, got %d", got)
	}
}

func TestSignificantCountEmpty(t *testing.T) {
	t.Parallel()

	if got := SignificantCount(map[string]int{}); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := SignificantCount(map[string]int{"x": 1}); got != 0 {
		t.Fatalf("expected 0 for single occurrences, got %d", got)
	}
}
