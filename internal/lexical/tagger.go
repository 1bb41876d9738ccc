package lexical

import (
	"strings"
	"unicode"
)

// Tag is the part-of-speech class assigned to a token. Only the noun classes
// matter downstream; everything else collapses into TagOther.
type Tag int

const (
	TagOther Tag = iota
	TagNoun
	TagProperNoun
)

// Tagger assigns a tag to every token of a cleaned text. Implementations see
// the whole token stream so they can use sentence position.
type Tagger interface {
	Tag(tokens []Token) []Tag
}

// FrenchTagger is a heuristic noun detector for French prose: function words
// and frequent verbs/adverbs are filtered by a stopword table, capitalized
// tokens outside sentence starts count as proper nouns, and the remaining
// content words count as nouns. It stands in for a statistical tagger behind
// the same interface.
type FrenchTagger struct {
	stopwords map[string]struct{}
}

// NewFrenchTagger builds the tagger with its stopword table.
func NewFrenchTagger() *FrenchTagger {
	stop := make(map[string]struct{}, len(frenchStopwords))
	for _, w := range frenchStopwords {
		stop[w] = struct{}{}
	}
	return &FrenchTagger{stopwords: stop}
}

// Tag implements Tagger.
func (t *FrenchTagger) Tag(tokens []Token) []Tag {
	tags := make([]Tag, len(tokens))
	for i, tok := range tokens {
		lower := strings.ToLower(tok.Word)
		if _, ok := t.stopwords[lower]; ok {
			tags[i] = TagOther
			continue
		}
		if isCapitalized(tok.Word) && !tok.SentenceStart {
			tags[i] = TagProperNoun
			continue
		}
		tags[i] = TagNoun
	}
	return tags
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

// frenchStopwords lists French function words plus high-frequency verbs,
// adverbs and adjectives that the noun heuristic must reject. Diacritics are
// already stripped by the normalizer, so entries are ASCII.
var frenchStopwords = []string{
	// articles, determiners
	"le", "la", "les", "un", "une", "des", "du", "de", "au", "aux",
	"ce", "cet", "cette", "ces", "mon", "ma", "mes", "ton", "ta", "tes",
	"son", "sa", "ses", "notre", "nos", "votre", "vos", "leur", "leurs",
	"quel", "quelle", "quels", "quelles", "chaque", "tout", "toute",
	"tous", "toutes", "aucun", "aucune", "plusieurs", "quelques",
	// pronouns
	"je", "tu", "il", "elle", "on", "nous", "vous", "ils", "elles",
	"me", "te", "se", "moi", "toi", "lui", "eux", "y", "en",
	"qui", "que", "quoi", "dont", "ou", "celui", "celle", "ceux",
	"celles", "cela", "ceci", "rien", "personne", "chacun",
	// prepositions, conjunctions
	"a", "dans", "par", "pour", "sur", "sous", "avec", "sans", "chez",
	"entre", "vers", "avant", "apres", "depuis", "pendant", "contre",
	"et", "mais", "donc", "or", "ni", "car", "si", "comme", "quand",
	"lorsque", "puisque", "parce", "afin", "selon", "malgre", "sauf",
	// auxiliaries and frequent verbs
	"est", "sont", "etait", "etaient", "sera", "seront", "etre", "ete",
	"suis", "es", "sommes", "etes", "soit", "serait", "seraient",
	"ai", "as", "avons", "avez", "ont", "avait", "avaient", "aura",
	"auront", "avoir", "eu", "aurait", "auraient",
	"fait", "faire", "fais", "faisait", "font", "fera", "feront",
	"peut", "peuvent", "pouvait", "pourrait", "pourraient", "pouvoir",
	"doit", "doivent", "devait", "devrait", "devoir",
	"va", "vont", "allait", "aller", "vient", "viennent", "venir",
	"dit", "disent", "disait", "dire", "veut", "veulent", "voulait",
	"prend", "prennent", "met", "mettent", "reste", "restent",
	// adverbs, misc
	"ne", "pas", "plus", "moins", "tres", "trop", "bien", "mal",
	"aussi", "encore", "deja", "toujours", "jamais", "souvent",
	"ici", "ailleurs", "alors", "ainsi", "cependant", "pourtant",
	"puis", "ensuite", "enfin", "surtout", "meme", "peu", "beaucoup",
	"assez", "presque", "environ", "seulement", "vraiment",
	"oui", "non", "peut-etre", "aujourd", "hui", "hier", "demain",
	"maintenant",
}
