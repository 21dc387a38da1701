package costing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Classifier decides which ingredients act as flour (baker's percentage
// base candidates) and which are eggs (count units with a 50 g default).
type Classifier interface {
	IsFlour(Ingredient) bool
	IsEgg(Ingredient) bool
}

// CategoryClassifier trusts the ingredient's Category tag.
type CategoryClassifier struct{}

// IsFlour reports whether ing is tagged CategoryFlour.
func (CategoryClassifier) IsFlour(ing Ingredient) bool {
	return strings.EqualFold(strings.TrimSpace(string(ing.Category)), string(CategoryFlour))
}

// IsEgg reports whether ing is tagged CategoryEgg.
func (CategoryClassifier) IsEgg(ing Ingredient) bool {
	return strings.EqualFold(strings.TrimSpace(string(ing.Category)), string(CategoryEgg))
}

// NameClassifier matches ingredient names against term dictionaries.
// Flour terms match as substrings, egg terms as whole words. Names and terms
// are compared lower-cased with accents removed.
type NameClassifier struct {
	FlourTerms []string
	EggTerms   []string
}

var (
	defaultFlourTerms = []string{
		"farinha", "flour", "farine", "harina", "wheat", "trigo",
		"integral", "refinada", "especial", "tipo 1", "tipo 2",
	}
	defaultEggTerms = []string{"ovo", "ovos", "egg", "eggs", "huevo", "huevos"}
)

// DefaultNameClassifier returns the multilingual dictionary used when
// ingredients carry no category.
func DefaultNameClassifier() NameClassifier {
	return NameClassifier{
		FlourTerms: append([]string(nil), defaultFlourTerms...),
		EggTerms:   append([]string(nil), defaultEggTerms...),
	}
}

// IsFlour reports whether the folded name contains a flour term.
func (c NameClassifier) IsFlour(ing Ingredient) bool {
	name := foldName(ing.Name)
	if name == "" {
		return false
	}
	for _, term := range c.FlourTerms {
		if term = foldName(term); term != "" && strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// IsEgg reports whether a word of the folded name is an egg term.
func (c NameClassifier) IsEgg(ing Ingredient) bool {
	words := nameWords(ing.Name)
	if len(words) == 0 {
		return false
	}
	for _, term := range c.EggTerms {
		term = foldName(term)
		for _, word := range words {
			if word == term {
				return true
			}
		}
	}
	return false
}

// Chain asks each classifier in order; the first positive answer wins.
type Chain []Classifier

// IsFlour reports whether any classifier in the chain sees flour.
func (c Chain) IsFlour(ing Ingredient) bool {
	for _, cl := range c {
		if cl != nil && cl.IsFlour(ing) {
			return true
		}
	}
	return false
}

// IsEgg reports whether any classifier in the chain sees an egg.
func (c Chain) IsEgg(ing Ingredient) bool {
	for _, cl := range c {
		if cl != nil && cl.IsEgg(ing) {
			return true
		}
	}
	return false
}

// DefaultClassifier prefers explicit categories and falls back to names.
func DefaultClassifier() Classifier {
	return Chain{CategoryClassifier{}, DefaultNameClassifier()}
}

func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func nameWords(s string) []string {
	return strings.FieldsFunc(foldName(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
