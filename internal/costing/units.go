package costing

import "strings"

const (
	gramsPerKilo      = 1000.0
	defaultEggGrams   = 50.0
	defaultCountGrams = 100.0
)

type unitScale int

const (
	scaleUnknown unitScale = iota
	scaleBase              // grams, milliliters
	scaleThousand          // kilograms, liters
	scaleCount             // unidade
)

// Engine carries the pluggable parts of the costing rules. The zero value
// uses DefaultClassifier.
type Engine struct {
	Classifier Classifier
}

var defaultClassifier = DefaultClassifier()

func (e Engine) classifier() Classifier {
	if e.Classifier == nil {
		return defaultClassifier
	}
	return e.Classifier
}

// ToGrams converts quantity expressed in unit into grams of ing, using the
// default Engine.
func ToGrams(quantity float64, ing *Ingredient, unit *MeasurementUnit) float64 {
	return Engine{}.ToGrams(quantity, ing, unit)
}

// ToGrams converts quantity expressed in unit into grams of ing. Grams and
// milliliters are treated as equivalent. Missing data or a non-positive
// quantity yields 0; an unrecognised unit is assumed to be grams.
func (e Engine) ToGrams(quantity float64, ing *Ingredient, unit *MeasurementUnit) float64 {
	if !(quantity > 0) || ing == nil || unit == nil {
		return 0
	}

	switch classifyUnit(*unit) {
	case scaleBase:
		return quantity
	case scaleThousand:
		return quantity * gramsPerKilo
	case scaleCount:
		if e.classifier().IsEgg(*ing) {
			if ing.ConversionFactor > 0 {
				return quantity * ing.ConversionFactor
			}
			return quantity * defaultEggGrams
		}
		if ing.ConversionFactor > 0 {
			return quantity * ing.ConversionFactor
		}
		return quantity * defaultCountGrams
	}

	if ing.ConversionFactor > 0 {
		return quantity * ing.ConversionFactor
	}
	// TODO: unresolvable units still count as grams; revisit once product
	// decides between this and excluding the line.
	return quantity
}

func classifyUnit(u MeasurementUnit) unitScale {
	switch foldName(u.Symbol) {
	case "g", "ml":
		return scaleBase
	case "kg", "l":
		return scaleThousand
	case "un", "und", "unid", "u":
		return scaleCount
	}

	name := foldName(u.Name)
	switch {
	case name == "":
	case containsAny(name, "mili", "milli", "ml"):
		return scaleBase
	case containsAny(name, "quilo", "kilo", "kg", "litro", "liter", "litre"):
		return scaleThousand
	case strings.Contains(name, "gram"):
		return scaleBase
	case name == "un" || containsAny(name, "unidade", "unidad", "unit"):
		return scaleCount
	}

	if u.Type == UnitKindCount {
		return scaleCount
	}
	return scaleUnknown
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
