package costing

import (
	"math"
	"testing"
)

const (
	unitGram int64 = iota + 1
	unitKilo
	unitMilli
	unitLiter
	unitCount
	unitCup
)

const (
	ingFlour int64 = iota + 1
	ingSugar
	ingSalt
	ingEggs
	ingWater
	ingCondensedMilk
	ingButter
)

var testUnits = []MeasurementUnit{
	{ID: unitGram, Name: "Grama", Symbol: "g", Type: UnitKindMass},
	{ID: unitKilo, Name: "Quilograma", Symbol: "kg", Type: UnitKindMass},
	{ID: unitMilli, Name: "Mililitro", Symbol: "ml", Type: UnitKindVolume},
	{ID: unitLiter, Name: "Litro", Symbol: "l", Type: UnitKindVolume},
	{ID: unitCount, Name: "Unidade", Symbol: "un", Type: UnitKindCount},
	{ID: unitCup, Name: "Xícara", Symbol: "xic", Type: UnitKindVolume},
}

var testIngredients = []Ingredient{
	{ID: ingFlour, Name: "Farinha de Trigo Especial", PricePerKg: 5},
	{ID: ingSugar, Name: "Açúcar", PricePerKg: 4},
	{ID: ingSalt, Name: "Sal", PricePerKg: 2},
	{ID: ingEggs, Name: "Ovos", PricePerKg: 20},
	{ID: ingWater, Name: "Água", PricePerKg: 0},
	{ID: ingCondensedMilk, Name: "Leite Condensado", PricePerKg: 18, ConversionFactor: 395},
	{ID: ingButter, Name: "Manteiga", PricePerKg: 40},
}

func testCatalog() Catalog {
	return NewCatalog(testIngredients, testUnits)
}

func unitByID(t *testing.T, id int64) *MeasurementUnit {
	t.Helper()
	u, ok := testCatalog().Unit(id)
	if !ok {
		t.Fatalf("unit %d missing from fixtures", id)
	}
	return &u
}

func ingredientByID(t *testing.T, id int64) *Ingredient {
	t.Helper()
	ing, ok := testCatalog().Ingredient(id)
	if !ok {
		t.Fatalf("ingredient %d missing from fixtures", id)
	}
	return &ing
}

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func intPtr(v int) *int {
	return &v
}
