package costing

import (
	"math"
	"reflect"
	"testing"
)

func breadDough() []Line {
	return []Line{
		{IngredientID: ingFlour, UnitID: unitKilo, Quantity: 1},
		{IngredientID: ingWater, UnitID: unitMilli, Quantity: 650},
		{IngredientID: ingSalt, UnitID: unitGram, Quantity: 20},
		{IngredientID: ingEggs, UnitID: unitCount, Quantity: 2},
	}
}

func percentages(lines []Line) []float64 {
	out := make([]float64, len(lines))
	for i, line := range lines {
		out[i] = line.Percentage
	}
	return out
}

func TestRecalculateMixedUnits(t *testing.T) {
	t.Parallel()

	got := percentages(Recalculate(breadDough(), testCatalog(), nil))
	want := []float64{100, 65, 2, 10}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("percentages = %v, want %v", got, want)
	}
}

func TestRecalculateBaseNotFirst(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{IngredientID: ingSugar, UnitID: unitGram, Quantity: 100},
		{IngredientID: ingFlour, UnitID: unitGram, Quantity: 300},
		{IngredientID: ingButter, UnitID: unitGram, Quantity: 75},
	}

	got := percentages(Recalculate(lines, testCatalog(), nil))
	want := []float64{33.33, 100, 25}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("percentages = %v, want %v", got, want)
	}
}

func TestRecalculateZeroesInvalidLines(t *testing.T) {
	t.Parallel()

	lines := append(breadDough(),
		Line{IngredientID: ingSugar, UnitID: unitGram, Quantity: 0, Percentage: 33},
		Line{IngredientID: 0, UnitID: unitGram, Quantity: 50, Percentage: 12},
		Line{IngredientID: ingSugar, UnitID: 0, Quantity: 50, Percentage: 7},
	)

	got := percentages(Recalculate(lines, testCatalog(), nil))
	want := []float64{100, 65, 2, 10, 0, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("percentages = %v, want %v", got, want)
	}
}

func TestRecalculateManualBase(t *testing.T) {
	t.Parallel()

	got := percentages(Recalculate(breadDough(), testCatalog(), intPtr(1)))
	want := []float64{153.85, 100, 3.08, 15.38}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("percentages = %v, want %v", got, want)
	}
}

func TestRecalculateManualBaseOnInvalidLineFallsBack(t *testing.T) {
	t.Parallel()

	lines := append([]Line{{IngredientID: ingSugar, UnitID: unitGram}}, breadDough()...)
	got := percentages(Recalculate(lines, testCatalog(), intPtr(0)))
	want := []float64{0, 100, 65, 2, 10}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("percentages = %v, want %v", got, want)
	}
}

func TestRecalculateWithoutValidLinesReturnsCopy(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{IngredientID: ingFlour, UnitID: unitGram, Quantity: 0, Percentage: 100},
		{IngredientID: ingSalt, UnitID: unitGram, Quantity: -2, Percentage: 4},
	}

	got := Recalculate(lines, testCatalog(), nil)
	if !reflect.DeepEqual(got, lines) {
		t.Fatalf("Recalculate = %+v, want unchanged %+v", got, lines)
	}
	got[0].Percentage = 1
	if lines[0].Percentage != 100 {
		t.Fatal("Recalculate must not share the input backing array")
	}
}

func TestRecalculateWeightlessBaseLeavesPercentages(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{IngredientID: 404, UnitID: unitGram, Quantity: 100, Percentage: 42},
		{IngredientID: ingSalt, UnitID: unitGram, Quantity: 5, Percentage: 9},
	}

	got := Recalculate(lines, testCatalog(), nil)
	if !reflect.DeepEqual(got, lines) {
		t.Fatalf("Recalculate = %+v, want unchanged %+v", got, lines)
	}
}

func TestRecalculateHasExactlyOneBase(t *testing.T) {
	t.Parallel()

	for _, manual := range []*int{nil, intPtr(0), intPtr(1), intPtr(2), intPtr(3)} {
		out := Recalculate(breadDough(), testCatalog(), manual)
		bases := 0
		for _, line := range out {
			if line.Percentage == 100 {
				bases++
			}
		}
		if bases != 1 {
			t.Fatalf("manual=%v: %d lines at 100%%, want exactly 1 (%v)", manual, bases, percentages(out))
		}
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	t.Parallel()

	input := breadDough()
	snapshot := breadDough()

	first := Recalculate(input, testCatalog(), nil)
	second := Recalculate(input, testCatalog(), nil)
	again := Recalculate(first, testCatalog(), nil)

	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(first, again) {
		t.Fatalf("recalculation drifted: %v / %v / %v", percentages(first), percentages(second), percentages(again))
	}
	if !reflect.DeepEqual(input, snapshot) {
		t.Fatal("Recalculate mutated its input")
	}
}

func TestRecalculateRecipeUsesBaseIndex(t *testing.T) {
	t.Parallel()

	recipe := Recipe{Name: "Pão", Lines: breadDough(), BaseIndex: intPtr(1)}
	got := RecalculateRecipe(recipe, testCatalog())
	if got.Lines[1].Percentage != 100 {
		t.Fatalf("base line percentage = %v, want 100", got.Lines[1].Percentage)
	}
	if recipe.Lines[1].Percentage != 0 {
		t.Fatal("RecalculateRecipe mutated the input recipe")
	}
}

func TestRound2FollowsScaledFloor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want float64
	}{
		{1.005, 1},
		{0.575, 0.57},
		{1.015, 1.01},
		{1.255, 1.25},
		{2.675, 2.68},
		{0.125, 0.13},
		{-1.005, -1},
		{33.3333, 33.33},
		{math.NaN(), 0},
		{math.Inf(-1), 0},
	}

	for _, tt := range cases {
		if got := round2(tt.in); got != tt.want {
			t.Fatalf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
