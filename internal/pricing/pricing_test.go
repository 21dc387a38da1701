package pricing

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestCalculate_EndToEnd(t *testing.T) {
	result := Calculate(Input{
		RecipeCost:           8.75,
		PackagingCost:        0.50,
		ExtraCosts:           1.00,
		DesiredProfitPercent: 50,
		FinalWeightGrams:     1000,
	})

	nearlyEqual(t, "totalCost", result.TotalCost, 10.25)
	nearlyEqual(t, "profitAmount", result.ProfitAmount, 5.125)
	nearlyEqual(t, "suggestedPrice", result.SuggestedPrice, 15.375)
	nearlyEqual(t, "markup", result.Markup, 50)
	nearlyEqual(t, "costPerKilogram", result.CostPerKilogram, 10.25)
	nearlyEqual(t, "pricePerKilogram", result.PricePerKilogram, 15.375)
}

func TestCalculate_PerKilogramFollowsWeight(t *testing.T) {
	result := Calculate(Input{RecipeCost: 6, DesiredProfitPercent: 100, FinalWeightGrams: 500})

	nearlyEqual(t, "costPerKilogram", result.CostPerKilogram, 12)
	nearlyEqual(t, "suggestedPrice", result.SuggestedPrice, 12)
	nearlyEqual(t, "pricePerKilogram", result.PricePerKilogram, 24)
	nearlyEqual(t, "markup", result.Markup, 100)
}

func TestCalculate_ZeroProfit(t *testing.T) {
	result := Calculate(Input{RecipeCost: 4, PackagingCost: 1, FinalWeightGrams: 250})

	nearlyEqual(t, "profitAmount", result.ProfitAmount, 0)
	nearlyEqual(t, "suggestedPrice", result.SuggestedPrice, 5)
	nearlyEqual(t, "markup", result.Markup, 0)
}

func TestCalculate_ZeroCostHasNoMarkup(t *testing.T) {
	result := Calculate(Input{DesiredProfitPercent: 30, FinalWeightGrams: 1000})

	if result != (Result{}) {
		t.Fatalf("expected zero result for zero costs, got %+v", result)
	}
}

func TestCalculate_GuardsResetEverything(t *testing.T) {
	cases := []struct {
		name string
		in   Input
	}{
		{"zero weight", Input{RecipeCost: 10, PackagingCost: 1, DesiredProfitPercent: 50}},
		{"negative weight", Input{RecipeCost: 10, DesiredProfitPercent: 50, FinalWeightGrams: -100}},
		{"negative recipe cost", Input{RecipeCost: -1, PackagingCost: 3, FinalWeightGrams: 1000}},
		{"NaN profit", Input{RecipeCost: 10, DesiredProfitPercent: math.NaN(), FinalWeightGrams: 1000}},
		{"infinite packaging", Input{RecipeCost: 10, PackagingCost: math.Inf(1), FinalWeightGrams: 1000}},
	}

	for _, tt := range cases {
		if got := Calculate(tt.in); got != (Result{}) {
			t.Fatalf("%s: Calculate = %+v, want zero result", tt.name, got)
		}
	}
}

func TestCalculate_IsIdempotent(t *testing.T) {
	in := Input{RecipeCost: 3.33, PackagingCost: 0.7, ExtraCosts: 0.15, DesiredProfitPercent: 35, FinalWeightGrams: 800}

	first := Calculate(in)
	for i := 0; i < 5; i++ {
		if got := Calculate(in); got != first {
			t.Fatalf("iteration %d: %+v != %+v", i, got, first)
		}
	}
}

func TestResult_Rounded(t *testing.T) {
	result := Calculate(Input{
		RecipeCost:           8.75,
		PackagingCost:        0.50,
		ExtraCosts:           1.00,
		DesiredProfitPercent: 50,
		FinalWeightGrams:     1000,
	}).Rounded()

	nearlyEqual(t, "profitAmount", result.ProfitAmount, 5.13)
	nearlyEqual(t, "suggestedPrice", result.SuggestedPrice, 15.38)
	nearlyEqual(t, "totalCost", result.TotalCost, 10.25)
}
