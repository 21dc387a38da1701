package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Input represents the cost and margin parameters of a sale price calculation.
type Input struct {
	RecipeCost           float64 `json:"recipe_cost"`
	PackagingCost        float64 `json:"packaging_cost"`
	ExtraCosts           float64 `json:"extra_costs"`
	DesiredProfitPercent float64 `json:"desired_profit_percent"`
	FinalWeightGrams     float64 `json:"final_weight_grams"`
}

// Result contains every value derived from an Input.
type Result struct {
	TotalCost        float64 `json:"total_cost"`
	CostPerKilogram  float64 `json:"cost_per_kilogram"`
	SuggestedPrice   float64 `json:"suggested_price"`
	ProfitAmount     float64 `json:"profit_amount"`
	Markup           float64 `json:"markup"`
	PricePerKilogram float64 `json:"price_per_kilogram"`
}

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// Calculate computes the suggested price from costs and the desired profit.
// It returns the zero Result unless FinalWeightGrams is positive, RecipeCost
// is non-negative and every input is finite.
func Calculate(in Input) Result {
	if !(in.FinalWeightGrams > 0) || !(in.RecipeCost >= 0) || !in.finite() {
		return Result{}
	}

	recipeCost := decimal.NewFromFloat(in.RecipeCost)
	packagingCost := decimal.NewFromFloat(in.PackagingCost)
	extraCosts := decimal.NewFromFloat(in.ExtraCosts)
	profitPercent := decimal.NewFromFloat(in.DesiredProfitPercent)
	weight := decimal.NewFromFloat(in.FinalWeightGrams)

	totalCost := recipeCost.Add(packagingCost).Add(extraCosts)
	profitAmount := totalCost.Mul(profitPercent.Div(hundred))
	suggestedPrice := totalCost.Add(profitAmount)

	markup := decimal.Zero
	if totalCost.IsPositive() {
		markup = suggestedPrice.Sub(totalCost).Div(totalCost).Mul(hundred)
	}

	return Result{
		TotalCost:        totalCost.InexactFloat64(),
		CostPerKilogram:  totalCost.Div(weight).Mul(thousand).InexactFloat64(),
		SuggestedPrice:   suggestedPrice.InexactFloat64(),
		ProfitAmount:     profitAmount.InexactFloat64(),
		Markup:           markup.InexactFloat64(),
		PricePerKilogram: suggestedPrice.Div(weight).Mul(thousand).InexactFloat64(),
	}
}

// Rounded returns a copy with every value rounded to cents for display.
func (r Result) Rounded() Result {
	return Result{
		TotalCost:        cents(r.TotalCost),
		CostPerKilogram:  cents(r.CostPerKilogram),
		SuggestedPrice:   cents(r.SuggestedPrice),
		ProfitAmount:     cents(r.ProfitAmount),
		Markup:           cents(r.Markup),
		PricePerKilogram: cents(r.PricePerKilogram),
	}
}

func (in Input) finite() bool {
	for _, v := range []float64{in.RecipeCost, in.PackagingCost, in.ExtraCosts, in.DesiredProfitPercent, in.FinalWeightGrams} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func cents(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
