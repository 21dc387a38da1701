package costing

import "github.com/shopspring/decimal"

// Scale rescales the baseline cost linearly to desiredGrams of output. Fixed
// costs such as packaging must not be part of baseline.TotalCost. Any
// non-positive weight yields 0.
func Scale(baseline CostSnapshot, desiredGrams float64) float64 {
	if !(baseline.TotalWeightGrams > 0) || !(desiredGrams > 0) {
		return 0
	}
	if !isFinite(baseline.TotalWeightGrams) || !isFinite(desiredGrams) || !isFinite(baseline.TotalCost) {
		return 0
	}

	ratio := decimal.NewFromFloat(desiredGrams).Div(decimal.NewFromFloat(baseline.TotalWeightGrams))
	return round2(decimal.NewFromFloat(baseline.TotalCost).Mul(ratio).InexactFloat64())
}

// ScaleToWeight uses the default Engine.
func ScaleToWeight(r Recipe, cat Catalog, targetGrams float64) Recipe {
	return Engine{}.ScaleToWeight(r, cat, targetGrams)
}

// ScaleToWeight returns a copy of r whose quantities are multiplied so the
// normalized total weight becomes targetGrams. Percentages do not change.
// A non-positive target or a weightless recipe returns an unchanged copy.
func (e Engine) ScaleToWeight(r Recipe, cat Catalog, targetGrams float64) Recipe {
	out := r
	out.Lines = cloneLines(r.Lines)
	if !(targetGrams > 0) || !isFinite(targetGrams) {
		return out
	}

	current := e.Aggregate(r, cat).TotalWeightGrams
	if !(current > 0) {
		return out
	}

	factor := targetGrams / current
	for i := range out.Lines {
		if out.Lines[i].Quantity > 0 {
			out.Lines[i].Quantity *= factor
		}
	}
	if out.YieldGrams > 0 {
		out.YieldGrams *= factor
	}
	return out
}
