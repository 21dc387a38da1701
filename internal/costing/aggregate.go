package costing

import "github.com/shopspring/decimal"

// Aggregate sums cost and weight using the default Engine.
func Aggregate(r Recipe, cat Catalog) CostSnapshot {
	return Engine{}.Aggregate(r, cat)
}

// Aggregate sums the cost and normalized weight of every resolvable line
// with a positive quantity. Lines whose grams or cost are not finite are
// skipped. TotalCost is rounded to cents, TotalWeightGrams to whole grams.
func (e Engine) Aggregate(r Recipe, cat Catalog) CostSnapshot {
	totalCost := decimal.Zero
	totalGrams := decimal.Zero
	var lines []LineCost

	for i, line := range r.Lines {
		if !(line.Quantity > 0) {
			continue
		}
		ing, unit := cat.resolve(line)
		if ing == nil || unit == nil {
			continue
		}

		grams := e.ToGrams(line.Quantity, ing, unit)
		cost := grams * (ing.PricePerKg / gramsPerKilo)
		if !isFinite(grams) || !isFinite(cost) {
			continue
		}

		totalCost = totalCost.Add(decimal.NewFromFloat(cost))
		totalGrams = totalGrams.Add(decimal.NewFromFloat(grams))
		lines = append(lines, LineCost{Index: i, Grams: grams, Cost: round2(cost)})
	}

	return CostSnapshot{
		TotalCost:        round2(totalCost.InexactFloat64()),
		TotalWeightGrams: roundGrams(totalGrams.InexactFloat64()),
		Lines:            lines,
	}
}
