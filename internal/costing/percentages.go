package costing

import "math"

// Recalculate derives baker's percentages using the default Engine.
func Recalculate(lines []Line, cat Catalog, manual *int) []Line {
	return Engine{}.Recalculate(lines, cat, manual)
}

// RecalculateRecipe returns r with every line percentage recomputed.
func RecalculateRecipe(r Recipe, cat Catalog) Recipe {
	return Engine{}.RecalculateRecipe(r, cat)
}

// RecalculateRecipe returns r with every line percentage recomputed.
func (e Engine) RecalculateRecipe(r Recipe, cat Catalog) Recipe {
	r.Lines = e.Recalculate(r.Lines, cat, r.BaseIndex)
	return r
}

// Recalculate returns a copy of lines where each percentage expresses the
// line's grams relative to the base line's grams. The base line is exactly
// 100 and lines without ingredient, unit or a positive quantity are 0.
//
// manual indexes lines and only wins when it points at a valid line. When no
// base can be found, or the base weighs nothing, the copy is returned with
// percentages untouched.
func (e Engine) Recalculate(lines []Line, cat Catalog, manual *int) []Line {
	out := cloneLines(lines)

	valid := make([]int, 0, len(lines))
	for i, line := range lines {
		if isValidLine(line) {
			valid = append(valid, i)
		}
	}
	if len(valid) == 0 {
		return out
	}

	subset := make([]Line, len(valid))
	var subsetManual *int
	for pos, idx := range valid {
		subset[pos] = lines[idx]
		if manual != nil && *manual == idx {
			p := pos
			subsetManual = &p
		}
	}

	sel, ok := e.SelectBase(subset, cat, subsetManual)
	if !ok {
		return out
	}
	baseIdx := valid[sel.Index]

	baseGrams := e.lineGrams(sel.Line, cat)
	if !(baseGrams > 0) || math.IsInf(baseGrams, 0) {
		return out
	}

	for i, line := range lines {
		switch {
		case !isValidLine(line):
			out[i].Percentage = 0
		case i == baseIdx:
			out[i].Percentage = 100
		default:
			out[i].Percentage = round2(e.lineGrams(line, cat) / baseGrams * 100)
		}
	}
	return out
}

func (e Engine) lineGrams(line Line, cat Catalog) float64 {
	ing, unit := cat.resolve(line)
	return e.ToGrams(line.Quantity, ing, unit)
}

func isValidLine(line Line) bool {
	return line.IngredientID != 0 && line.UnitID != 0 && line.Quantity > 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// round2 is round(v × 100) / 100 with ties rounded up on the scaled binary
// value, so 1.005 becomes 1.00. Non-finite input is 0.
func round2(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return math.Floor(v*100+0.5) / 100
}

func roundGrams(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return math.Floor(v + 0.5)
}
