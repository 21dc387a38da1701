package costing

// Selection identifies the line acting as 100% of a baker's formula.
type Selection struct {
	Index int
	Line  Line
}

// SelectBase picks the base line using the default Engine.
func SelectBase(lines []Line, cat Catalog, manual *int) (Selection, bool) {
	return Engine{}.SelectBase(lines, cat, manual)
}

// SelectBase picks the base line: the manual index when it is in range,
// otherwise the earliest flour ingredient, otherwise the first line with a
// positive quantity. It reports false when no line qualifies.
func (e Engine) SelectBase(lines []Line, cat Catalog, manual *int) (Selection, bool) {
	if manual != nil && *manual >= 0 && *manual < len(lines) {
		return Selection{Index: *manual, Line: lines[*manual]}, true
	}

	cl := e.classifier()
	for i, line := range lines {
		ing, ok := cat.Ingredient(line.IngredientID)
		if !ok {
			continue
		}
		if cl.IsFlour(ing) {
			return Selection{Index: i, Line: line}, true
		}
	}

	for i, line := range lines {
		if line.Quantity > 0 {
			return Selection{Index: i, Line: line}, true
		}
	}

	return Selection{}, false
}
