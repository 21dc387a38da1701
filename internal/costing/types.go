// Package costing normalizes recipe quantities to grams and derives baker's
// percentages, recipe cost and proportionally scaled cost.
//
// Every function in this package is pure: callers pass a resolved Catalog and
// receive new values. Incomplete input never produces an error; it degrades
// to zero so a recalculation can run on every edit of a draft.
package costing

// UnitKind hints how a MeasurementUnit expresses a quantity.
type UnitKind string

const (
	UnitKindMass   UnitKind = "mass"
	UnitKindVolume UnitKind = "volume"
	UnitKindCount  UnitKind = "count"
)

// Category tags an ingredient for classification purposes.
type Category string

const (
	CategoryFlour Category = "flour"
	CategoryEgg   Category = "egg"
)

// MeasurementUnit identifies how a recipe quantity is expressed.
type MeasurementUnit struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Symbol string   `json:"symbol"`
	Type   UnitKind `json:"type"`
}

// Ingredient is a catalog entry priced per kilogram-equivalent.
type Ingredient struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	PricePerKg float64 `json:"price_per_kg"`
	// ConversionFactor is the number of grams one count unit represents
	// (one egg, one can). Zero means unset.
	ConversionFactor float64  `json:"conversion_factor,omitempty"`
	BaseUnitID       int64    `json:"base_unit_id,omitempty"`
	Category         Category `json:"category,omitempty"`
}

// Line is one ingredient entry of a recipe. Percentage is always derived.
type Line struct {
	IngredientID int64   `json:"ingredient_id"`
	UnitID       int64   `json:"unit_id"`
	Quantity     float64 `json:"quantity"`
	Percentage   float64 `json:"percentage"`
}

// Recipe groups ingredient lines. BaseIndex, when set and pointing at a
// valid line, overrides base ingredient detection.
type Recipe struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Notes      string  `json:"notes,omitempty"`
	YieldGrams float64 `json:"yield_grams,omitempty"`
	BaseIndex  *int    `json:"base_ingredient_index,omitempty"`
	Lines      []Line  `json:"ingredients"`
}

// WithoutLine returns a copy of r without the line at index i. The manual
// base is cleared when it pointed at the removed line and shifted when it
// pointed after it. Out of range indexes return an unchanged copy.
func (r Recipe) WithoutLine(i int) Recipe {
	out := r
	out.Lines = cloneLines(r.Lines)
	if r.BaseIndex != nil {
		base := *r.BaseIndex
		out.BaseIndex = &base
	}
	if i < 0 || i >= len(r.Lines) {
		return out
	}

	out.Lines = append(out.Lines[:i], out.Lines[i+1:]...)

	if out.BaseIndex != nil {
		switch base := *out.BaseIndex; {
		case base == i:
			out.BaseIndex = nil
		case base > i:
			shifted := base - 1
			out.BaseIndex = &shifted
		}
	}
	return out
}

// LineCost is the contribution of a single line to a CostSnapshot.
type LineCost struct {
	Index int     `json:"index"`
	Grams float64 `json:"grams"`
	Cost  float64 `json:"cost"`
}

// CostSnapshot is the derived cost and weight of a recipe.
type CostSnapshot struct {
	TotalCost        float64    `json:"total_cost"`
	TotalWeightGrams float64    `json:"total_weight_grams"`
	Lines            []LineCost `json:"lines,omitempty"`
}

// Catalog is a read-only index over ingredients and units.
type Catalog struct {
	ingredients map[int64]Ingredient
	units       map[int64]MeasurementUnit
}

// NewCatalog indexes the given ingredients and units by ID. Later entries
// with a duplicate ID replace earlier ones.
func NewCatalog(ingredients []Ingredient, units []MeasurementUnit) Catalog {
	c := Catalog{
		ingredients: make(map[int64]Ingredient, len(ingredients)),
		units:       make(map[int64]MeasurementUnit, len(units)),
	}
	for _, ing := range ingredients {
		c.ingredients[ing.ID] = ing
	}
	for _, u := range units {
		c.units[u.ID] = u
	}
	return c
}

// Ingredient looks up an ingredient by ID.
func (c Catalog) Ingredient(id int64) (Ingredient, bool) {
	ing, ok := c.ingredients[id]
	return ing, ok
}

// Unit looks up a measurement unit by ID.
func (c Catalog) Unit(id int64) (MeasurementUnit, bool) {
	u, ok := c.units[id]
	return u, ok
}

func (c Catalog) resolve(line Line) (*Ingredient, *MeasurementUnit) {
	var (
		ing  *Ingredient
		unit *MeasurementUnit
	)
	if found, ok := c.Ingredient(line.IngredientID); ok {
		ing = &found
	}
	if found, ok := c.Unit(line.UnitID); ok {
		unit = &found
	}
	return ing, unit
}

func cloneLines(lines []Line) []Line {
	if lines == nil {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
