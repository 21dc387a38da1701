package seed

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/padaria/internal/costing"
)

type unitSeed struct {
	Name   string
	Symbol string
	Type   costing.UnitKind
}

type ingredientSeed struct {
	Name             string
	PricePerKg       float64
	ConversionFactor float64
	BaseSymbol       string
	Category         costing.Category
}

var defaultUnits = []unitSeed{
	{Name: "Grama", Symbol: "g", Type: costing.UnitKindMass},
	{Name: "Quilograma", Symbol: "kg", Type: costing.UnitKindMass},
	{Name: "Mililitro", Symbol: "ml", Type: costing.UnitKindVolume},
	{Name: "Litro", Symbol: "l", Type: costing.UnitKindVolume},
	{Name: "Unidade", Symbol: "un", Type: costing.UnitKindCount},
}

// Prices start at zero; the bakery fills them in.
var defaultIngredients = []ingredientSeed{
	{Name: "Farinha de Trigo", BaseSymbol: "kg", Category: costing.CategoryFlour},
	{Name: "Açúcar", BaseSymbol: "kg"},
	{Name: "Sal", BaseSymbol: "g"},
	{Name: "Ovos", BaseSymbol: "un", ConversionFactor: 50, Category: costing.CategoryEgg},
	{Name: "Água", BaseSymbol: "ml"},
	{Name: "Fermento Biológico", BaseSymbol: "g"},
	{Name: "Manteiga", BaseSymbol: "g"},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for _, u := range defaultUnits {
		if err := ensureUnit(tx, u, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, ing := range defaultIngredients {
		if err := ensureIngredient(tx, ing, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureUnit(tx *sql.Tx, u unitSeed, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM measurement_units WHERE symbol = ? LIMIT 1)`, u.Symbol).Scan(&exists); err != nil {
		return fmt.Errorf("check unit %s existence: %w", u.Symbol, err)
	}
	if exists {
		// Units stored without a kind get the seeded one; edited kinds stay.
		res, err := tx.Exec(`UPDATE measurement_units SET type = ? WHERE symbol = ? AND type = ''`, string(u.Type), u.Symbol)
		if err != nil {
			return fmt.Errorf("backfill unit %s type: %w", u.Symbol, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("backfill unit %s type: %w", u.Symbol, err)
		}
		stats.Updates += int(n)
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO measurement_units (name, symbol, type)
		VALUES (?, ?, ?)
	`, u.Name, u.Symbol, string(u.Type)); err != nil {
		return fmt.Errorf("insert unit %s: %w", u.Symbol, err)
	}
	stats.Inserts++
	return nil
}

func ensureIngredient(tx *sql.Tx, ing ingredientSeed, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingredients WHERE name = ? LIMIT 1)`, ing.Name).Scan(&exists); err != nil {
		return fmt.Errorf("check ingredient %s existence: %w", ing.Name, err)
	}
	if exists {
		return nil
	}

	var baseUnitID sql.NullInt64
	err := tx.QueryRow(`SELECT id FROM measurement_units WHERE symbol = ?`, ing.BaseSymbol).Scan(&baseUnitID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("resolve base unit %s: %w", ing.BaseSymbol, err)
	}

	if _, err := tx.Exec(`
		INSERT INTO ingredients (name, price_per_kg, conversion_factor, base_unit_id, category)
		VALUES (?, ?, ?, ?, ?)
	`, ing.Name, ing.PricePerKg, ing.ConversionFactor, baseUnitID, string(ing.Category)); err != nil {
		return fmt.Errorf("insert ingredient %s: %w", ing.Name, err)
	}
	stats.Inserts++
	return nil
}
