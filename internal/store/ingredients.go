package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Simplici0/padaria/internal/costing"
)

const ingredientColumns = `id, name, price_per_kg, conversion_factor, base_unit_id, category`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row rowScanner) (costing.Ingredient, error) {
	var (
		ing      costing.Ingredient
		baseUnit sql.NullInt64
		category string
	)
	if err := row.Scan(&ing.ID, &ing.Name, &ing.PricePerKg, &ing.ConversionFactor, &baseUnit, &category); err != nil {
		return costing.Ingredient{}, err
	}
	ing.BaseUnitID = baseUnit.Int64
	ing.Category = costing.Category(category)
	return ing, nil
}

// ListIngredients returns the ingredient catalog ordered by name.
func (s *Store) ListIngredients(ctx context.Context) ([]costing.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]costing.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredients: %w", err)
	}

	return ingredients, nil
}

// GetIngredient returns the ingredient with the given ID or ErrNotFound.
func (s *Store) GetIngredient(ctx context.Context, id int64) (costing.Ingredient, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE id = ?`, id)
	ing, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return costing.Ingredient{}, fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return costing.Ingredient{}, fmt.Errorf("query ingredient %d: %w", id, err)
	}
	return ing, nil
}

// CreateIngredient inserts ing and returns it with its assigned ID.
func (s *Store) CreateIngredient(ctx context.Context, ing costing.Ingredient) (costing.Ingredient, error) {
	ing.Name = strings.TrimSpace(ing.Name)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO ingredients (name, price_per_kg, conversion_factor, base_unit_id, category)
		VALUES (?, ?, ?, ?, ?)
	`, ing.Name, ing.PricePerKg, ing.ConversionFactor, nullableID(ing.BaseUnitID), string(ing.Category))
	if err != nil {
		return costing.Ingredient{}, fmt.Errorf("insert ingredient: %w", err)
	}

	ing.ID, err = res.LastInsertId()
	if err != nil {
		return costing.Ingredient{}, fmt.Errorf("read ingredient id: %w", err)
	}
	return ing, nil
}

// UpdateIngredient overwrites the ingredient identified by ing.ID.
func (s *Store) UpdateIngredient(ctx context.Context, ing costing.Ingredient) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE ingredients
		SET name = ?,
			price_per_kg = ?,
			conversion_factor = ?,
			base_unit_id = ?,
			category = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, strings.TrimSpace(ing.Name), ing.PricePerKg, ing.ConversionFactor, nullableID(ing.BaseUnitID), string(ing.Category), ing.ID)
	if err != nil {
		return fmt.Errorf("update ingredient %d: %w", ing.ID, err)
	}
	return checkAffected(res, fmt.Sprintf("ingredient %d", ing.ID))
}
