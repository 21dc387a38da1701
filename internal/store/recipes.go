package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Simplici0/padaria/internal/costing"
)

// RecipeSummary is a recipe list entry.
type RecipeSummary struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	YieldGrams float64   `json:"yield_grams,omitempty"`
	LineCount  int       `json:"line_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListRecipes returns recipes whose name or notes contain query, most
// recently updated first. An empty query lists everything.
func (s *Store) ListRecipes(ctx context.Context, query string) ([]RecipeSummary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			r.id,
			r.name,
			r.yield_grams,
			(SELECT COUNT(*) FROM recipe_ingredients ri WHERE ri.recipe_id = r.id),
			r.updated_at
		FROM recipes r
		WHERE (? = '' OR r.name LIKE ? OR r.notes LIKE ?)
		ORDER BY datetime(r.updated_at) DESC, r.id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]RecipeSummary, 0)
	for rows.Next() {
		var item RecipeSummary
		if err := rows.Scan(&item.ID, &item.Name, &item.YieldGrams, &item.LineCount, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	return recipes, nil
}

// GetRecipe returns the recipe and its lines in order, or ErrNotFound.
func (s *Store) GetRecipe(ctx context.Context, id int64) (costing.Recipe, error) {
	var (
		recipe costing.Recipe
		base   sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, notes, yield_grams, base_ingredient_index
		FROM recipes
		WHERE id = ?
	`, id).Scan(&recipe.ID, &recipe.Name, &recipe.Notes, &recipe.YieldGrams, &base)
	if errors.Is(err, sql.ErrNoRows) {
		return costing.Recipe{}, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return costing.Recipe{}, fmt.Errorf("query recipe %d: %w", id, err)
	}
	if base.Valid {
		index := int(base.Int64)
		recipe.BaseIndex = &index
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ingredient_id, unit_id, quantity, percentage
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return costing.Recipe{}, fmt.Errorf("query recipe %d lines: %w", id, err)
	}
	defer rows.Close()

	recipe.Lines = make([]costing.Line, 0)
	for rows.Next() {
		var line costing.Line
		if err := rows.Scan(&line.IngredientID, &line.UnitID, &line.Quantity, &line.Percentage); err != nil {
			return costing.Recipe{}, fmt.Errorf("scan recipe line: %w", err)
		}
		recipe.Lines = append(recipe.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return costing.Recipe{}, fmt.Errorf("iterate recipe lines: %w", err)
	}

	return recipe, nil
}

// CreateRecipe inserts the recipe with its lines and returns it with its
// assigned ID.
func (s *Store) CreateRecipe(ctx context.Context, recipe costing.Recipe) (costing.Recipe, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (name, notes, yield_grams, base_ingredient_index)
			VALUES (?, ?, ?, ?)
		`, strings.TrimSpace(recipe.Name), recipe.Notes, recipe.YieldGrams, baseIndexValue(recipe.BaseIndex))
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		recipe.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read recipe id: %w", err)
		}
		return insertLines(ctx, tx, recipe.ID, recipe.Lines)
	})
	if err != nil {
		return costing.Recipe{}, err
	}
	return recipe, nil
}

// UpdateRecipe overwrites the recipe identified by recipe.ID and replaces
// all of its lines in one transaction.
func (s *Store) UpdateRecipe(ctx context.Context, recipe costing.Recipe) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE recipes
			SET name = ?,
				notes = ?,
				yield_grams = ?,
				base_ingredient_index = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, strings.TrimSpace(recipe.Name), recipe.Notes, recipe.YieldGrams, baseIndexValue(recipe.BaseIndex), recipe.ID)
		if err != nil {
			return fmt.Errorf("update recipe %d: %w", recipe.ID, err)
		}
		if err := checkAffected(res, fmt.Sprintf("recipe %d", recipe.ID)); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
			return fmt.Errorf("delete recipe %d lines: %w", recipe.ID, err)
		}
		return insertLines(ctx, tx, recipe.ID, recipe.Lines)
	})
}

// DeleteRecipe removes the recipe and its lines.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return checkAffected(res, fmt.Sprintf("recipe %d", id))
}

func insertLines(ctx context.Context, tx *sql.Tx, recipeID int64, lines []costing.Line) error {
	for i, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, unit_id, quantity, percentage)
			VALUES (?, ?, ?, ?, ?, ?)
		`, recipeID, i, line.IngredientID, line.UnitID, line.Quantity, line.Percentage); err != nil {
			return fmt.Errorf("insert recipe %d line %d: %w", recipeID, i, err)
		}
	}
	return nil
}

func baseIndexValue(index *int) sql.NullInt64 {
	if index == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*index), Valid: true}
}
