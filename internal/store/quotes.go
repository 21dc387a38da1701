package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/padaria/internal/pricing"
)

// Quote is a saved pricing result. Input and Result are snapshots and are
// never recalculated when the catalog changes.
type Quote struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Notes     string         `json:"notes,omitempty"`
	RecipeID  *int64         `json:"recipe_id,omitempty"`
	Currency  string         `json:"currency"`
	Input     pricing.Input  `json:"input"`
	Result    pricing.Result `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}

// QuoteListItem is a quote list entry.
type QuoteListItem struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Title          string    `json:"title"`
	Currency       string    `json:"currency"`
	SuggestedPrice float64   `json:"suggested_price"`
}

// SaveQuote stores q under a new random ID. A zero CreatedAt is set to now.
func (s *Store) SaveQuote(ctx context.Context, q Quote) (Quote, error) {
	q.ID = uuid.NewString()
	q.Title = strings.TrimSpace(q.Title)
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	q.CreatedAt = q.CreatedAt.UTC().Truncate(time.Second)

	inputJSON, err := json.Marshal(q.Input)
	if err != nil {
		return Quote{}, fmt.Errorf("encode quote input: %w", err)
	}
	resultJSON, err := json.Marshal(q.Result)
	if err != nil {
		return Quote{}, fmt.Errorf("encode quote result: %w", err)
	}

	var recipeID sql.NullInt64
	if q.RecipeID != nil {
		recipeID = nullableID(*q.RecipeID)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, title, notes, recipe_id, currency, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Title, q.Notes, recipeID, q.Currency, string(inputJSON), string(resultJSON), formatTimestamp(q.CreatedAt)); err != nil {
		return Quote{}, fmt.Errorf("insert quote: %w", err)
	}
	return q, nil
}

// ListQuotes returns quotes whose title or notes contain query, newest first.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]QuoteListItem, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id,
			created_at,
			title,
			currency,
			result_json
		FROM quotes
		WHERE (? = '' OR title LIKE ? OR notes LIKE ?)
		ORDER BY datetime(created_at) DESC, rowid DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteListItem, 0)
	for rows.Next() {
		var item QuoteListItem
		var resultJSON string
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Title, &item.Currency, &resultJSON); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.SuggestedPrice = suggestedPriceFromJSON(resultJSON)
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// GetQuote returns the stored snapshot for id or ErrNotFound.
func (s *Store) GetQuote(ctx context.Context, id string) (Quote, error) {
	var (
		q                     Quote
		recipeID              sql.NullInt64
		inputJSON, resultJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, notes, recipe_id, currency, input_json, result_json, created_at
		FROM quotes
		WHERE id = ?
	`, id).Scan(&q.ID, &q.Title, &q.Notes, &recipeID, &q.Currency, &inputJSON, &resultJSON, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Quote{}, fmt.Errorf("quote %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Quote{}, fmt.Errorf("query quote %s: %w", id, err)
	}

	if recipeID.Valid {
		q.RecipeID = &recipeID.Int64
	}
	if err := json.Unmarshal([]byte(inputJSON), &q.Input); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s input: %w", id, err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &q.Result); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s result: %w", id, err)
	}
	return q, nil
}

func suggestedPriceFromJSON(resultJSON string) float64 {
	var values map[string]float64
	if err := json.Unmarshal([]byte(resultJSON), &values); err != nil {
		return 0
	}
	return values["suggested_price"]
}
