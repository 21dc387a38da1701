package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Simplici0/padaria/internal/costing"
)

// ListUnits returns every measurement unit ordered by ID.
func (s *Store) ListUnits(ctx context.Context) ([]costing.MeasurementUnit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, symbol, type
		FROM measurement_units
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query measurement units: %w", err)
	}
	defer rows.Close()

	units := make([]costing.MeasurementUnit, 0)
	for rows.Next() {
		var (
			u    costing.MeasurementUnit
			kind string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Symbol, &kind); err != nil {
			return nil, fmt.Errorf("scan measurement unit: %w", err)
		}
		u.Type = costing.UnitKind(kind)
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate measurement units: %w", err)
	}

	return units, nil
}

// CreateUnit inserts u and returns it with its assigned ID.
func (s *Store) CreateUnit(ctx context.Context, u costing.MeasurementUnit) (costing.MeasurementUnit, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Symbol = strings.TrimSpace(u.Symbol)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO measurement_units (name, symbol, type)
		VALUES (?, ?, ?)
	`, u.Name, u.Symbol, string(u.Type))
	if err != nil {
		return costing.MeasurementUnit{}, fmt.Errorf("insert measurement unit: %w", err)
	}

	u.ID, err = res.LastInsertId()
	if err != nil {
		return costing.MeasurementUnit{}, fmt.Errorf("read measurement unit id: %w", err)
	}
	return u, nil
}
