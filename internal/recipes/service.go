// Package recipes ties the costing engine to persisted recipes and quotes.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/Simplici0/padaria/internal/costing"
	"github.com/Simplici0/padaria/internal/logging"
	"github.com/Simplici0/padaria/internal/pricing"
	"github.com/Simplici0/padaria/internal/store"
)

var (
	// ErrLineOutOfRange is returned when a line index does not exist.
	ErrLineOutOfRange = errors.New("line index out of range")
	// ErrInvalidTarget is returned when a rescale target is not a positive weight.
	ErrInvalidTarget = errors.New("target weight must be positive")
)

// Repository is the persistence the service needs.
type Repository interface {
	Catalog(ctx context.Context) (costing.Catalog, error)
	GetRecipe(ctx context.Context, id int64) (costing.Recipe, error)
	CreateRecipe(ctx context.Context, recipe costing.Recipe) (costing.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe costing.Recipe) error
	SaveQuote(ctx context.Context, q store.Quote) (store.Quote, error)
}

// Service recalculates recipes before they are stored and prices them.
type Service struct {
	repo     Repository
	engine   costing.Engine
	currency string
}

// NewService returns a Service using the default classifier.
func NewService(repo Repository, currency string) *Service {
	return &Service{repo: repo, currency: currency}
}

// CostReport is the cost of a recipe, optionally rescaled to TargetGrams.
type CostReport struct {
	Recipe      costing.Recipe       `json:"recipe"`
	Snapshot    costing.CostSnapshot `json:"snapshot"`
	TargetGrams float64              `json:"target_grams"`
	ScaledCost  float64              `json:"scaled_cost"`
}

// PriceRequest holds the selling parameters for a stored recipe. A zero
// TargetGrams prices the full batch.
type PriceRequest struct {
	TargetGrams          float64 `json:"target_grams"`
	PackagingCost        float64 `json:"packaging_cost"`
	ExtraCosts           float64 `json:"extra_costs"`
	DesiredProfitPercent float64 `json:"desired_profit_percent"`
}

// PriceReport is the outcome of pricing a stored recipe.
type PriceReport struct {
	RecipeID int64                `json:"recipe_id"`
	Snapshot costing.CostSnapshot `json:"snapshot"`
	Input    pricing.Input        `json:"input"`
	Result   pricing.Result       `json:"result"`
}

// Draft recalculates an unsaved recipe against the current catalog.
func (s *Service) Draft(ctx context.Context, recipe costing.Recipe) (costing.Recipe, costing.CostSnapshot, error) {
	cat, err := s.repo.Catalog(ctx)
	if err != nil {
		return costing.Recipe{}, costing.CostSnapshot{}, fmt.Errorf("load catalog: %w", err)
	}
	recipe = s.engine.RecalculateRecipe(recipe, cat)
	return recipe, s.engine.Aggregate(recipe, cat), nil
}

// Save recalculates percentages and persists the recipe, creating it when
// it has no ID.
func (s *Service) Save(ctx context.Context, recipe costing.Recipe) (costing.Recipe, error) {
	cat, err := s.repo.Catalog(ctx)
	if err != nil {
		return costing.Recipe{}, fmt.Errorf("load catalog: %w", err)
	}
	recipe = s.engine.RecalculateRecipe(recipe, cat)

	if recipe.ID == 0 {
		created, err := s.repo.CreateRecipe(ctx, recipe)
		if err != nil {
			return costing.Recipe{}, err
		}
		logging.Debug("recipe created", zap.Int64("recipe_id", created.ID), zap.Int("lines", len(created.Lines)))
		return created, nil
	}

	if err := s.repo.UpdateRecipe(ctx, recipe); err != nil {
		return costing.Recipe{}, err
	}
	logging.Debug("recipe updated", zap.Int64("recipe_id", recipe.ID), zap.Int("lines", len(recipe.Lines)))
	return recipe, nil
}

// RemoveLine deletes one line and stores the recalculated recipe.
func (s *Service) RemoveLine(ctx context.Context, id int64, index int) (costing.Recipe, error) {
	recipe, err := s.repo.GetRecipe(ctx, id)
	if err != nil {
		return costing.Recipe{}, err
	}
	if index < 0 || index >= len(recipe.Lines) {
		return costing.Recipe{}, fmt.Errorf("recipe %d line %d: %w", id, index, ErrLineOutOfRange)
	}
	return s.Save(ctx, recipe.WithoutLine(index))
}

// Rescale multiplies every quantity of the stored recipe so its normalized
// weight becomes targetGrams, and stores the result. Percentages are kept.
func (s *Service) Rescale(ctx context.Context, id int64, targetGrams float64) (costing.Recipe, error) {
	if !(targetGrams > 0) || math.IsInf(targetGrams, 0) {
		return costing.Recipe{}, fmt.Errorf("rescale recipe %d to %v g: %w", id, targetGrams, ErrInvalidTarget)
	}
	recipe, cat, err := s.load(ctx, id)
	if err != nil {
		return costing.Recipe{}, err
	}

	scaled := s.engine.ScaleToWeight(recipe, cat, targetGrams)
	saved, err := s.Save(ctx, scaled)
	if err != nil {
		return costing.Recipe{}, err
	}
	logging.Info("recipe rescaled", zap.Int64("recipe_id", id), zap.Float64("target_grams", targetGrams))
	return saved, nil
}

// Cost returns the stored recipe's cost snapshot. A positive targetGrams
// also rescales the cost to that weight.
func (s *Service) Cost(ctx context.Context, id int64, targetGrams float64) (CostReport, error) {
	recipe, cat, err := s.load(ctx, id)
	if err != nil {
		return CostReport{}, err
	}

	snapshot := s.engine.Aggregate(recipe, cat)
	if !(targetGrams > 0) {
		targetGrams = snapshot.TotalWeightGrams
	}

	return CostReport{
		Recipe:      recipe,
		Snapshot:    snapshot,
		TargetGrams: targetGrams,
		ScaledCost:  costing.Scale(snapshot, targetGrams),
	}, nil
}

// Price runs the stored recipe through aggregation, scaling and pricing.
func (s *Service) Price(ctx context.Context, id int64, req PriceRequest) (PriceReport, error) {
	report, err := s.Cost(ctx, id, req.TargetGrams)
	if err != nil {
		return PriceReport{}, err
	}

	in := pricing.Input{
		RecipeCost:           report.ScaledCost,
		PackagingCost:        req.PackagingCost,
		ExtraCosts:           req.ExtraCosts,
		DesiredProfitPercent: req.DesiredProfitPercent,
		FinalWeightGrams:     report.TargetGrams,
	}
	return PriceReport{
		RecipeID: id,
		Snapshot: report.Snapshot,
		Input:    in,
		Result:   pricing.Calculate(in),
	}, nil
}

// Quote stores a pricing result under title.
func (s *Service) Quote(ctx context.Context, title, notes string, recipeID *int64, in pricing.Input, result pricing.Result) (store.Quote, error) {
	q, err := s.repo.SaveQuote(ctx, store.Quote{
		Title:    title,
		Notes:    notes,
		RecipeID: recipeID,
		Currency: s.currency,
		Input:    in,
		Result:   result,
	})
	if err != nil {
		return store.Quote{}, err
	}
	logging.Info("quote saved", zap.String("quote_id", q.ID), zap.Float64("suggested_price", q.Result.SuggestedPrice))
	return q, nil
}

func (s *Service) load(ctx context.Context, id int64) (costing.Recipe, costing.Catalog, error) {
	recipe, err := s.repo.GetRecipe(ctx, id)
	if err != nil {
		return costing.Recipe{}, costing.Catalog{}, err
	}
	cat, err := s.repo.Catalog(ctx)
	if err != nil {
		return costing.Recipe{}, costing.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return recipe, cat, nil
}
