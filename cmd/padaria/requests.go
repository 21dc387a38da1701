package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Simplici0/padaria/internal/costing"
	"github.com/Simplici0/padaria/internal/pricing"
	"github.com/Simplici0/padaria/internal/recipes"
)

type unitRequest struct {
	Name   string `json:"name" validate:"required,max=64"`
	Symbol string `json:"symbol" validate:"required,max=16"`
	Type   string `json:"type" validate:"omitempty,oneof=mass volume count"`
}

func (req unitRequest) unit() costing.MeasurementUnit {
	return costing.MeasurementUnit{
		Name:   strings.TrimSpace(req.Name),
		Symbol: strings.TrimSpace(req.Symbol),
		Type:   costing.UnitKind(req.Type),
	}
}

type ingredientRequest struct {
	Name             string  `json:"name" validate:"required,max=120"`
	PricePerKg       float64 `json:"price_per_kg" validate:"gte=0"`
	ConversionFactor float64 `json:"conversion_factor" validate:"gte=0"`
	BaseUnitID       int64   `json:"base_unit_id" validate:"gte=0"`
	Category         string  `json:"category" validate:"omitempty,oneof=flour egg"`
}

func (req ingredientRequest) ingredient(id int64) costing.Ingredient {
	return costing.Ingredient{
		ID:               id,
		Name:             strings.TrimSpace(req.Name),
		PricePerKg:       req.PricePerKg,
		ConversionFactor: req.ConversionFactor,
		BaseUnitID:       req.BaseUnitID,
		Category:         costing.Category(req.Category),
	}
}

// Incomplete lines are accepted; they count as zero until filled in.
type lineRequest struct {
	IngredientID int64   `json:"ingredient_id" validate:"gte=0"`
	UnitID       int64   `json:"unit_id" validate:"gte=0"`
	Quantity     float64 `json:"quantity" validate:"gte=0"`
}

type recipeRequest struct {
	Name       string        `json:"name" validate:"required,max=120"`
	Notes      string        `json:"notes" validate:"max=2000"`
	YieldGrams float64       `json:"yield_grams" validate:"gte=0"`
	BaseIndex  *int          `json:"base_ingredient_index" validate:"omitempty,gte=0"`
	Lines      []lineRequest `json:"ingredients" validate:"dive"`
}

func (req recipeRequest) recipe(id int64) costing.Recipe {
	lines := make([]costing.Line, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = costing.Line{IngredientID: l.IngredientID, UnitID: l.UnitID, Quantity: l.Quantity}
	}
	return costing.Recipe{
		ID:         id,
		Name:       strings.TrimSpace(req.Name),
		Notes:      strings.TrimSpace(req.Notes),
		YieldGrams: req.YieldGrams,
		BaseIndex:  req.BaseIndex,
		Lines:      lines,
	}
}

// draftRequest is a recipe being edited; it needs no name.
type draftRequest struct {
	BaseIndex *int          `json:"base_ingredient_index" validate:"omitempty,gte=0"`
	Lines     []lineRequest `json:"ingredients" validate:"dive"`
}

func (req draftRequest) recipe() costing.Recipe {
	return recipeRequest{BaseIndex: req.BaseIndex, Lines: req.Lines}.recipe(0)
}

type pricingRequest struct {
	RecipeCost           float64 `json:"recipe_cost" validate:"gte=0"`
	PackagingCost        float64 `json:"packaging_cost" validate:"gte=0"`
	ExtraCosts           float64 `json:"extra_costs" validate:"gte=0"`
	DesiredProfitPercent float64 `json:"desired_profit_percent" validate:"gte=0,lte=1000"`
	FinalWeightGrams     float64 `json:"final_weight_grams" validate:"gt=0"`
}

func (req pricingRequest) input() pricing.Input {
	return pricing.Input{
		RecipeCost:           req.RecipeCost,
		PackagingCost:        req.PackagingCost,
		ExtraCosts:           req.ExtraCosts,
		DesiredProfitPercent: req.DesiredProfitPercent,
		FinalWeightGrams:     req.FinalWeightGrams,
	}
}

type recipePriceRequest struct {
	TargetGrams          float64 `json:"target_grams" validate:"gte=0"`
	PackagingCost        float64 `json:"packaging_cost" validate:"gte=0"`
	ExtraCosts           float64 `json:"extra_costs" validate:"gte=0"`
	DesiredProfitPercent float64 `json:"desired_profit_percent" validate:"gte=0,lte=1000"`
	SaveQuote            bool    `json:"save_quote"`
	Title                string  `json:"title" validate:"max=120"`
	Notes                string  `json:"notes" validate:"max=2000"`
}

func (req recipePriceRequest) priceRequest() recipes.PriceRequest {
	return recipes.PriceRequest{
		TargetGrams:          req.TargetGrams,
		PackagingCost:        req.PackagingCost,
		ExtraCosts:           req.ExtraCosts,
		DesiredProfitPercent: req.DesiredProfitPercent,
	}
}

func parsePositiveID(raw, field string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s deve ser numérico", field)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s deve ser maior que 0", field)
	}
	return value, nil
}

func parseIndex(raw, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s deve ser numérico", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s deve ser maior ou igual a 0", field)
	}
	return value, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s deve ser numérico", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s deve ser maior ou igual a 0", field)
	}
	return value, nil
}

func parsePositiveFloat(raw, field string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, fmt.Errorf("%s é obrigatório", field)
	}
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value == 0 {
		return 0, fmt.Errorf("%s deve ser maior que 0", field)
	}
	return value, nil
}
