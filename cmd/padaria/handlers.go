package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/padaria/internal/costing"
	"github.com/Simplici0/padaria/internal/pricing"
	"github.com/Simplici0/padaria/internal/store"
)

type recipeView struct {
	Recipe   costing.Recipe       `json:"recipe"`
	Snapshot costing.CostSnapshot `json:"snapshot"`
}

type pricingView struct {
	Input    pricing.Input  `json:"input"`
	Result   pricing.Result `json:"result"`
	Rounded  pricing.Result `json:"rounded"`
	Currency string         `json:"currency"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "banco de dados indisponível")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleUnitsList(w http.ResponseWriter, r *http.Request) {
	units, err := s.store.ListUnits(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, units)
}

func (s *server) handleUnitsCreate(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	unit, err := s.store.CreateUnit(r.Context(), req.unit())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, unit)
}

func (s *server) handleIngredientsList(w http.ResponseWriter, r *http.Request) {
	ingredients, err := s.store.ListIngredients(r.Context())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func (s *server) handleIngredientGet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ing, err := s.store.GetIngredient(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ing)
}

func (s *server) handleIngredientsCreate(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ing, err := s.store.CreateIngredient(r.Context(), req.ingredient(0))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ing)
}

func (s *server) handleIngredientsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ingredientRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	ing := req.ingredient(id)
	if err := s.store.UpdateIngredient(r.Context(), ing); err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ing)
}

func (s *server) handleRecipesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	list, err := s.store.ListRecipes(r.Context(), query)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleRecipesCreate(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	saved, err := s.recipes.Save(r.Context(), req.recipe(0))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writeRecipe(w, r, http.StatusCreated, saved.ID)
}

func (s *server) handleRecipeGet(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeRecipe(w, r, http.StatusOK, id)
}

func (s *server) handleRecipeUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req recipeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if _, err := s.recipes.Save(r.Context(), req.recipe(id)); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writeRecipe(w, r, http.StatusOK, id)
}

func (s *server) handleRecipeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.DeleteRecipe(r.Context(), id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleRecipeLineDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	index, err := parseIndex(chi.URLParam(r, "index"), "index")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.recipes.RemoveLine(r.Context(), id, index); err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writeRecipe(w, r, http.StatusOK, id)
}

func (s *server) handleRecipeCost(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	target, err := parseNonNegativeFloat(r.URL.Query().Get("target_grams"), "target_grams")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.recipes.Cost(r.Context(), id, target)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *server) handleRecipeRescale(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	target, err := parsePositiveFloat(r.URL.Query().Get("target_grams"), "target_grams")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rescaled, err := s.recipes.Rescale(r.Context(), id, target)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	s.writeRecipe(w, r, http.StatusOK, rescaled.ID)
}

func (s *server) handleRecipePrice(w http.ResponseWriter, r *http.Request) {
	id, err := parsePositiveID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req recipePriceRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	report, err := s.recipes.Price(r.Context(), id, req.priceRequest())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	resp := struct {
		pricingView
		Snapshot costing.CostSnapshot `json:"snapshot"`
		Quote    *store.Quote         `json:"quote,omitempty"`
	}{
		pricingView: s.pricingView(report.Input, report.Result),
		Snapshot:    report.Snapshot,
	}

	if req.SaveQuote {
		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = s.defaultQuoteTitle(r, id, report.Input.FinalWeightGrams)
		}
		q, err := s.recipes.Quote(r.Context(), title, strings.TrimSpace(req.Notes), &id, report.Input, report.Result)
		if err != nil {
			writeStoreError(w, r, err)
			return
		}
		resp.Quote = &q
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	recipe, snapshot, err := s.recipes.Draft(r.Context(), req.recipe())
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipeView{Recipe: recipe, Snapshot: snapshot})
}

func (s *server) handlePricing(w http.ResponseWriter, r *http.Request) {
	var req pricingRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	in := req.input()
	writeJSON(w, http.StatusOK, s.pricingView(in, pricing.Calculate(in)))
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.store.ListQuotes(r.Context(), query)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quotes)
}

func (s *server) handleQuoteGet(w http.ResponseWriter, r *http.Request) {
	q, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	q, err := s.store.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(formatQuoteText(q)))
}

func (s *server) writeRecipe(w http.ResponseWriter, r *http.Request, status int, id int64) {
	report, err := s.recipes.Cost(r.Context(), id, 0)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, status, recipeView{Recipe: report.Recipe, Snapshot: report.Snapshot})
}

func (s *server) pricingView(in pricing.Input, result pricing.Result) pricingView {
	return pricingView{
		Input:    in,
		Result:   result,
		Rounded:  result.Rounded(),
		Currency: s.currency,
	}
}

func (s *server) defaultQuoteTitle(r *http.Request, id int64, grams float64) string {
	name := fmt.Sprintf("Receita %d", id)
	if recipe, err := s.store.GetRecipe(r.Context(), id); err == nil && recipe.Name != "" {
		name = recipe.Name
	}
	return fmt.Sprintf("%s (%.0f g)", name, grams)
}
