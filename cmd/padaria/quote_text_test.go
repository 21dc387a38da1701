package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/padaria/internal/pricing"
	"github.com/Simplici0/padaria/internal/store"
)

func seedQuoteDetail(t *testing.T, st *store.Store) store.Quote {
	t.Helper()

	in := pricing.Input{RecipeCost: 8.75, PackagingCost: 0.5, ExtraCosts: 1, DesiredProfitPercent: 50, FinalWeightGrams: 1000}
	q, err := st.SaveQuote(context.Background(), store.Quote{
		Title:     "Bolo de Cenoura",
		Notes:     "Entregar em 48h",
		Currency:  "BRL",
		Input:     in,
		Result:    pricing.Calculate(in),
		CreatedAt: time.Date(2024, 2, 1, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed quote: %v", err)
	}
	return q
}

func TestHandleQuoteTextReturnsPlainText(t *testing.T) {
	srv, st := newTestServer(t)
	q := seedQuoteDetail(t, st)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/"+q.ID+"/text", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", q.ID)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleQuoteText(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}

	body := rr.Body.String()
	for _, expected := range []string{
		"Orçamento: Bolo de Cenoura",
		"Data: 01/02/2024 14:00",
		"Preço sugerido: 15.38 BRL",
		"- Total: 10.25 BRL",
		"- Lucro desejado: 50.00%",
		"- Peso final: 1000 g",
		"Observações: Entregar em 48h",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func TestHandleQuoteTextUnknownQuote(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/quotes/nope/text", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "nope")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleQuoteText(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestGetQuoteReadsSnapshotWithoutRecalculation(t *testing.T) {
	srv, st := newTestServer(t)
	q := seedQuoteDetail(t, st)

	// Prices changing later must not affect the stored quote.
	catalogIDs(t, st)

	rr := doJSON(t, srv.routes(), http.MethodGet, "/api/quotes/"+q.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var got store.Quote
	decode(t, rr, &got)
	if got.Result != q.Result || got.Input != q.Input {
		t.Fatalf("expected stored snapshot, got %+v", got)
	}
}
