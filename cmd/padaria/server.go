package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Simplici0/padaria/internal/logging"
	"github.com/Simplici0/padaria/internal/recipes"
	"github.com/Simplici0/padaria/internal/store"
)

const maxBodyBytes = 1 << 20

type server struct {
	db       *sql.DB
	store    *store.Store
	recipes  *recipes.Service
	validate *validator.Validate
	currency string
}

func newServer(database *sql.DB, st *store.Store, svc *recipes.Service, currency string) *server {
	return &server{
		db:       database,
		store:    st,
		recipes:  svc,
		validate: newValidator(),
		currency: currency,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/units", s.handleUnitsList)
		r.Post("/units", s.handleUnitsCreate)

		r.Get("/ingredients", s.handleIngredientsList)
		r.Post("/ingredients", s.handleIngredientsCreate)
		r.Get("/ingredients/{id}", s.handleIngredientGet)
		r.Put("/ingredients/{id}", s.handleIngredientsUpdate)

		r.Get("/recipes", s.handleRecipesList)
		r.Post("/recipes", s.handleRecipesCreate)
		r.Get("/recipes/{id}", s.handleRecipeGet)
		r.Put("/recipes/{id}", s.handleRecipeUpdate)
		r.Delete("/recipes/{id}", s.handleRecipeDelete)
		r.Delete("/recipes/{id}/lines/{index}", s.handleRecipeLineDelete)
		r.Get("/recipes/{id}/cost", s.handleRecipeCost)
		r.Post("/recipes/{id}/rescale", s.handleRecipeRescale)
		r.Post("/recipes/{id}/price", s.handleRecipePrice)

		r.Post("/costing/recalculate", s.handleRecalculate)
		r.Post("/pricing", s.handlePricing)

		r.Get("/quotes", s.handleQuotesList)
		r.Get("/quotes/{id}", s.handleQuoteGet)
		r.Get("/quotes/{id}/text", s.handleQuoteText)
	})

	return r
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logging.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func (s *server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" é obrigatório")
		case "gt":
			msgs = append(msgs, field+" deve ser maior que "+fe.Param())
		case "gte":
			msgs = append(msgs, field+" deve ser maior ou igual a "+fe.Param())
		case "lte", "max":
			msgs = append(msgs, field+" deve ser no máximo "+fe.Param())
		case "oneof":
			msgs = append(msgs, field+" deve ser um de: "+fe.Param())
		default:
			msgs = append(msgs, field+" é inválido")
		}
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps persistence and service errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, recipes.ErrLineOutOfRange):
		writeError(w, http.StatusNotFound, "não encontrado")
	case errors.Is(err, recipes.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "target_grams deve ser maior que 0")
	default:
		logging.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "erro interno")
	}
}
