// Package handlers holds the HTTP handlers for the advice API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/internal/evaluate"
	"github.com/stockpick/advisor/pkg/logger"
)

// ideaRanker is what the handler needs from the universe ranker.
type ideaRanker interface {
	Rank(ctx context.Context, topK int) []contracts.EvalResult
}

// symbolEvaluator evaluates one free-text query.
type symbolEvaluator interface {
	Evaluate(ctx context.Context, query string) (contracts.EvalResult, error)
}

// AdviceHandler handles evaluation and ranking API endpoints
type AdviceHandler struct {
	evaluator symbolEvaluator
	ranker    ideaRanker
	topK      int
	logger    *logger.Logger
}

// NewAdviceHandler creates a new advice handler. topK is the default idea
// count when the request does not carry one.
func NewAdviceHandler(ev symbolEvaluator, ranker ideaRanker, topK int, log *logger.Logger) *AdviceHandler {
	return &AdviceHandler{
		evaluator: ev,
		ranker:    ranker,
		topK:      topK,
		logger:    log,
	}
}

var _ ideaRanker = (*evaluate.Ranker)(nil)

// Evaluate runs the full pipeline for one query
// GET /api/evaluate/{query}
func (h *AdviceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := mux.Vars(r)["query"]

	result, err := h.evaluator.Evaluate(ctx, query)
	if err != nil {
		switch {
		case errors.Is(err, contracts.ErrSymbolNotFound):
			respondError(w, http.StatusNotFound, "No instrument matches the query")
		case errors.Is(err, contracts.ErrDataUnavailable):
			respondError(w, http.StatusBadGateway, "Market data unavailable for this instrument")
		default:
			h.logger.WithError(err).Error("Evaluation failed")
			respondError(w, http.StatusInternalServerError, "Evaluation failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// IdeasResponse wraps the ranked candidates
type IdeasResponse struct {
	Count int                    `json:"count"`
	Ideas []contracts.EvalResult `json:"ideas"`
}

// Ideas scans the universe and returns the top candidates
// GET /api/ideas?top=K
func (h *AdviceHandler) Ideas(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	topK := h.topK
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'top' parameter (expected an integer)")
			return
		}
		topK = n
	}

	ideas := h.ranker.Rank(ctx, topK)

	respondJSON(w, http.StatusOK, IdeasResponse{
		Count: len(ideas),
		Ideas: ideas,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
