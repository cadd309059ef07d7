package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/logger"
)

type stubEvaluator struct {
	result contracts.EvalResult
	err    error
}

func (s *stubEvaluator) Evaluate(ctx context.Context, query string) (contracts.EvalResult, error) {
	return s.result, s.err
}

type stubRanker struct {
	ideas   []contracts.EvalResult
	gotTopK int
}

func (s *stubRanker) Rank(ctx context.Context, topK int) []contracts.EvalResult {
	s.gotTopK = topK
	if len(s.ideas) > topK {
		return s.ideas[:topK]
	}
	return s.ideas
}

func newRouter(h *AdviceHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/evaluate/{query}", h.Evaluate).Methods("GET")
	r.HandleFunc("/api/ideas", h.Ideas).Methods("GET")
	return r
}

func TestEvaluate_OK(t *testing.T) {
	h := NewAdviceHandler(&stubEvaluator{result: contracts.EvalResult{
		Symbol:   "AAPL",
		Score:    75,
		Decision: contracts.DecisionBuy,
	}}, &stubRanker{}, 4, logger.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/evaluate/AAPL", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got contracts.EvalResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, 75, got.Score)
}

func TestEvaluate_NotFound(t *testing.T) {
	h := NewAdviceHandler(&stubEvaluator{err: contracts.ErrSymbolNotFound}, &stubRanker{}, 4, logger.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/evaluate/NOPE", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvaluate_DataUnavailable(t *testing.T) {
	h := NewAdviceHandler(&stubEvaluator{err: contracts.ErrDataUnavailable}, &stubRanker{}, 4, logger.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/evaluate/AAPL", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestIdeas_DefaultTopK(t *testing.T) {
	ranker := &stubRanker{ideas: []contracts.EvalResult{
		{Symbol: "MSFT", Score: 90, Decision: contracts.DecisionBuy},
		{Symbol: "AAPL", Score: 75, Decision: contracts.DecisionHold},
	}}
	h := NewAdviceHandler(&stubEvaluator{}, ranker, 4, logger.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/ideas", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, ranker.gotTopK)

	var resp IdeasResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "MSFT", resp.Ideas[0].Symbol)
}

func TestIdeas_TopOverride(t *testing.T) {
	ranker := &stubRanker{ideas: []contracts.EvalResult{
		{Symbol: "MSFT", Score: 90, Decision: contracts.DecisionBuy},
		{Symbol: "AAPL", Score: 75, Decision: contracts.DecisionHold},
	}}
	h := NewAdviceHandler(&stubEvaluator{}, ranker, 4, logger.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/ideas?top=1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ranker.gotTopK)

	var resp IdeasResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestIdeas_BadTopParameter(t *testing.T) {
	h := NewAdviceHandler(&stubEvaluator{}, &stubRanker{}, 4, logger.Nop())

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/ideas?top=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
