// Package handlers holds the HTTP handlers behind the API router.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/logger"
)

// Request defaults matching the CLI.
const (
	defaultInvestmentAmount  = 10000.0
	defaultMinScore          = 0.60
	defaultRiskAversion      = 2.0
	defaultMaxWeightPerStock = 0.3
)

// AdvisorService is the pipeline surface the handlers need.
type AdvisorService interface {
	ScoreTickers(ctx context.Context, symbols []string, profile contracts.RiskProfile) ([]contracts.ScoreResult, error)
	Recommend(ctx context.Context, symbol string, profile contracts.RiskProfile) (contracts.Recommendation, error)
	BuildPortfolio(ctx context.Context, symbols []string, req contracts.AllocationRequest) (contracts.Allocation, error)
}

// AdvisorHandler handles scoring, recommendation and portfolio endpoints
type AdvisorHandler struct {
	advisor AdvisorService
	logger  *logger.Logger
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(advisor AdvisorService, log *logger.Logger) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, logger: log}
}

// ScoreRequest represents a batch scoring request
type ScoreRequest struct {
	Symbols []string `json:"symbols"`
	Profile string   `json:"profile"`
}

// ScoreResponse represents a batch scoring response
type ScoreResponse struct {
	Profile contracts.RiskProfile   `json:"profile"`
	Results []contracts.ScoreResult `json:"results"`
}

// Score scores a batch of tickers
// POST /api/scores
func (h *AdvisorHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		respondError(w, http.StatusBadRequest, "At least one symbol is required")
		return
	}

	profile, err := contracts.ParseRiskProfile(req.Profile)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.advisor.ScoreTickers(r.Context(), req.Symbols, profile)
	if err != nil {
		h.respondPipelineError(w, err, "Failed to score tickers")
		return
	}

	respondJSON(w, http.StatusOK, ScoreResponse{Profile: profile, Results: results})
}

// Recommend maps one ticker's score to an action
// GET /api/recommendations/{symbol}?profile=medium
func (h *AdvisorHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	profile, err := contracts.ParseRiskProfile(r.URL.Query().Get("profile"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.advisor.Recommend(r.Context(), symbol, profile)
	if err != nil {
		h.respondPipelineError(w, err, "Failed to build recommendation")
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// PortfolioRequest represents a portfolio allocation request
type PortfolioRequest struct {
	Symbols           []string `json:"symbols"`
	InvestmentAmount  float64  `json:"investment_amount"`
	MinScore          *float64 `json:"min_score,omitempty"`
	RiskAversion      *float64 `json:"risk_aversion,omitempty"`
	MaxWeightPerStock *float64 `json:"max_weight_per_stock,omitempty"`
	Profile           string   `json:"profile"`
	Lookback          string   `json:"lookback,omitempty"`
}

// BuildPortfolio scores the symbols and allocates the budget
// POST /api/portfolio
func (h *AdvisorHandler) BuildPortfolio(w http.ResponseWriter, r *http.Request) {
	var req PortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		respondError(w, http.StatusBadRequest, "At least one symbol is required")
		return
	}

	profile, err := contracts.ParseRiskProfile(req.Profile)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	allocation, err := h.advisor.BuildPortfolio(r.Context(), req.Symbols, allocationRequest(req, profile))
	if err != nil {
		h.respondPipelineError(w, err, "Failed to build portfolio")
		return
	}

	respondJSON(w, http.StatusOK, allocation)
}

// allocationRequest applies the documented defaults to omitted fields.
func allocationRequest(req PortfolioRequest, profile contracts.RiskProfile) contracts.AllocationRequest {
	amount := req.InvestmentAmount
	if amount <= 0 {
		amount = defaultInvestmentAmount
	}

	out := contracts.AllocationRequest{
		InvestmentAmount:  decimal.NewFromFloat(amount),
		MinScore:          defaultMinScore,
		RiskAversion:      defaultRiskAversion,
		MaxWeightPerStock: defaultMaxWeightPerStock,
		Profile:           profile,
		Lookback:          req.Lookback,
	}
	if req.MinScore != nil {
		out.MinScore = *req.MinScore
	}
	if req.RiskAversion != nil {
		out.RiskAversion = *req.RiskAversion
	}
	if req.MaxWeightPerStock != nil {
		out.MaxWeightPerStock = *req.MaxWeightPerStock
	}
	return out
}

// respondPipelineError maps pipeline errors onto HTTP status codes.
func (h *AdvisorHandler) respondPipelineError(w http.ResponseWriter, err error, message string) {
	h.logger.WithError(err).Error(message)

	switch {
	case errors.Is(err, contracts.ErrDegenerateConstraints):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, contracts.ErrNoUsableData):
		respondError(w, http.StatusBadGateway, "No usable market data for the requested symbols")
	default:
		respondError(w, http.StatusInternalServerError, message)
	}
}
