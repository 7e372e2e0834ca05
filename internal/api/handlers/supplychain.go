package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/folio/internal/banking"
	"github.com/wonny/folio/internal/store"
	"github.com/wonny/folio/internal/supplychain"
	"github.com/wonny/folio/pkg/logger"
)

// ChainDiscoverer builds a supply chain for a product.
type ChainDiscoverer interface {
	Discover(ctx context.Context, product string) (supplychain.Chain, error)
}

// PurchaseLister reads an account's purchase history.
type PurchaseLister interface {
	ListPurchases(ctx context.Context, accountID string) ([]banking.Purchase, error)
}

// SupplyChainHandler handles supply-chain discovery and spending-driven
// investment opportunity endpoints
type SupplyChainHandler struct {
	discovery ChainDiscoverer
	banking   PurchaseLister
	records   *store.Store
	logger    *logger.Logger
}

// NewSupplyChainHandler creates a new supply-chain handler
func NewSupplyChainHandler(discovery ChainDiscoverer, bank PurchaseLister, records *store.Store, log *logger.Logger) *SupplyChainHandler {
	return &SupplyChainHandler{
		discovery: discovery,
		banking:   bank,
		records:   records,
		logger:    log,
	}
}

// DiscoverRequest represents a supply-chain discovery request
type DiscoverRequest struct {
	Product    string `json:"product"`
	MerchantID string `json:"merchant_id,omitempty"` // when set, the chain is persisted for the merchant
}

// Discover builds the supply chain for a product
// POST /api/supplychains
func (h *SupplyChainHandler) Discover(w http.ResponseWriter, r *http.Request) {
	var req DiscoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Product == "" {
		respondError(w, http.StatusBadRequest, "Product is required")
		return
	}

	chain, err := h.discovery.Discover(r.Context(), req.Product)
	if err != nil {
		h.logger.WithError(err).Error("Supply-chain discovery failed")
		respondError(w, http.StatusBadGateway, "Supply-chain discovery failed")
		return
	}

	if req.MerchantID != "" {
		if err := h.records.SaveChain(req.MerchantID, chain); err != nil {
			h.logger.WithError(err).WithField("merchant_id", req.MerchantID).
				Warn("Failed to persist supply chain")
		}
	}

	respondJSON(w, http.StatusOK, chain)
}

// OpportunitiesResponse lists investment opportunities ranked by spend.
type OpportunitiesResponse struct {
	AccountID     string              `json:"account_id"`
	Opportunities []store.Opportunity `json:"opportunities"`
}

// Opportunities ranks the account's merchants by spend and joins each with
// its stored supply chain
// GET /api/accounts/{accountID}/opportunities
func (h *SupplyChainHandler) Opportunities(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["accountID"]

	purchases, err := h.banking.ListPurchases(r.Context(), accountID)
	if err != nil {
		h.logger.WithError(err).WithField("account_id", accountID).
			Error("Failed to list purchases")
		respondError(w, http.StatusBadGateway, "Failed to retrieve purchase history")
		return
	}

	opportunities, err := h.records.Opportunities(banking.TopMerchants(purchases))
	if err != nil {
		h.logger.WithError(err).Error("Failed to assemble opportunities")
		respondError(w, http.StatusInternalServerError, "Failed to assemble opportunities")
		return
	}

	respondJSON(w, http.StatusOK, OpportunitiesResponse{
		AccountID:     accountID,
		Opportunities: opportunities,
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
