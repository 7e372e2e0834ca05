package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/internal/api/handlers"
	"github.com/wonny/folio/internal/banking"
	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/internal/store"
	"github.com/wonny/folio/internal/supplychain"
	"github.com/wonny/folio/pkg/logger"
)

type noopAdvisor struct{}

func (noopAdvisor) ScoreTickers(ctx context.Context, symbols []string, profile contracts.RiskProfile) ([]contracts.ScoreResult, error) {
	return nil, nil
}

func (noopAdvisor) Recommend(ctx context.Context, symbol string, profile contracts.RiskProfile) (contracts.Recommendation, error) {
	return contracts.Recommendation{Symbol: symbol, Action: "Hold"}, nil
}

func (noopAdvisor) BuildPortfolio(ctx context.Context, symbols []string, req contracts.AllocationRequest) (contracts.Allocation, error) {
	return contracts.Allocation{}, nil
}

type noopDiscovery struct{}

func (noopDiscovery) Discover(ctx context.Context, product string) (supplychain.Chain, error) {
	return supplychain.Chain{Product: product}, nil
}

type noopBank struct{}

func (noopBank) ListPurchases(ctx context.Context, accountID string) ([]banking.Purchase, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewNop()

	records, err := store.New(t.TempDir(), log)
	require.NoError(t, err)

	return NewRouter(
		handlers.NewAdvisorHandler(noopAdvisor{}, log),
		handlers.NewSupplyChainHandler(noopDiscovery{}, noopBank{}, records, log),
		log,
	)
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/api/scores", `{"symbols":["AAPL"]}`, http.StatusOK},
		{http.MethodGet, "/api/recommendations/AAPL", "", http.StatusOK},
		{http.MethodPost, "/api/portfolio", `{"symbols":["AAPL"]}`, http.StatusOK},
		{http.MethodPost, "/api/supplychains", `{"product":"coffee"}`, http.StatusOK},
		{http.MethodGet, "/api/accounts/a1/opportunities", "", http.StatusOK},
		{http.MethodGet, "/api/scores", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var reqBody *strings.Reader
			if tt.body != "" {
				reqBody = strings.NewReader(tt.body)
			} else {
				reqBody = strings.NewReader("")
			}

			req := httptest.NewRequest(tt.method, tt.path, reqBody)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
