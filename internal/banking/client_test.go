package banking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/pkg/httputil"
	"github.com/wonny/folio/pkg/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log := logger.NewNop()
	return NewWithClient(httputil.New(log, 5*time.Second).DisableRetry(), "test-key", baseURL, log)
}

func createdResponse(id string) string {
	return fmt.Sprintf(`{"code":201,"message":"created","objectCreated":{"_id":"%s"}}`, id)
}

func TestCreateCustomer(t *testing.T) {
	var gotPath, gotKey string
	var gotBody Customer

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, createdResponse("cust-1"))
	}))
	defer srv.Close()

	id, err := newTestClient(t, srv.URL).CreateCustomer(context.Background(), Customer{
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   Address{StreetNumber: "456", StreetName: "Oak St", City: "Sometown", State: "CA", Zip: "54321"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cust-1", id)
	assert.Equal(t, "/customers", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Jane", gotBody.FirstName)
}

func TestCreateAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/cust-1/accounts", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, createdResponse("acct-1"))
	}))
	defer srv.Close()

	id, err := newTestClient(t, srv.URL).CreateAccount(context.Background(), "cust-1", Account{
		Type:     "Savings",
		Nickname: "Main Account",
		Balance:  5000,
	})
	require.NoError(t, err)
	assert.Equal(t, "acct-1", id)
}

func TestCreatePurchase_DefaultsFilled(t *testing.T) {
	var gotBody Purchase

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, createdResponse("p-1"))
	}))
	defer srv.Close()

	id, err := newTestClient(t, srv.URL).CreatePurchase(context.Background(), "acct-1", Purchase{
		MerchantID: "m-9",
		Amount:     42.50,
	})
	require.NoError(t, err)

	assert.Equal(t, "p-1", id)
	assert.Equal(t, "balance", gotBody.Medium)
	assert.Equal(t, "pending", gotBody.Status)
	assert.NotEmpty(t, gotBody.PurchaseDate)
}

func TestCreateCustomer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":400,"message":"bad request"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CreateCustomer(context.Background(), Customer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestListPurchases(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acct-1/purchases", r.URL.Path)
		fmt.Fprint(w, `[
			{"_id":"p-1","merchant_id":"m-1","amount":75,"status":"pending"},
			{"_id":"p-2","merchant_id":"m-2","amount":650,"status":"completed"}
		]`)
	}))
	defer srv.Close()

	purchases, err := newTestClient(t, srv.URL).ListPurchases(context.Background(), "acct-1")
	require.NoError(t, err)
	require.Len(t, purchases, 2)
	assert.Equal(t, "m-2", purchases[1].MerchantID)
	assert.Equal(t, 650.0, purchases[1].Amount)
}
