// Package banking wraps the Capital One Nessie sandbox API, used to pull
// a customer's purchase history so spending can seed investment ideas.
package banking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wonny/folio/pkg/httputil"
	"github.com/wonny/folio/pkg/logger"
)

const defaultBaseURL = "http://api.reimaginebanking.com"

// Address is a customer mailing address.
type Address struct {
	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// Customer is a sandbox banking customer.
type Customer struct {
	ID        string  `json:"_id,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Address   Address `json:"address"`
}

// Account is a sandbox account belonging to a customer.
type Account struct {
	ID       string  `json:"_id,omitempty"`
	Type     string  `json:"type"`
	Nickname string  `json:"nickname"`
	Rewards  int     `json:"rewards"`
	Balance  float64 `json:"balance"`
}

// Purchase is one transaction against an account.
type Purchase struct {
	ID           string  `json:"_id,omitempty"`
	MerchantID   string  `json:"merchant_id"`
	Medium       string  `json:"medium"`
	PurchaseDate string  `json:"purchase_date"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	Description  string  `json:"description,omitempty"`
}

// createResponse is the sandbox envelope around created objects.
type createResponse struct {
	ObjectCreated struct {
		ID string `json:"_id"`
	} `json:"objectCreated"`
}

// Client talks to the Nessie sandbox.
type Client struct {
	client  *httputil.Client
	baseURL string
	apiKey  string
	logger  *logger.Logger
}

// New creates a banking client. An empty baseURL uses the public sandbox.
func New(apiKey, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		client:  httputil.New(log, 10*time.Second),
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  log,
	}
}

// NewWithClient creates a banking client on an existing HTTP client.
func NewWithClient(client *httputil.Client, apiKey, baseURL string, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{client: client, baseURL: baseURL, apiKey: apiKey, logger: log}
}

// CreateCustomer registers a customer and returns the sandbox ID.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (string, error) {
	return c.create(ctx, c.endpoint("/customers"), customer, "customer")
}

// CreateAccount opens an account for the customer and returns its ID.
func (c *Client) CreateAccount(ctx context.Context, customerID string, account Account) (string, error) {
	path := fmt.Sprintf("/customers/%s/accounts", url.PathEscape(customerID))
	return c.create(ctx, c.endpoint(path), account, "account")
}

// CreatePurchase records a purchase on the account and returns its ID.
// An empty purchase date defaults to today.
func (c *Client) CreatePurchase(ctx context.Context, accountID string, purchase Purchase) (string, error) {
	if purchase.Medium == "" {
		purchase.Medium = "balance"
	}
	if purchase.Status == "" {
		purchase.Status = "pending"
	}
	if purchase.PurchaseDate == "" {
		purchase.PurchaseDate = time.Now().Format("2006-01-02")
	}

	path := fmt.Sprintf("/accounts/%s/purchases", url.PathEscape(accountID))
	return c.create(ctx, c.endpoint(path), purchase, "purchase")
}

// ListPurchases returns all purchases recorded against the account.
func (c *Client) ListPurchases(ctx context.Context, accountID string) ([]Purchase, error) {
	path := fmt.Sprintf("/accounts/%s/purchases", url.PathEscape(accountID))

	var purchases []Purchase
	if err := c.client.GetJSON(ctx, c.endpoint(path), &purchases); err != nil {
		return nil, fmt.Errorf("failed to list purchases for account %s: %w", accountID, err)
	}
	return purchases, nil
}

func (c *Client) create(ctx context.Context, endpoint string, payload interface{}, kind string) (string, error) {
	resp, err := c.client.PostJSON(ctx, endpoint, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("failed to create %s: unexpected status %d", kind, resp.StatusCode)
	}

	var created createResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode %s response: %w", kind, err)
	}
	if created.ObjectCreated.ID == "" {
		return "", fmt.Errorf("create %s response missing object id", kind)
	}

	c.logger.WithFields(map[string]interface{}{
		"kind": kind,
		"id":   created.ObjectCreated.ID,
	}).Debug("Sandbox object created")

	return created.ObjectCreated.ID, nil
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s%s?key=%s", c.baseURL, path, url.QueryEscape(c.apiKey))
}
