// Package store persists merchant and supply-chain records as flat JSON
// files, the lightweight bookkeeping behind spending-driven investment
// ideas. Writes go through a temp file and rename so a crash never leaves
// a half-written record.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/wonny/folio/internal/banking"
	"github.com/wonny/folio/internal/supplychain"
	"github.com/wonny/folio/pkg/logger"
)

const (
	merchantsFile = "merchants.json"
	chainsFile    = "supply_chains.json"
)

// Merchant is a business the user spends money at.
type Merchant struct {
	ID       string `json:"merchant_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Location string `json:"location,omitempty"`
}

// Opportunity ties a merchant's spend to its discovered supply chain.
type Opportunity struct {
	Business    string            `json:"business"`
	MerchantID  string            `json:"merchant_id"`
	AmountSpent float64           `json:"amount_spent"`
	Chain       supplychain.Chain `json:"supply_chain"`
}

// Store is a file-backed record store rooted at one directory.
type Store struct {
	dir    string
	mu     sync.Mutex
	logger *logger.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, log *logger.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &Store{dir: dir, logger: log}, nil
}

// AddMerchant records a merchant and returns it with a generated ID.
func (s *Store) AddMerchant(name, category, location string) (Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merchants, err := s.loadMerchants()
	if err != nil {
		return Merchant{}, err
	}

	merchant := Merchant{
		ID:       fmt.Sprintf("m_%03d", len(merchants)+1),
		Name:     name,
		Category: category,
		Location: location,
	}
	merchants = append(merchants, merchant)

	if err := s.saveJSON(merchantsFile, merchants); err != nil {
		return Merchant{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"merchant_id": merchant.ID,
		"name":        name,
	}).Debug("Merchant recorded")

	return merchant, nil
}

// MerchantByID looks up a merchant. The second return is false when the
// merchant is unknown.
func (s *Store) MerchantByID(id string) (Merchant, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merchants, err := s.loadMerchants()
	if err != nil {
		return Merchant{}, false, err
	}
	for _, m := range merchants {
		if m.ID == id {
			return m, true, nil
		}
	}
	return Merchant{}, false, nil
}

// Merchants returns all recorded merchants in insertion order.
func (s *Store) Merchants() ([]Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMerchants()
}

// SaveChain stores the discovered supply chain for a merchant, replacing
// any previous one.
func (s *Store) SaveChain(merchantID string, chain supplychain.Chain) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chains, err := s.loadChains()
	if err != nil {
		return err
	}
	chains[merchantID] = chain
	return s.saveJSON(chainsFile, chains)
}

// ChainFor returns the stored supply chain for a merchant, if any.
func (s *Store) ChainFor(merchantID string) (supplychain.Chain, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chains, err := s.loadChains()
	if err != nil {
		return supplychain.Chain{}, false, err
	}
	chain, ok := chains[merchantID]
	return chain, ok, nil
}

// Opportunities joins ranked merchant spending with stored supply chains.
// Merchants without a known record or chain are skipped; the spend order
// is preserved.
func (s *Store) Opportunities(ranked []banking.MerchantSpend) ([]Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merchants, err := s.loadMerchants()
	if err != nil {
		return nil, err
	}
	chains, err := s.loadChains()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Merchant, len(merchants))
	for _, m := range merchants {
		byID[m.ID] = m
	}

	var opportunities []Opportunity
	for _, spend := range ranked {
		merchant, ok := byID[spend.MerchantID]
		if !ok {
			continue
		}
		chain, ok := chains[spend.MerchantID]
		if !ok {
			continue
		}
		opportunities = append(opportunities, Opportunity{
			Business:    merchant.Name,
			MerchantID:  merchant.ID,
			AmountSpent: spend.Amount,
			Chain:       chain,
		})
	}
	return opportunities, nil
}

func (s *Store) loadMerchants() ([]Merchant, error) {
	var merchants []Merchant
	if err := s.loadJSON(merchantsFile, &merchants); err != nil {
		return nil, err
	}
	return merchants, nil
}

func (s *Store) loadChains() (map[string]supplychain.Chain, error) {
	chains := make(map[string]supplychain.Chain)
	if err := s.loadJSON(chainsFile, &chains); err != nil {
		return nil, err
	}
	return chains, nil
}

// loadJSON reads a record file into dest. A missing file is an empty
// store, not an error.
func (s *Store) loadJSON(name string, dest interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// saveJSON writes dest atomically via a temp file in the same directory.
func (s *Store) saveJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
