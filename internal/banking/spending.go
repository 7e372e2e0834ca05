package banking

import "sort"

// MerchantSpend is the total spent at one merchant.
type MerchantSpend struct {
	MerchantID string  `json:"merchant_id"`
	Amount     float64 `json:"amount"`
}

// SpendByMerchant sums purchase amounts per merchant.
func SpendByMerchant(purchases []Purchase) map[string]float64 {
	totals := make(map[string]float64)
	for _, p := range purchases {
		if p.MerchantID == "" {
			continue
		}
		totals[p.MerchantID] += p.Amount
	}
	return totals
}

// TopMerchants ranks merchants by total spend, highest first. Ties break
// on merchant ID so the order is stable.
func TopMerchants(purchases []Purchase) []MerchantSpend {
	totals := SpendByMerchant(purchases)

	ranked := make([]MerchantSpend, 0, len(totals))
	for id, amount := range totals {
		ranked = append(ranked, MerchantSpend{MerchantID: id, Amount: amount})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].MerchantID < ranked[j].MerchantID
	})

	return ranked
}
