package allocation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/pkg/database"
)

// RunRecord is one persisted allocation run for audit.
type RunRecord struct {
	ID            int64                 `json:"id"`
	Profile       contracts.RiskProfile `json:"profile"`
	WeightsHash   string                `json:"weights_hash"`
	Requested     string                `json:"requested"`
	TotalInvested string                `json:"total_invested"`
	Positions     []contracts.Position  `json:"positions"`
	CreatedAt     time.Time             `json:"created_at"`
}

// Repository persists allocation runs to PostgreSQL. The weight-table hash
// recorded with each run ties the result back to the exact model version
// that produced it.
type Repository struct {
	db *database.DB
}

// NewRepository creates an allocation run repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// SaveRun records one completed allocation run.
func (r *Repository) SaveRun(ctx context.Context, req contracts.AllocationRequest, result contracts.Allocation, weightsHash string) (int64, error) {
	positions, err := json.Marshal(result.Positions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal positions: %w", err)
	}

	var id int64
	err = r.db.Pool.QueryRow(ctx, `
		INSERT INTO allocation_runs (profile, weights_hash, requested, total_invested, positions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		string(req.Profile),
		weightsHash,
		req.InvestmentAmount,
		result.TotalInvested,
		positions,
		result.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert allocation run: %w", err)
	}

	return id, nil
}

// ListRuns returns the most recent allocation runs, newest first.
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, profile, weights_hash, requested::text, total_invested::text, positions, created_at
		FROM allocation_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var profile string
		var positions []byte

		if err := rows.Scan(&rec.ID, &profile, &rec.WeightsHash, &rec.Requested, &rec.TotalInvested, &positions, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation run: %w", err)
		}

		rec.Profile = contracts.RiskProfile(profile)
		if err := json.Unmarshal(positions, &rec.Positions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal positions: %w", err)
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
