package contracts

import "errors"

// Sentinel errors crossing component boundaries. Per-ticker data problems
// are absorbed with defaults before they reach here; only allocator
// configuration infeasibility and total data absence surface to callers.
var (
	// ErrDegenerateConstraints means the box and equality constraints
	// cannot both hold, e.g. max_weight * candidate_count < 1.
	ErrDegenerateConstraints = errors.New("degenerate allocation constraints")

	// ErrDataUnavailable means a ticker's market data could not be fetched.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrNoUsableData means no ticker in the batch had retrievable data.
	ErrNoUsableData = errors.New("no usable market data for any ticker")
)
