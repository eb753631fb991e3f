package solana

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// SolAmount is a validated, strictly positive SOL quantity supplied by the
// operator. It can only be obtained through ParseAmount, so any SolAmount in
// the program is known to be finite, positive, and representable in lamports.
type SolAmount struct {
	sol float64
}

// Sol returns the amount in display units.
func (a SolAmount) Sol() float64 { return a.sol }

// Lamports converts the amount to lamports, truncating toward zero.
// Sub-lamport precision is dropped, not rounded; callers that care about
// exactness should prompt in whole lamports instead.
func (a SolAmount) Lamports() uint64 {
	return SolToLamports(a.sol)
}

func (a SolAmount) String() string {
	return strconv.FormatFloat(a.sol, 'f', -1, 64) + " SOL"
}

// Commission is a validated vote-account commission percentage in [0, 100].
type Commission uint8

// ParseAmount parses operator-supplied text into a SolAmount.
// Empty input is an error: an amount is a mandatory transfer quantity and has
// no sensible zero default. The lamport conversion must fit in a uint64.
func ParseAmount(text string) (SolAmount, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return SolAmount{}, fmt.Errorf("amount cannot be empty")
	}

	sol, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return SolAmount{}, fmt.Errorf("invalid amount %q: %w", trimmed, err)
	}
	if math.IsNaN(sol) || math.IsInf(sol, 0) {
		return SolAmount{}, fmt.Errorf("invalid amount %q: not a finite number", trimmed)
	}
	if sol <= 0 {
		return SolAmount{}, fmt.Errorf("amount must be greater than zero, got %v", sol)
	}

	// float64(math.MaxUint64) is exactly 2^64, so any product strictly below
	// it converts to uint64 without wrapping.
	if sol*float64(solana.LAMPORTS_PER_SOL) >= float64(math.MaxUint64) {
		return SolAmount{}, fmt.Errorf("amount %v SOL overflows the lamport range", sol)
	}

	return SolAmount{sol: sol}, nil
}

// ParseCommission parses operator-supplied text into a Commission.
// Empty input defaults to 0%, which is a safe default for a new vote account.
func ParseCommission(text string) (Commission, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Commission(0), nil
	}

	commission, err := strconv.ParseUint(trimmed, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid commission %q: %w", trimmed, err)
	}
	if commission > 100 {
		return 0, fmt.Errorf("commission must be between 0 and 100, got %d", commission)
	}
	return Commission(commission), nil
}

// SolToLamports converts display units to lamports, truncating toward zero.
func SolToLamports(sol float64) uint64 {
	return uint64(sol * float64(solana.LAMPORTS_PER_SOL))
}

// LamportsToSol converts lamports to display units.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / float64(solana.LAMPORTS_PER_SOL)
}
