package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"atelier-backend/pricing"
)

func TestBalanceIdentity(t *testing.T) {
	s := pricing.Balance(330.48, []float64{100, 50.48})
	require.InDelta(t, 150.48, s.Paid, 1e-9)
	require.InDelta(t, 180, s.Balance, 1e-9)
}

func TestBalanceAfterDeletion(t *testing.T) {
	// Deleting a payment is just recomputing over the remaining ledger.
	before := pricing.Balance(500, []float64{200, 100, 50})
	after := pricing.Balance(500, []float64{200, 50})

	require.InDelta(t, 150, before.Balance, 1e-9)
	require.InDelta(t, 250, after.Balance, 1e-9)
}

func TestBalanceOverpaymentStaysNegative(t *testing.T) {
	s := pricing.Balance(100, []float64{80, 40})
	require.InDelta(t, -20, s.Balance, 1e-9)
}

func TestBalanceEmptyLedger(t *testing.T) {
	s := pricing.Balance(75, nil)
	require.Zero(t, s.Paid)
	require.InDelta(t, 75, s.Balance, 1e-9)
}
