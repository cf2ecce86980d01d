package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"atelier-backend/pricing"
)

func TestProcessingFeesStack(t *testing.T) {
	f := pricing.ProcessingFees(testCatalog(), 100, "card", "marketplace")

	require.InDelta(t, 3, f.PaymentProcessorFee, 1e-9)    // 3% of 100
	require.InDelta(t, 5.30, f.SalesChannelFee, 1e-9)     // 5% of 100 + 0.30
	require.InDelta(t, 8.30, f.TotalProcessingFee, 1e-9)  // both apply, never just one
}

func TestProcessingFeesNoSelection(t *testing.T) {
	cat := testCatalog()
	for _, id := range []string{"", pricing.NoFee, "unknown-processor"} {
		f := pricing.ProcessingFees(cat, 250, id, id)
		require.Zero(t, f.PaymentProcessorFee, "id %q", id)
		require.Zero(t, f.SalesChannelFee, "id %q", id)
		require.Zero(t, f.TotalProcessingFee, "id %q", id)
	}
}

func TestProcessingFeesZeroRule(t *testing.T) {
	cat := testCatalog()
	cat.PaymentFees["cash"] = pricing.FeeRule{Label: "Cash"}

	f := pricing.ProcessingFees(cat, 500, "cash", "")
	require.Zero(t, f.TotalProcessingFee)
}

func TestProcessingFeesNegativeRuleCoercedToZero(t *testing.T) {
	cat := testCatalog()
	cat.PaymentFees["bogus"] = pricing.FeeRule{Rate: -3, Fixed: -1}

	f := pricing.ProcessingFees(cat, 100, "bogus", "")
	require.Zero(t, f.TotalProcessingFee)
}

func TestProcessingFeesFixedOnly(t *testing.T) {
	cat := testCatalog()
	cat.ChannelFees["popup"] = pricing.FeeRule{Fixed: 2.50}

	f := pricing.ProcessingFees(cat, 80, "", "popup")
	require.InDelta(t, 2.50, f.SalesChannelFee, 1e-9)
	require.InDelta(t, 2.50, f.TotalProcessingFee, 1e-9)
}
