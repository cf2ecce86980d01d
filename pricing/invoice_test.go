package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"atelier-backend/pricing"
)

func TestApplyAdjustmentsDiscountBeforeTax(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 100, Quantity: 1}}, pricing.AdjustmentConfig{
		TaxRate:       10,
		DiscountValue: 10,
		DiscountType:  pricing.AdjustPercentage,
	})

	require.InDelta(t, 100, totals.Subtotal, 1e-9)
	require.InDelta(t, 10, totals.Discount, 1e-9)
	require.InDelta(t, 90, totals.AfterAdjustments(), 1e-9)
	require.InDelta(t, 9, totals.Tax, 1e-9)
	require.InDelta(t, 99, totals.Total, 1e-9)
}

func TestApplyAdjustmentsFullScenario(t *testing.T) {
	// Order subtotal 340 (two-item order), 10% discount, 8% tax, 3% card fee.
	lines := []pricing.Line{
		{Price: 145, Quantity: 2},
		{Price: 50, Quantity: 1},
	}
	totals := pricing.ApplyAdjustments(testCatalog(), lines, pricing.AdjustmentConfig{
		TaxRate:              8,
		DiscountValue:        10,
		DiscountType:         pricing.AdjustPercentage,
		EnableProcessingFees: true,
		PaymentFeeId:         "card",
	})

	require.InDelta(t, 340, totals.Subtotal, 1e-9)
	require.InDelta(t, 34, totals.Discount, 1e-9)
	require.InDelta(t, 306, totals.AfterAdjustments(), 1e-9)
	require.InDelta(t, 24.48, totals.Tax, 1e-9)
	// Fee base is the raw 340 subtotal, not the adjusted 306.
	require.InDelta(t, 10.20, totals.ProcessingFee, 1e-9)
	require.InDelta(t, 340.68, totals.Total, 1e-9)
}

func TestApplyAdjustmentsFeeOnRawSubtotal(t *testing.T) {
	cat := testCatalog()
	lines := []pricing.Line{{Price: 200, Quantity: 1}}

	withDiscount := pricing.ApplyAdjustments(cat, lines, pricing.AdjustmentConfig{
		DiscountValue:        50,
		DiscountType:         pricing.AdjustPercentage,
		EnableProcessingFees: true,
		PaymentFeeId:         "card",
	})
	without := pricing.ApplyAdjustments(cat, lines, pricing.AdjustmentConfig{
		EnableProcessingFees: true,
		PaymentFeeId:         "card",
	})

	// Halving the order via discount must not change the processing fee.
	require.InDelta(t, without.ProcessingFee, withDiscount.ProcessingFee, 1e-9)
	require.InDelta(t, 6, withDiscount.ProcessingFee, 1e-9)
}

func TestApplyAdjustmentsFlatValues(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 100, Quantity: 1}}, pricing.AdjustmentConfig{
		DiscountValue: 15,
		DiscountType:  pricing.AdjustFlat,
		RushFeeValue:  25,
		RushFeeType:   pricing.AdjustFlat,
	})

	require.InDelta(t, 15, totals.Discount, 1e-9)
	require.InDelta(t, 25, totals.RushFee, 1e-9)
	require.InDelta(t, 110, totals.Total, 1e-9)
}

func TestApplyAdjustmentsRushFeePercentage(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 200, Quantity: 1}}, pricing.AdjustmentConfig{
		RushFeeValue: 20,
		RushFeeType:  pricing.AdjustPercentage,
		TaxRate:      10,
	})

	require.InDelta(t, 40, totals.RushFee, 1e-9)
	require.InDelta(t, 240, totals.AfterAdjustments(), 1e-9)
	require.InDelta(t, 24, totals.Tax, 1e-9)
	require.InDelta(t, 264, totals.Total, 1e-9)
}

func TestApplyAdjustmentsNegativeInputsCoerced(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 100, Quantity: 1}}, pricing.AdjustmentConfig{
		DiscountValue: -20,
		DiscountType:  pricing.AdjustFlat,
		RushFeeValue:  -5,
		RushFeeType:   pricing.AdjustPercentage,
		DepositPaid:   -50,
	})

	require.Zero(t, totals.Discount)
	require.Zero(t, totals.RushFee)
	require.Zero(t, totals.DepositPaid)
	require.InDelta(t, 100, totals.Total, 1e-9)
}

func TestApplyAdjustmentsZeroTaxRate(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 80, Quantity: 1}}, pricing.AdjustmentConfig{})
	require.Zero(t, totals.Tax)
	require.InDelta(t, 80, totals.Total, 1e-9)
}

func TestApplyAdjustmentsBalanceDueClamped(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 100, Quantity: 1}}, pricing.AdjustmentConfig{
		DepositPaid: 150,
	})

	// Customer-facing balance never goes negative, even on overpayment.
	require.InDelta(t, 150, totals.DepositPaid, 1e-9)
	require.Zero(t, totals.BalanceDue)
}

func TestInvoiceBalanceDue(t *testing.T) {
	require.InDelta(t, 40, pricing.InvoiceBalanceDue(100, 60), 1e-9)
	require.Zero(t, pricing.InvoiceBalanceDue(100, 100))
	require.Zero(t, pricing.InvoiceBalanceDue(100, 130))
}

func TestLateCharge(t *testing.T) {
	totals := pricing.ApplyAdjustments(pricing.Catalog{}, []pricing.Line{{Price: 200, Quantity: 1}}, pricing.AdjustmentConfig{})
	cfg := pricing.AdjustmentConfig{EnableLateFee: true, LateFeePercent: 5}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	late, ok := pricing.LateCharge(totals, cfg, now.AddDate(0, 0, -10), now)
	require.True(t, ok)
	require.InDelta(t, 10, late.LateFee, 1e-9)
	require.Equal(t, 10, late.DaysOverdue)

	// Partial days floor down.
	late, ok = pricing.LateCharge(totals, cfg, now.Add(-36*time.Hour), now)
	require.True(t, ok)
	require.Equal(t, 1, late.DaysOverdue)

	// Late fee never lands in the invoice total on its own.
	require.InDelta(t, 200, totals.Total, 1e-9)
}

func TestLateChargeNotDue(t *testing.T) {
	totals := pricing.InvoiceTotals{Subtotal: 100}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	_, ok := pricing.LateCharge(totals, pricing.AdjustmentConfig{EnableLateFee: true, LateFeePercent: 5}, now.AddDate(0, 0, 3), now)
	require.False(t, ok)

	_, ok = pricing.LateCharge(totals, pricing.AdjustmentConfig{LateFeePercent: 5}, now.AddDate(0, 0, -3), now)
	require.False(t, ok)

	_, ok = pricing.LateCharge(totals, pricing.AdjustmentConfig{EnableLateFee: true}, time.Time{}, now)
	require.False(t, ok)
}
