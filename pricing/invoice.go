package pricing

import "time"

// Adjustment value kinds.
const (
	AdjustPercentage = "percentage"
	AdjustFlat       = "flat"
)

// AdjustmentConfig carries the per-invoice knobs: discount, rush fee, tax and
// the optional processing-fee and late-fee settings. It is passed by value at
// generation time and never persisted on the order.
type AdjustmentConfig struct {
	TaxRate              float64
	DiscountValue        float64
	DiscountType         string // "percentage" or "flat"
	RushFeeValue         float64
	RushFeeType          string
	EnableProcessingFees bool
	PaymentFeeId         string
	ChannelFeeId         string
	EnableLateFee        bool
	LateFeePercent       float64
	DepositPaid          float64
}

// Line is one priced invoice line: the resolved per-unit price and quantity.
type Line struct {
	Price    float64
	Quantity int
}

// InvoiceTotals is the fully layered invoice result, consumed verbatim by the
// renderer. BalanceDue is clamped at 0 against the deposit; the unclamped
// ledger balance comes from Balance instead.
type InvoiceTotals struct {
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	RushFee       float64 `json:"rush_fee"`
	Tax           float64 `json:"tax"`
	ProcessingFee float64 `json:"processing_fee"`
	Total         float64 `json:"total"`
	DepositPaid   float64 `json:"deposit_paid"`
	BalanceDue    float64 `json:"balance_due"`
}

// AfterAdjustments is the subtotal with discount and rush fee applied, before
// tax and processing fees. It is the tax base and the late-fee base.
func (t InvoiceTotals) AfterAdjustments() float64 {
	return t.Subtotal - t.Discount + t.RushFee
}

// ApplyAdjustments layers discount, rush fee, tax and processing fees onto the
// line subtotal. The evaluation order is a correctness contract:
//
//	subtotal -> discount -> rush fee -> tax on the adjusted amount ->
//	processing fee -> total
//
// The processing fee is computed on the raw subtotal, not the adjusted amount,
// and is added after tax. Existing invoices depend on that exact behavior, so
// it stays.
func ApplyAdjustments(cat Catalog, lines []Line, cfg AdjustmentConfig) InvoiceTotals {
	var subtotal float64
	for _, ln := range lines {
		subtotal += nonNegative(ln.Price) * float64(NormalizeQuantity(ln.Quantity))
	}

	discount := adjustmentAmount(cfg.DiscountType, cfg.DiscountValue, subtotal)
	rushFee := adjustmentAmount(cfg.RushFeeType, cfg.RushFeeValue, subtotal)
	afterAdjustments := subtotal - discount + rushFee

	var tax float64
	if cfg.TaxRate > 0 {
		tax = afterAdjustments * (cfg.TaxRate / 100)
	}

	var processingFee float64
	if cfg.EnableProcessingFees {
		processingFee = ProcessingFees(cat, subtotal, cfg.PaymentFeeId, cfg.ChannelFeeId).TotalProcessingFee
	}

	total := afterAdjustments + tax + processingFee
	deposit := nonNegative(cfg.DepositPaid)

	return InvoiceTotals{
		Subtotal:      subtotal,
		Discount:      discount,
		RushFee:       rushFee,
		Tax:           tax,
		ProcessingFee: processingFee,
		Total:         total,
		DepositPaid:   deposit,
		BalanceDue:    InvoiceBalanceDue(total, deposit),
	}
}

func adjustmentAmount(kind string, value, subtotal float64) float64 {
	value = nonNegative(value)
	if kind == AdjustPercentage {
		return subtotal * (value / 100)
	}
	return value
}

// InvoiceBalanceDue is the customer-facing remainder: never negative.
func InvoiceBalanceDue(total, paid float64) float64 {
	if due := total - paid; due > 0 {
		return due
	}
	return 0
}

// LateDetail is the informational late charge for an overdue invoice. It is
// surfaced for display and never folded into the invoice total.
type LateDetail struct {
	LateFee     float64 `json:"late_fee"`
	DaysOverdue int     `json:"days_overdue"`
}

// LateCharge reports the late fee for totals whose due date has passed.
// Returns false when late fees are disabled, no due date is set, or the
// invoice is not overdue.
func LateCharge(totals InvoiceTotals, cfg AdjustmentConfig, dueDate, now time.Time) (LateDetail, bool) {
	if !cfg.EnableLateFee || dueDate.IsZero() || !now.After(dueDate) {
		return LateDetail{}, false
	}
	return LateDetail{
		LateFee:     totals.AfterAdjustments() * (nonNegative(cfg.LateFeePercent) / 100),
		DaysOverdue: int(now.Sub(dueDate).Hours() / 24),
	}, true
}
