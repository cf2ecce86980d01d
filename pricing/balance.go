package pricing

// LedgerSummary is the payments rollup against a total. Balance may go
// negative on overpayment; the ledger view surfaces it as-is and only the
// customer-facing presentation clamps (see InvoiceBalanceDue).
type LedgerSummary struct {
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// Balance reduces the full payments ledger against a total. Paid is always
// recomputed from every recorded amount, never tracked incrementally, so
// deleting a payment can never leave the rollup drifted.
func Balance(total float64, amounts []float64) LedgerSummary {
	var paid float64
	for _, a := range amounts {
		paid += a
	}
	return LedgerSummary{Paid: paid, Balance: total - paid}
}
