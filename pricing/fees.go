package pricing

// NoFee marks an unset fee selection.
const NoFee = "none"

// FeeBreakdown splits the processing charge on a subtotal into its two
// sources. Both fees apply to the same subtotal and stack; there is no mutual
// exclusivity between them.
type FeeBreakdown struct {
	PaymentProcessorFee float64 `json:"payment_processor_fee"`
	SalesChannelFee     float64 `json:"sales_channel_fee"`
	TotalProcessingFee  float64 `json:"total_processing_fee"`
}

// ProcessingFees computes the payment-method and sales-channel fees on a
// subtotal. An empty, "none" or unknown id contributes 0.
func ProcessingFees(cat Catalog, subtotal float64, paymentId, channelId string) FeeBreakdown {
	f := FeeBreakdown{
		PaymentProcessorFee: ruleFee(cat.PaymentFees, paymentId, subtotal),
		SalesChannelFee:     ruleFee(cat.ChannelFees, channelId, subtotal),
	}
	f.TotalProcessingFee = f.PaymentProcessorFee + f.SalesChannelFee
	return f
}

func ruleFee(rules map[string]FeeRule, id string, subtotal float64) float64 {
	if id == "" || id == NoFee {
		return 0
	}
	rule, ok := rules[id]
	if !ok {
		return 0
	}
	rate := nonNegative(rule.Rate)
	fixed := nonNegative(rule.Fixed)
	if rate == 0 && fixed == 0 {
		return 0
	}
	return subtotal*(rate/100) + fixed
}
