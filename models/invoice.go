package models

import (
	"time"

	"gorm.io/datatypes"
)

// Invoice snapshots an order at generation time with discount, rush fee, tax
// and processing fees layered on. The computed columns are stored exactly as
// the engine produced them; the renderer does no further arithmetic.
type Invoice struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	InvoiceNumber string `json:"invoice_number" gorm:"unique"`
	OrderID       string `json:"order_id" gorm:"index"`
	Order         Order  `json:"-" gorm:"foreignKey:OrderID;references:Id"`

	// Adjustment inputs as supplied at generation time
	TaxRate              float64 `json:"tax_rate"`
	DiscountValue        float64 `json:"discount_value"`
	DiscountType         string  `json:"discount_type" gorm:"type:VARCHAR(20)"`
	RushFeeValue         float64 `json:"rush_fee_value"`
	RushFeeType          string  `json:"rush_fee_type" gorm:"type:VARCHAR(20)"`
	EnableProcessingFees bool    `json:"enable_processing_fees"`
	PaymentFeeId         string  `json:"payment_fee_id"`
	ChannelFeeId         string  `json:"channel_fee_id"`
	LateFeePercent       float64 `json:"late_fee_percent"`

	// Computed outputs
	Subtotal      float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
	Discount      float64 `json:"discount" gorm:"type:numeric(12,2)"`
	RushFee       float64 `json:"rush_fee" gorm:"type:numeric(12,2)"`
	Tax           float64 `json:"tax" gorm:"type:numeric(12,2)"`
	ProcessingFee float64 `json:"processing_fee" gorm:"type:numeric(12,2)"`
	Total         float64 `json:"total" gorm:"type:numeric(12,2)"`
	DepositPaid   float64 `json:"deposit_paid" gorm:"type:numeric(12,2)"`
	BalanceDue    float64 `json:"balance_due" gorm:"type:numeric(12,2)"`

	// Immutable line snapshot
	Snapshot datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}
