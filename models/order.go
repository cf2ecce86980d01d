package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Order is the live state of a client order. The breakdown columns are always
// derived through the pricing engine and replaced in full whenever the items,
// channel or catalog change; they are never hand-edited.
type Order struct {
	Id          string `json:"id" gorm:"primaryKey"`
	OrderNumber string `json:"order_number" gorm:"unique"`
	ClientId    uint   `json:"-"`
	Client      Client `json:"client" gorm:"foreignKey:ClientId;references:Id"`

	// Live items (latest state); replaced wholesale on edit.
	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	// Derived breakdown (quantity-weighted sums across items)
	BasePrice        float64 `json:"base_price" gorm:"type:numeric(12,2)"`
	SizeModifier     float64 `json:"size_modifier" gorm:"type:numeric(12,2)"`
	MaterialModifier float64 `json:"material_modifier" gorm:"type:numeric(12,2)"`
	AddonsTotal      float64 `json:"addons_total" gorm:"type:numeric(12,2)"`
	Subtotal         float64 `json:"subtotal" gorm:"type:numeric(12,2)"`
	Tax              float64 `json:"tax" gorm:"type:numeric(12,2)"`
	Total            float64 `json:"total" gorm:"type:numeric(12,2)"`

	// Payments rollup; Balance is unclamped and may go negative on overpayment.
	PaidTotal float64 `json:"paid_total" gorm:"type:numeric(12,2)"`
	Balance   float64 `json:"balance" gorm:"type:numeric(12,2)"`
	Deposit   float64 `json:"deposit" gorm:"type:numeric(12,2)"`

	SalesChannelId string     `json:"sales_channel_id"`
	Status         string     `json:"status" gorm:"type:VARCHAR(20)"`
	DueDate        *time.Time `json:"due_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (order *Order) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	order.Id = uuid.NewString()
	return
}

// OrderItem records the catalog selections of one line plus a price snapshot
// taken at the last recompute. UnitPrice is the single-unit subtotal;
// LineTotal is UnitPrice times quantity.
type OrderItem struct {
	ID            uint                        `json:"id" gorm:"primaryKey"`
	OrderID       string                      `json:"-" gorm:"index"`
	ProductTypeId string                      `json:"product_type_id" gorm:"index"`
	SizeId        string                      `json:"size_id"`
	MaterialId    string                      `json:"material_id"`
	AddonIds      datatypes.JSONSlice[string] `json:"addon_ids"`
	Quantity      int                         `json:"quantity"`
	UnitPrice     float64                     `json:"unit_price" gorm:"type:numeric(12,2)"`
	LineTotal     float64                     `json:"line_total" gorm:"type:numeric(12,2)"`
}

// Payment is an append-only ledger entry against an order. Entries are never
// edited, only deleted, and every rollup is recomputed from the full ledger.
type Payment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   string    `json:"order_id" gorm:"index:idx_payments_order_paid_at,priority:1"`
	Amount    float64   `json:"amount" gorm:"type:numeric(12,2)"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	Note      string    `json:"note"`
	PaidAt    time.Time `json:"paid_at" gorm:"index:idx_payments_order_paid_at,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}
