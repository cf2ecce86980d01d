package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog rows are the user-editable price configuration. The pricing engine
// never reads these directly; controllers assemble a pricing.Catalog snapshot
// from the active rows.

type ProductType struct {
	Id        string  `json:"id" gorm:"primaryKey"`
	Name      string  `json:"name" gorm:"not null"`
	Category  string  `json:"category"`
	BasePrice float64 `json:"base_price" gorm:"type:numeric(12,2)"`
	Active    bool    `json:"-"`
}

func (p *ProductType) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	p.Id = uuid.NewString()
	return
}

type SizeOption struct {
	Id            string  `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"not null"`
	PriceModifier float64 `json:"price_modifier" gorm:"type:numeric(12,2)"`
	Active        bool    `json:"-"`
}

func (s *SizeOption) BeforeCreate(tx *gorm.DB) (err error) {
	s.Id = uuid.NewString()
	return
}

type MaterialOption struct {
	Id            string  `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"not null"`
	PriceModifier float64 `json:"price_modifier" gorm:"type:numeric(12,2)"`
	Active        bool    `json:"-"`
}

func (m *MaterialOption) BeforeCreate(tx *gorm.DB) (err error) {
	m.Id = uuid.NewString()
	return
}

type Addon struct {
	Id     string  `json:"id" gorm:"primaryKey"`
	Name   string  `json:"name" gorm:"not null"`
	Price  float64 `json:"price" gorm:"type:numeric(12,2)"`
	Active bool    `json:"-"`
}

func (a *Addon) BeforeCreate(tx *gorm.DB) (err error) {
	a.Id = uuid.NewString()
	return
}

// Fee rule kinds.
const (
	FeeKindPayment = "payment"
	FeeKindChannel = "channel"
)

// FeeRule stores a processing-fee rule for either a payment method or a
// sales channel; Kind selects the table it lands in.
type FeeRule struct {
	Id     string  `json:"id" gorm:"primaryKey"`
	Kind   string  `json:"kind" gorm:"type:VARCHAR(10);not null;index"`
	Label  string  `json:"label" gorm:"not null"`
	Rate   float64 `json:"rate"` // percent stays float
	Fixed  float64 `json:"fixed" gorm:"type:numeric(12,2)"`
	Active bool    `json:"-"`
}

func (f *FeeRule) BeforeCreate(tx *gorm.DB) (err error) {
	f.Id = uuid.NewString()
	return
}
