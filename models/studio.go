package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Studio is the tenant: one studio/workshop per registered account, with its
// own schema holding clients, catalog, orders and invoices.
type Studio struct {
	Id         string `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;unique"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Zip        string `json:"zip"`
	Homepage   string `json:"homepage" gorm:"null"`
	UserId     string `json:"-"`
	User       User   `json:"user" gorm:"foreignKey:UserId;references:Id"`
	SchemaName string `json:"-"`
}

func (studio *Studio) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	studio.Id = uuid.NewString()
	return
}
