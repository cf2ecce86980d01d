package models

type Client struct {
	Id           uint   `json:"id" gorm:"primaryKey"`
	CompanyName  string `json:"company_name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Zip          string `json:"zip"`
	Homepage     string `json:"homepage" gorm:"null"`
	Email        string `json:"email" gorm:"unique;not null"`
	FirstName    string `json:"first_name" gorm:"not null"`
	LastName     string `json:"last_name" gorm:"not null"`
	PhoneNumber  string `json:"phone_number"`
	MobileNumber string `json:"mobile_number"`
	Notes        string `json:"notes"`
	Active       bool   `json:"-"`
}
