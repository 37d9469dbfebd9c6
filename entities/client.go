package entities

import "time"

type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"name"`
	ContactName  string    `gorm:"size:200" json:"contact_name"`
	Email        string    `gorm:"size:200" json:"email"`
	ContactEmail string    `gorm:"size:200" json:"contact_email"`
	Phone        string    `gorm:"size:50" json:"phone"`
	Company      string    `gorm:"size:200" json:"company"`
	Website      string    `gorm:"size:300" json:"website"`
	Address      string    `gorm:"type:text" json:"address"`
	CreatedAt    time.Time `json:"created_at"`

	Agreements []ServiceAgreement `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Proposals  []Proposal         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
