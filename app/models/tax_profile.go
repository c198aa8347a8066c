package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxProfile holds a resident's declared income, property and utility data
// together with the derived tax obligations. One profile per user, enforced
// by the unique index on user_id. The derived fields (IncomeTaxDue,
// PropertyTax) are stored denormalized and recomputed on every write that
// touches their inputs.
type TaxProfile struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"userId"`
	User            *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FullName        string    `gorm:"type:varchar(150);not null" json:"fullName"`
	NIN             string    `gorm:"column:nin;type:varchar(30);not null" json:"nin"`
	PropertyID      string    `gorm:"type:varchar(50);not null" json:"propertyId"`
	PropertyAddress string    `gorm:"type:varchar(255);not null" json:"propertyAddress"`
	PropertyValue   int64     `gorm:"not null" json:"propertyValue"`
	PropertyTax     int64     `gorm:"not null" json:"propertyTax"`
	Income          int64     `gorm:"not null" json:"income"`
	IncomeTaxDue    int64     `gorm:"not null" json:"incomeTaxDue"`
	ElectricBill    int64     `gorm:"not null" json:"electricBill"`
	GasBill         int64     `gorm:"not null" json:"gasBill"`
	DueDate         time.Time `gorm:"type:date;not null" json:"dueDate"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// BeforeCreate assigns a UUID primary key when none is set.
func (p *TaxProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// MonthlyUtilities returns the combined monthly electric and gas bill.
func (p *TaxProfile) MonthlyUtilities() int64 {
	return p.ElectricBill + p.GasBill
}

// TotalTaxOwed returns the sum of both derived obligations.
func (p *TaxProfile) TotalTaxOwed() int64 {
	return p.IncomeTaxDue + p.PropertyTax
}
