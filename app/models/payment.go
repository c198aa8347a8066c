package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentTypeIncomeTax   = "income_tax"
	PaymentTypePropertyTax = "property_tax"
	PaymentTypeUtilityBill = "utility_bill"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	IntentStatusPending  = "pending"
	IntentStatusConsumed = "consumed"
)

// Payment records a confirmed charge against a resident's tax profile.
// GatewayIntentID carries a unique index so a client that replays the
// confirmation step cannot create a second row for the same charge.
type Payment struct {
	ID              string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string      `gorm:"index;type:varchar(64);not null" json:"userId"`
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TaxProfileID    string      `gorm:"index;type:varchar(36);not null" json:"taxProfileId"`
	TaxProfile      *TaxProfile `gorm:"foreignKey:TaxProfileID" json:"taxProfile,omitempty"`
	Amount          int64       `gorm:"not null" json:"amount"`
	PaymentType     string      `gorm:"type:varchar(20);not null" json:"paymentType"`
	GatewayIntentID *string     `gorm:"uniqueIndex;type:varchar(191);default:null" json:"gatewayIntentId"`
	Status          string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PaymentIntent is the durable record of a gateway-side payment intent,
// written before the client ever sees the client secret. It makes the
// two-phase payment flow recoverable: an intent that is confirmed at the
// gateway but never reported back remains visible here as pending.
type PaymentIntent struct {
	ID             string    `gorm:"primaryKey;type:varchar(191)" json:"id"`
	UserID         string    `gorm:"index;type:varchar(64);not null" json:"userId"`
	Amount         int64     `gorm:"not null" json:"amount"`
	PaymentType    string    `gorm:"type:varchar(20);not null" json:"paymentType"`
	IdempotencyKey string    `gorm:"uniqueIndex;type:varchar(36);not null" json:"idempotencyKey"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// ValidPaymentType reports whether t is one of the enumerated payment types.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeIncomeTax, PaymentTypePropertyTax, PaymentTypeUtilityBill:
		return true
	}
	return false
}
