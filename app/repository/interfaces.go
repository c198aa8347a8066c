package repository

import (
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
)

// UserRepository defines the interface for user-related database operations.
// Users arrive from the identity provider, so there is no plain Create:
// every successful sign-in upserts the row.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	Upsert(user *models.User) (*models.User, error)
	Count() (int64, error)
}

// TaxProfileRepository defines the interface for tax profile operations.
// Update takes a column map so partial updates only touch the fields the
// caller actually sent.
type TaxProfileRepository interface {
	GetByUserID(userID string) (*models.TaxProfile, error)
	Create(profile *models.TaxProfile) error
	Update(userID string, updates map[string]interface{}) (*models.TaxProfile, error)
	GetAllWithUsers() ([]models.TaxProfile, error)
	Count() (int64, error)
}

// ContactMessageRepository defines the interface for support messages.
type ContactMessageRepository interface {
	Create(message *models.ContactMessage) error
	ListByUserID(userID string) ([]models.ContactMessage, error)
}

// PaymentRepository defines the interface for payment rows and the durable
// payment-intent ledger.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	ListByUserID(userID string) ([]models.Payment, error)
	GetByGatewayIntentID(intentID string) (*models.Payment, error)
	UpdateStatus(paymentID, status string) (*models.Payment, error)
	GetAllWithRelations() ([]models.Payment, error)

	CreateIntent(intent *models.PaymentIntent) error
	GetIntent(id string) (*models.PaymentIntent, error)
	MarkIntentConsumed(id string) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User           UserRepository
	TaxProfile     TaxProfileRepository
	ContactMessage ContactMessageRepository
	Payment        PaymentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:           NewUserRepository(db),
		TaxProfile:     NewTaxProfileRepository(db),
		ContactMessage: NewContactMessageRepository(db),
		Payment:        NewPaymentRepository(db),
	}
}
