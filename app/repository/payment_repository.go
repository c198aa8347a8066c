package repository

import (
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts a payment row. The unique index on gateway_intent_id turns
// a concurrent double-confirm into a constraint error instead of a second row.
func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// ListByUserID returns the user's payments ordered oldest first
func (r *paymentRepository) ListByUserID(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&payments).Error
	return payments, err
}

// GetByGatewayIntentID resolves a gateway intent reference to its recorded payment
func (r *paymentRepository) GetByGatewayIntentID(intentID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("gateway_intent_id = ?", intentID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpdateStatus overwrites the payment status and returns the updated row.
// Used by the admin reconciliation endpoint.
func (r *paymentRepository) UpdateStatus(paymentID, status string) (*models.Payment, error) {
	res := r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	// MySQL reports changed rows, so overriding to the current status
	// affects zero rows. The read back distinguishes that from a missing
	// payment.
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", paymentID).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetAllWithRelations returns every payment with its user and tax profile
// attached. Admin-only.
func (r *paymentRepository) GetAllWithRelations() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Preload("User").Preload("TaxProfile").Order("created_at ASC").Find(&payments).Error
	return payments, err
}

// CreateIntent persists the durable record of a gateway payment intent
func (r *paymentRepository) CreateIntent(intent *models.PaymentIntent) error {
	return r.db.Create(intent).Error
}

// GetIntent retrieves a payment intent by its gateway id
func (r *paymentRepository) GetIntent(id string) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.db.First(&intent, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// MarkIntentConsumed flags an intent as having produced a payment row
func (r *paymentRepository) MarkIntentConsumed(id string) error {
	return r.db.Model(&models.PaymentIntent{}).Where("id = ?", id).
		Update("status", models.IntentStatusConsumed).Error
}
