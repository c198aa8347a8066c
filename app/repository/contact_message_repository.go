package repository

import (
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
)

// contactMessageRepository implements the ContactMessageRepository interface
type contactMessageRepository struct {
	db *gorm.DB
}

// NewContactMessageRepository creates a new contact message repository instance
func NewContactMessageRepository(db *gorm.DB) ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

// Create inserts a new support message
func (r *contactMessageRepository) Create(message *models.ContactMessage) error {
	return r.db.Create(message).Error
}

// ListByUserID returns the user's messages ordered oldest first
func (r *contactMessageRepository) ListByUserID(userID string) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}
