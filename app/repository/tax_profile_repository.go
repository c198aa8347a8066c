package repository

import (
	"gorm.io/gorm"

	"github.com/civitax/CiviTax/app/models"
)

// taxProfileRepository implements the TaxProfileRepository interface
type taxProfileRepository struct {
	db *gorm.DB
}

// NewTaxProfileRepository creates a new tax profile repository instance
func NewTaxProfileRepository(db *gorm.DB) TaxProfileRepository {
	return &taxProfileRepository{db: db}
}

// GetByUserID retrieves the profile owned by the given user. The unique
// index on user_id guarantees at most one row.
func (r *taxProfileRepository) GetByUserID(userID string) (*models.TaxProfile, error) {
	var profile models.TaxProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a new profile. Fails with a duplicate-key error if the
// user already has one.
func (r *taxProfileRepository) Create(profile *models.TaxProfile) error {
	return r.db.Create(profile).Error
}

// Update applies a partial column update to the user's profile and returns
// the resulting row.
func (r *taxProfileRepository) Update(userID string, updates map[string]interface{}) (*models.TaxProfile, error) {
	res := r.db.Model(&models.TaxProfile{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	// MySQL reports changed rows, not matched rows, so a same-value update
	// affects zero rows. The read back settles whether the profile exists.
	return r.GetByUserID(userID)
}

// GetAllWithUsers returns every profile with its owning user attached.
// Admin-only; no pagination, matching the admin dashboard contract.
func (r *taxProfileRepository) GetAllWithUsers() ([]models.TaxProfile, error) {
	var profiles []models.TaxProfile
	err := r.db.Preload("User").Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

// Count returns the total number of tax profiles
func (r *taxProfileRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.TaxProfile{}).Count(&count).Error
	return count, err
}
