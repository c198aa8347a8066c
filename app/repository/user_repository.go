package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/civitax/CiviTax/app/models"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByID retrieves a user by the identity provider's subject id
func (r *userRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert inserts the user or, on id conflict, overwrites the claim-derived
// fields and bumps updated_at. Returns the persisted row.
func (r *userRepository) Upsert(user *models.User) (*models.User, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"first_name",
			"last_name",
			"profile_image_url",
			"role",
			"updated_at",
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	var persisted models.User
	if err := r.db.First(&persisted, "id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}

// Count returns the total number of users
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
