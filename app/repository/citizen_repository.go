package repository

import (
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
)

// citizenRepository implements the CitizenRepository interface
type citizenRepository struct {
	db *gorm.DB
}

// NewCitizenRepository creates a new citizen repository instance
func NewCitizenRepository(db *gorm.DB) CitizenRepository {
	return &citizenRepository{db: db}
}

// Create creates a new citizen in the database
func (r *citizenRepository) Create(citizen *models.Citizen) error {
	return r.db.Create(citizen).Error
}

// GetByID retrieves a citizen by their ID
func (r *citizenRepository) GetByID(id uint) (*models.Citizen, error) {
	var citizen models.Citizen
	err := r.db.First(&citizen, id).Error
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

// GetByEmail retrieves a citizen by their email address
func (r *citizenRepository) GetByEmail(email string) (*models.Citizen, error) {
	var citizen models.Citizen
	err := r.db.Where("email = ?", email).First(&citizen).Error
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

// Update updates an existing citizen in the database
func (r *citizenRepository) Update(citizen *models.Citizen) error {
	return r.db.Save(citizen).Error
}

// UpdateFields applies a partial update to a citizen record
func (r *citizenRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Citizen{}).Where("id = ?", id).Updates(fields).Error
}

// UpdatePhoto updates only the photo URL of a citizen
func (r *citizenRepository) UpdatePhoto(id uint, photoURL string) error {
	return r.db.Model(&models.Citizen{}).Where("id = ?", id).
		Update("photo_url", photoURL).Error
}

// Delete soft deletes a citizen by their ID
func (r *citizenRepository) Delete(id uint) error {
	return r.db.Delete(&models.Citizen{}, id).Error
}

// Count returns the total number of citizens
func (r *citizenRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Citizen{}).Count(&count).Error
	return count, err
}
