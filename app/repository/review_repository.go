package repository

import (
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
)

// reviewRepository implements the ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review in the database
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// List retrieves all reviews, newest first
func (r *reviewRepository) List() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}
