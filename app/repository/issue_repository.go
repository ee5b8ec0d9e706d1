package repository

import (
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
)

// issueRepository implements the IssueRepository interface
type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository instance
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Create creates a new issue in the database
func (r *issueRepository) Create(issue *models.Issue) error {
	return r.db.Create(issue).Error
}

// GetByID retrieves an issue by its ID
func (r *issueRepository) GetByID(id uint) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.First(&issue, id).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetByUUID retrieves an issue by its public UUID
func (r *issueRepository) GetByUUID(uuid string) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.Where("uuid = ?", uuid).First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// Update updates an existing issue in the database
func (r *issueRepository) Update(issue *models.Issue) error {
	return r.db.Save(issue).Error
}

// UpdateFields applies a partial update to an issue record
func (r *issueRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Issue{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateUpvotes sets the upvote counter and flag of an issue
func (r *issueRepository) UpdateUpvotes(id uint, upvotes int, isUpvoted bool) error {
	return r.db.Model(&models.Issue{}).Where("id = ?", id).Updates(map[string]interface{}{
		"upvotes":    upvotes,
		"is_upvoted": isUpvoted,
	}).Error
}

// Delete soft deletes an issue by its ID
func (r *issueRepository) Delete(id uint) error {
	return r.db.Delete(&models.Issue{}, id).Error
}

// List retrieves all issues, newest first
func (r *issueRepository) List() ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Order("created_at DESC").Find(&issues).Error
	return issues, err
}

// ListByReporter retrieves all issues reported by the given email address
func (r *issueRepository) ListByReporter(email string) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Where("reported_by_email = ?", email).
		Order("created_at DESC").Find(&issues).Error
	return issues, err
}

// ListRecentResolved retrieves the most recently resolved issues
func (r *issueRepository) ListRecentResolved(limit int) ([]models.Issue, error) {
	var issues []models.Issue
	err := r.db.Where("status = ?", models.IssueStatusResolved).
		Order("resolved_date DESC").Limit(limit).Find(&issues).Error
	return issues, err
}

// Count returns the total number of issues
func (r *issueRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Issue{}).Count(&count).Error
	return count, err
}
