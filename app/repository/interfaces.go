package repository

import (
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
)

// CitizenRepository defines the interface for citizen-related database operations
type CitizenRepository interface {
	Create(citizen *models.Citizen) error
	GetByID(id uint) (*models.Citizen, error)
	GetByEmail(email string) (*models.Citizen, error)
	Update(citizen *models.Citizen) error
	UpdateFields(id uint, fields map[string]interface{}) error
	UpdatePhoto(id uint, photoURL string) error
	Delete(id uint) error
	Count() (int64, error)
}

// IssueRepository defines the interface for issue-related database operations
type IssueRepository interface {
	Create(issue *models.Issue) error
	GetByID(id uint) (*models.Issue, error)
	GetByUUID(uuid string) (*models.Issue, error)
	Update(issue *models.Issue) error
	UpdateFields(id uint, fields map[string]interface{}) error
	UpdateUpvotes(id uint, upvotes int, isUpvoted bool) error
	Delete(id uint) error
	List() ([]models.Issue, error)
	ListByReporter(email string) ([]models.Issue, error)
	ListRecentResolved(limit int) ([]models.Issue, error)
	Count() (int64, error)
}

// ReviewRepository defines the interface for review-related database operations
type ReviewRepository interface {
	Create(review *models.Review) error
	List() ([]models.Review, error)
}

// PaymentRepository defines the interface for payment-ledger database operations.
// Ledger entries are append-only; there is no Update.
type PaymentRepository interface {
	GetByTransactionID(transactionID string) (*models.Payment, error)
	CreateIfNotExists(payment *models.Payment) (bool, *models.Payment, error)
	ListByCustomerEmail(email string) ([]models.Payment, error)
	List() ([]models.Payment, error)
	Delete(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	Citizen CitizenRepository
	Issue   IssueRepository
	Review  ReviewRepository
	Payment PaymentRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Citizen: NewCitizenRepository(db),
		Issue:   NewIssueRepository(db),
		Review:  NewReviewRepository(db),
		Payment: NewPaymentRepository(db),
	}
}
