package payments

import (
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the DB operations used by the reconciliation service.
type Repository interface {
	GetCitizenByID(id uint) (*models.Citizen, error)
	ApplyPremium(citizenID uint, trackingID string, totalPayment int64) error
	SetCitizenTotalPayment(citizenID uint, totalPayment int64) error
	GetIssueByID(id uint) (*models.Issue, error)
	MarkIssueBoosted(issueID uint) error
	GetPaymentByTransactionID(transactionID string) (*models.Payment, error)
	CreatePaymentIfNotExists(payment *models.Payment) (bool, *models.Payment, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a reconciliation repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetCitizenByID(id uint) (*models.Citizen, error) {
	var citizen models.Citizen
	if err := r.db.First(&citizen, id).Error; err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *gormRepository) ApplyPremium(citizenID uint, trackingID string, totalPayment int64) error {
	return r.db.Model(&models.Citizen{}).Where("id = ?", citizenID).Updates(map[string]interface{}{
		"is_premium":    true,
		"tracking_id":   trackingID,
		"total_payment": totalPayment,
	}).Error
}

func (r *gormRepository) SetCitizenTotalPayment(citizenID uint, totalPayment int64) error {
	return r.db.Model(&models.Citizen{}).Where("id = ?", citizenID).
		Update("total_payment", totalPayment).Error
}

func (r *gormRepository) GetIssueByID(id uint) (*models.Issue, error) {
	var issue models.Issue
	if err := r.db.First(&issue, id).Error; err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *gormRepository) MarkIssueBoosted(issueID uint) error {
	return r.db.Model(&models.Issue{}).Where("id = ?", issueID).
		Update("is_boosted", true).Error
}

func (r *gormRepository) GetPaymentByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreatePaymentIfNotExists inserts the ledger entry with a conflict-ignoring
// clause on the transaction id unique index, then re-reads the stored row.
// The index, not the application-level lookup, is what enforces at most one
// ledger entry per transaction under concurrent reconciliation.
func (r *gormRepository) CreatePaymentIfNotExists(payment *models.Payment) (bool, *models.Payment, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).Create(payment)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Payment
	if err := r.db.Where("transaction_id = ?", payment.TransactionID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}
