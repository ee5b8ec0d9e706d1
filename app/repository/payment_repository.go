package repository

import (
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// GetByTransactionID retrieves a ledger entry by provider transaction id
func (r *paymentRepository) GetByTransactionID(transactionID string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreateIfNotExists inserts a ledger entry unless one already exists for the
// same transaction id. A racing duplicate insert lands on the unique index and
// is ignored; the stored entry is re-read so the caller always gets the
// winning record. Returns created=false when the entry already existed.
func (r *paymentRepository) CreateIfNotExists(payment *models.Payment) (bool, *models.Payment, error) {
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

// ListByCustomerEmail retrieves ledger entries for a customer, newest first
func (r *paymentRepository) ListByCustomerEmail(email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("customer_email = ?", email).
		Order("paid_at DESC").Find(&payments).Error
	return payments, err
}

// List retrieves all ledger entries, newest first
func (r *paymentRepository) List() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("paid_at DESC").Find(&payments).Error
	return payments, err
}

// Delete removes a ledger entry by ID. Administrative operation only; the
// reconciliation core never deletes.
func (r *paymentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Payment{}, id).Error
}
