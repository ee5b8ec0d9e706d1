package models

import "time"

// Product types accepted by the fulfillment dispatcher. The values match the
// `type` metadata field the frontend attaches to checkout sessions.
const (
	ProductPremiumSubscription = "Premium Subscription"
	ProductBoostIssue          = "Boost Issue"
)

// Payment statuses as reported by the payment provider.
const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// Payment is an immutable ledger entry written once per reconciled checkout
// session. The unique index on TransactionID is the enforcement point for the
// at-most-one-record-per-transaction invariant; a racing duplicate insert
// fails on the index instead of succeeding twice.
type Payment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Amount        int64     `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(10);not null" json:"currency"`
	CustomerEmail string    `gorm:"type:varchar(200);index" json:"customerEmail"`
	UserID        uint      `gorm:"not null;index" json:"userId"`
	UserName      string    `gorm:"type:varchar(150)" json:"userName"`
	ProductType   string    `gorm:"type:varchar(50);not null" json:"type"`
	TransactionID string    `gorm:"type:varchar(191);not null;index:ux_payments_transaction_id,unique" json:"transactionId"`
	PaymentStatus string    `gorm:"type:varchar(20);not null" json:"paymentStatus"`
	PaidAt        time.Time `gorm:"type:timestamp;not null;index" json:"paidAt"`
	TrackingID    string    `gorm:"type:varchar(32);not null" json:"trackingId"`
	IssueID       *uint     `gorm:"default:null;index" json:"issueId,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}
