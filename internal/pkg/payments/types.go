package payments

// CheckoutSession is the provider-agnostic snapshot of an externally-owned
// checkout session, read once per reconciliation attempt. Metadata is kept
// raw; it is only parsed once the dispatcher decides a fulfillment needs it.
type CheckoutSession struct {
	SessionID     string
	TransactionID string
	PaymentStatus string
	AmountTotal   int64 // smallest currency unit
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
}

// SessionMetadata carries the purchase context the frontend attached when the
// checkout session was created. UserID and IssueID reference local entities
// and are validated against the store before any mutation.
type SessionMetadata struct {
	UserID       uint
	UserName     string
	ProductType  string
	TotalPayment int64
	IssueID      *uint // set only for issue boosts
}

// CheckoutInput is the normalized input for checkout session creation.
type CheckoutInput struct {
	UserID       uint   `json:"userID" validate:"required"`
	Name         string `json:"name" validate:"required,max=150"`
	Email        string `json:"email" validate:"required,email"`
	Cost         int64  `json:"cost" validate:"required,gt=0"`
	ProductType  string `json:"type" validate:"required"`
	TotalPayment int64  `json:"totalPayment" validate:"gte=0"`
	IssueID      *uint  `json:"issueId,omitempty"`
}

// Outcome classifies the result of a reconciliation attempt.
type Outcome string

const (
	// OutcomeFulfilled: new transaction, entitlement granted, ledger written.
	OutcomeFulfilled Outcome = "fulfilled"
	// OutcomeAlreadyProcessed: a ledger entry for this transaction already
	// existed; nothing was mutated.
	OutcomeAlreadyProcessed Outcome = "already_processed"
	// OutcomeSkipped: the session is unpaid or carries an unrecognized
	// product type; nothing was mutated and nothing was written.
	OutcomeSkipped Outcome = "skipped"
)
