package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tuser579/CityFix/app/models"
	"gorm.io/gorm"
)

// ReconcileResult summarizes the outcome of one reconciliation attempt for
// the caller's confirmation display.
type ReconcileResult struct {
	Outcome       Outcome
	Amount        int64 // major currency units
	ProductType   string
	Currency      string
	TrackingID    string
	TransactionID string
	IssueID       *uint
	Citizen       *models.Citizen
	Payment       *models.Payment
}

// Service reconciles externally-confirmed checkout sessions: it verifies the
// session, guards against double processing, applies the purchased
// entitlement and appends the immutable ledger entry — exactly once per
// transaction.
type Service struct {
	verifier SessionVerifier
	repo     Repository
	log      zerolog.Logger
}

// NewService creates a reconciliation service from injected collaborators.
func NewService(verifier SessionVerifier, repo Repository, log zerolog.Logger) *Service {
	return &Service{verifier: verifier, repo: repo, log: log}
}

// NewServiceFromDB creates a reconciliation service from a GORM DB handle,
// with the Stripe-backed session verifier.
func NewServiceFromDB(db *gorm.DB, log zerolog.Logger) *Service {
	return NewService(NewStripeClientFromEnv(), NewRepository(db), log)
}

// Reconcile resolves a session reference and runs the full reconciliation
// sequence. The sequence per transaction: verify session, check the ledger,
// mint a tracking id, dispatch the fulfillment, write the ledger entry.
//
// Unpaid sessions and unrecognized product types are benign no-ops
// (OutcomeSkipped), not errors; the provider may still be settling.
func (s *Service) Reconcile(ctx context.Context, sessionRef string) (*ReconcileResult, error) {
	ref := strings.TrimSpace(sessionRef)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty session reference", ErrSessionLookup)
	}

	sess, err := s.verifier.RetrieveSession(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionLookup, err)
	}

	// A session without a payment intent has not been charged; treat it like
	// an unpaid session.
	if sess.TransactionID == "" {
		return &ReconcileResult{Outcome: OutcomeSkipped}, nil
	}

	// Fast-path idempotency check. The unique index on the ledger remains
	// the authoritative guard for races; see fulfill.
	existing, err := s.repo.GetPaymentByTransactionID(sess.TransactionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: ledger lookup: %v", ErrMutation, err)
	}
	if existing != nil {
		return alreadyProcessedResult(existing), nil
	}

	if sess.PaymentStatus != models.PaymentStatusPaid {
		return &ReconcileResult{Outcome: OutcomeSkipped}, nil
	}

	switch strings.TrimSpace(sess.Metadata["type"]) {
	case models.ProductPremiumSubscription:
		return s.fulfillPremium(sess)
	case models.ProductBoostIssue:
		return s.fulfillBoost(sess)
	default:
		s.log.Warn().
			Str("transaction_id", sess.TransactionID).
			Str("product_type", sess.Metadata["type"]).
			Msg("paid session with unrecognized product type, skipping fulfillment")
		return &ReconcileResult{Outcome: OutcomeSkipped}, nil
	}
}

// fulfillPremium grants premium status: isPremium, trackingId and the
// declared totalPayment are written to the citizen (overwrite, not
// increment), then the ledger entry is appended.
func (s *Service) fulfillPremium(sess *CheckoutSession) (*ReconcileResult, error) {
	md, err := parseSessionMetadata(sess.Metadata)
	if err != nil {
		return nil, err
	}

	citizen, err := s.repo.GetCitizenByID(md.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: citizen %d", ErrUnknownCitizen, md.UserID)
		}
		return nil, fmt.Errorf("%w: citizen lookup: %v", ErrMutation, err)
	}

	trackingID, err := GenerateTrackingID()
	if err != nil {
		return nil, fmt.Errorf("%w: tracking id: %v", ErrMutation, err)
	}

	if err := s.repo.ApplyPremium(md.UserID, trackingID, md.TotalPayment); err != nil {
		return nil, fmt.Errorf("%w: apply premium: %v", ErrMutation, err)
	}
	citizen.IsPremium = true
	citizen.TrackingID = &trackingID
	citizen.TotalPayment = md.TotalPayment

	return s.writeLedger(sess, md, trackingID, citizen, nil)
}

// fulfillBoost marks the issue as boosted and overwrites the citizen's
// totalPayment, then appends the ledger entry including the issue id.
func (s *Service) fulfillBoost(sess *CheckoutSession) (*ReconcileResult, error) {
	md, err := parseSessionMetadata(sess.Metadata)
	if err != nil {
		return nil, err
	}

	citizen, err := s.repo.GetCitizenByID(md.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: citizen %d", ErrUnknownCitizen, md.UserID)
		}
		return nil, fmt.Errorf("%w: citizen lookup: %v", ErrMutation, err)
	}
	if _, err := s.repo.GetIssueByID(*md.IssueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: issue %d", ErrUnknownIssue, *md.IssueID)
		}
		return nil, fmt.Errorf("%w: issue lookup: %v", ErrMutation, err)
	}

	trackingID, err := GenerateTrackingID()
	if err != nil {
		return nil, fmt.Errorf("%w: tracking id: %v", ErrMutation, err)
	}

	if err := s.repo.SetCitizenTotalPayment(md.UserID, md.TotalPayment); err != nil {
		return nil, fmt.Errorf("%w: set total payment: %v", ErrMutation, err)
	}
	citizen.TotalPayment = md.TotalPayment

	if err := s.repo.MarkIssueBoosted(*md.IssueID); err != nil {
		return nil, fmt.Errorf("%w: mark issue boosted: %v", ErrMutation, err)
	}

	return s.writeLedger(sess, md, trackingID, citizen, md.IssueID)
}

// writeLedger appends the immutable ledger entry. If the conditional insert
// reports the entry already existed, a concurrent reconciliation of the same
// transaction won the race and this attempt resolves to the already-processed
// outcome. A write failure here leaves applied mutations without a ledger
// entry; it is logged for manual reconciliation because an automatic retry
// would risk double-mutation.
func (s *Service) writeLedger(sess *CheckoutSession, md SessionMetadata, trackingID string, citizen *models.Citizen, issueID *uint) (*ReconcileResult, error) {
	payment := &models.Payment{
		Amount:        sess.AmountTotal / 100,
		Currency:      sess.Currency,
		CustomerEmail: sess.CustomerEmail,
		UserID:        md.UserID,
		UserName:      md.UserName,
		ProductType:   md.ProductType,
		TransactionID: sess.TransactionID,
		PaymentStatus: sess.PaymentStatus,
		PaidAt:        time.Now().UTC(),
		TrackingID:    trackingID,
		IssueID:       issueID,
	}

	created, stored, err := s.repo.CreatePaymentIfNotExists(payment)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("transaction_id", sess.TransactionID).
			Str("tracking_id", trackingID).
			Str("product_type", md.ProductType).
			Uint("user_id", md.UserID).
			Msg("ledger write failed after fulfillment mutations, manual reconciliation required")
		return nil, fmt.Errorf("%w: transaction %s: %v", ErrLedgerWrite, sess.TransactionID, err)
	}
	if !created {
		return alreadyProcessedResult(stored), nil
	}

	return &ReconcileResult{
		Outcome:       OutcomeFulfilled,
		Amount:        stored.Amount,
		ProductType:   stored.ProductType,
		Currency:      stored.Currency,
		TrackingID:    stored.TrackingID,
		TransactionID: stored.TransactionID,
		IssueID:       stored.IssueID,
		Citizen:       citizen,
		Payment:       stored,
	}, nil
}

func alreadyProcessedResult(p *models.Payment) *ReconcileResult {
	return &ReconcileResult{
		Outcome:       OutcomeAlreadyProcessed,
		TrackingID:    p.TrackingID,
		TransactionID: p.TransactionID,
		Payment:       p,
	}
}
