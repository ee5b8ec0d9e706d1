package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tuser579/CityFix/app/models"
)

type fakeVerifier struct {
	sessions map[string]*CheckoutSession
	err      error
}

func (f *fakeVerifier) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	sess, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.New("no such checkout session")
	}
	return sess, nil
}

type fakeRepository struct {
	citizens  map[uint]*models.Citizen
	issues    map[uint]*models.Issue
	ledger    map[string]*models.Payment
	nextID    uint
	ledgerErr error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		citizens: make(map[uint]*models.Citizen),
		issues:   make(map[uint]*models.Issue),
		ledger:   make(map[string]*models.Payment),
	}
}

func (f *fakeRepository) GetCitizenByID(id uint) (*models.Citizen, error) {
	c, ok := f.citizens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeRepository) ApplyPremium(citizenID uint, trackingID string, totalPayment int64) error {
	c, ok := f.citizens[citizenID]
	if !ok {
		return nil
	}
	c.IsPremium = true
	c.TrackingID = &trackingID
	c.TotalPayment = totalPayment
	return nil
}

func (f *fakeRepository) SetCitizenTotalPayment(citizenID uint, totalPayment int64) error {
	if c, ok := f.citizens[citizenID]; ok {
		c.TotalPayment = totalPayment
	}
	return nil
}

func (f *fakeRepository) GetIssueByID(id uint) (*models.Issue, error) {
	i, ok := f.issues[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *i
	return &copied, nil
}

func (f *fakeRepository) MarkIssueBoosted(issueID uint) error {
	if i, ok := f.issues[issueID]; ok {
		i.IsBoosted = true
	}
	return nil
}

func (f *fakeRepository) GetPaymentByTransactionID(transactionID string) (*models.Payment, error) {
	p, ok := f.ledger[transactionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) CreatePaymentIfNotExists(payment *models.Payment) (bool, *models.Payment, error) {
	if f.ledgerErr != nil {
		return false, nil, f.ledgerErr
	}
	if existing, ok := f.ledger[payment.TransactionID]; ok {
		copied := *existing
		return false, &copied, nil
	}
	f.nextID++
	stored := *payment
	stored.ID = f.nextID
	f.ledger[payment.TransactionID] = &stored
	copied := stored
	return true, &copied, nil
}

func premiumSession(transactionID string) *CheckoutSession {
	return &CheckoutSession{
		SessionID:     "cs_test_premium",
		TransactionID: transactionID,
		PaymentStatus: models.PaymentStatusPaid,
		AmountTotal:   50000,
		Currency:      "bdt",
		CustomerEmail: "rahim@example.com",
		Metadata: map[string]string{
			"userId":       "7",
			"userName":     "Rahim",
			"type":         models.ProductPremiumSubscription,
			"totalPayment": "500",
		},
	}
}

func boostSession(transactionID string) *CheckoutSession {
	return &CheckoutSession{
		SessionID:     "cs_test_boost",
		TransactionID: transactionID,
		PaymentStatus: models.PaymentStatusPaid,
		AmountTotal:   20000,
		Currency:      "bdt",
		CustomerEmail: "rahim@example.com",
		Metadata: map[string]string{
			"userId":       "7",
			"userName":     "Rahim",
			"type":         models.ProductBoostIssue,
			"totalPayment": "200",
			"issueId":      "42",
		},
	}
}

func newTestService(repo Repository, sessions ...*CheckoutSession) *Service {
	verifier := &fakeVerifier{sessions: make(map[string]*CheckoutSession)}
	for _, s := range sessions {
		verifier.sessions[s.SessionID] = s
	}
	return NewService(verifier, repo, zerolog.Nop())
}

func TestReconcile_PremiumFulfillment(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	svc := newTestService(repo, premiumSession("pi_premium_1"))

	result, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFulfilled, result.Outcome)
	assert.Equal(t, int64(500), result.Amount)
	assert.Equal(t, models.ProductPremiumSubscription, result.ProductType)
	assert.Equal(t, "bdt", result.Currency)
	assert.Equal(t, "pi_premium_1", result.TransactionID)
	assert.Nil(t, result.IssueID)

	citizen := repo.citizens[7]
	assert.True(t, citizen.IsPremium)
	assert.Equal(t, int64(500), citizen.TotalPayment)
	require.NotNil(t, citizen.TrackingID)
	assert.Equal(t, result.TrackingID, *citizen.TrackingID)

	stored := repo.ledger["pi_premium_1"]
	require.NotNil(t, stored)
	assert.Equal(t, models.ProductPremiumSubscription, stored.ProductType)
	assert.Equal(t, result.TrackingID, stored.TrackingID)
	assert.Nil(t, stored.IssueID)
	assert.Equal(t, "rahim@example.com", stored.CustomerEmail)
}

func TestReconcile_BoostFulfillment(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	repo.issues[42] = &models.Issue{ID: 42, Title: "Broken streetlight"}
	svc := newTestService(repo, boostSession("pi_boost_1"))

	result, err := svc.Reconcile(context.Background(), "cs_test_boost")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFulfilled, result.Outcome)
	require.NotNil(t, result.IssueID)
	assert.Equal(t, uint(42), *result.IssueID)

	assert.True(t, repo.issues[42].IsBoosted)
	assert.Equal(t, int64(200), repo.citizens[7].TotalPayment)
	assert.False(t, repo.citizens[7].IsPremium, "boost must not grant premium")

	stored := repo.ledger["pi_boost_1"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.IssueID)
	assert.Equal(t, uint(42), *stored.IssueID)
}

func TestReconcile_SecondCallShortCircuits(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	svc := newTestService(repo, premiumSession("pi_repeat"))

	first, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)
	require.Equal(t, OutcomeFulfilled, first.Outcome)

	second, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadyProcessed, second.Outcome)
	assert.Equal(t, first.TrackingID, second.TrackingID)
	assert.Equal(t, "pi_repeat", second.TransactionID)
	assert.Len(t, repo.ledger, 1, "exactly one ledger entry per transaction")
}

func TestReconcile_RacingDuplicateInsert(t *testing.T) {
	t.Parallel()

	// The ledger already holds an entry for the transaction, but the
	// fast-path lookup misses it: simulates a concurrent reconciliation
	// winning the race between lookup and insert.
	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	repo.ledger["pi_race"] = &models.Payment{
		TransactionID: "pi_race",
		TrackingID:    "CITY-20260829-AB12CD",
	}

	svc := newTestService(&racingRepository{fakeRepository: repo}, premiumSession("pi_race"))

	result, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyProcessed, result.Outcome)
	assert.Equal(t, "CITY-20260829-AB12CD", result.TrackingID)
}

// racingRepository misses the fast-path ledger lookup but honors the unique
// constraint on insert.
type racingRepository struct {
	*fakeRepository
}

func (r *racingRepository) GetPaymentByTransactionID(transactionID string) (*models.Payment, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestReconcile_UnpaidSession(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	sess := premiumSession("pi_unpaid")
	sess.PaymentStatus = models.PaymentStatusUnpaid
	svc := newTestService(repo, sess)

	result, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.False(t, repo.citizens[7].IsPremium)
	assert.Empty(t, repo.ledger)
}

func TestReconcile_UnrecognizedProductType(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	sess := premiumSession("pi_gift")
	sess.Metadata["type"] = "Gift Card"
	svc := newTestService(repo, sess)

	result, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)

	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.False(t, repo.citizens[7].IsPremium)
	assert.Empty(t, repo.ledger)
}

func TestReconcile_MissingPaymentIntent(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	sess := premiumSession("")
	svc := newTestService(repo, sess)

	result, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Empty(t, repo.ledger)
}

func TestReconcile_UnknownCitizen(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := newTestService(repo, premiumSession("pi_ghost"))

	_, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCitizen)
	assert.Empty(t, repo.ledger, "no ledger entry without fulfillment")
}

func TestReconcile_UnknownIssue(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	svc := newTestService(repo, boostSession("pi_ghost_issue"))

	_, err := svc.Reconcile(context.Background(), "cs_test_boost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownIssue)
	assert.Empty(t, repo.ledger)
	assert.Equal(t, int64(0), repo.citizens[7].TotalPayment,
		"targets are validated before any mutation")
}

func TestReconcile_SessionLookupFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	svc := NewService(&fakeVerifier{err: errors.New("provider unreachable")}, repo, zerolog.Nop())

	_, err := svc.Reconcile(context.Background(), "cs_gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionLookup)
	assert.Empty(t, repo.ledger)
}

func TestReconcile_EmptySessionReference(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepository())
	_, err := svc.Reconcile(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrSessionLookup)
}

func TestReconcile_LedgerWriteFailure(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	repo.citizens[7] = &models.Citizen{ID: 7, Name: "Rahim", Email: "rahim@example.com"}
	repo.ledgerErr = errors.New("connection reset")
	svc := newTestService(repo, premiumSession("pi_ledger_down"))

	_, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLedgerWrite)

	// The known partial-fulfillment window: mutations applied, no ledger
	// entry. Surfaced as ErrLedgerWrite and logged for manual reconciliation.
	assert.True(t, repo.citizens[7].IsPremium)
	assert.Empty(t, repo.ledger)
}

func TestReconcile_BadMetadata(t *testing.T) {
	t.Parallel()

	repo := newFakeRepository()
	sess := premiumSession("pi_bad_meta")
	sess.Metadata["userId"] = "not-a-number"
	svc := newTestService(repo, sess)

	_, err := svc.Reconcile(context.Background(), "cs_test_premium")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadMetadata)
	assert.Empty(t, repo.ledger)
}
