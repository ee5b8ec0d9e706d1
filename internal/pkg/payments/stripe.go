package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v83"
	"github.com/tuser579/CityFix/internal/pkg/env"
)

// Checkout currency. The frontend sends costs in whole taka; Stripe expects
// the smallest currency unit.
const checkoutCurrency = "bdt"

// SessionVerifier retrieves the authoritative state of a checkout session
// from the payment provider.
type SessionVerifier interface {
	RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// StripeClient wraps the Stripe API for checkout session creation and
// retrieval.
type StripeClient struct {
	client     *stripe.Client
	successURL string
	cancelURL  string
}

// NewStripeClientFromEnv builds a Stripe client from STRIPE_SECRET and
// SITE_DOMAIN.
func NewStripeClientFromEnv() *StripeClient {
	domain := strings.TrimRight(env.GetEnv("SITE_DOMAIN", ""), "/")

	return &StripeClient{
		client:     stripe.NewClient(strings.TrimSpace(env.GetEnv("STRIPE_SECRET", ""))),
		successURL: domain + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  domain + "/dashboard/payment-cancelled",
	}
}

// CreateCheckoutSession opens a hosted checkout session for a premium
// subscription or issue boost and returns its URL. The purchase context is
// carried as session metadata and read back during reconciliation.
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (string, error) {
	params := &stripe.CheckoutSessionCreateParams{
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String(checkoutCurrency),
					UnitAmount: stripe.Int64(in.Cost * 100),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(in.Email),
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(c.successURL),
		CancelURL:     stripe.String(c.cancelURL),
	}
	params.AddMetadata("userId", strconv.FormatUint(uint64(in.UserID), 10))
	params.AddMetadata("userName", in.Name)
	params.AddMetadata("type", in.ProductType)
	params.AddMetadata("totalPayment", strconv.FormatInt(in.TotalPayment, 10))
	if in.IssueID != nil {
		params.AddMetadata("issueId", strconv.FormatUint(uint64(*in.IssueID), 10))
	}

	sess, err := c.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session create failed: %w", err)
	}
	return sess.URL, nil
}

// RetrieveSession fetches the session from Stripe and normalizes it into the
// provider-agnostic snapshot used by the reconciliation service.
func (c *StripeClient) RetrieveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, errors.New("session id is required")
	}

	sess, err := c.client.V1CheckoutSessions.Retrieve(ctx, id, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session retrieve failed: %w", err)
	}

	out := &CheckoutSession{
		SessionID:     sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
		CustomerEmail: sess.CustomerEmail,
		Metadata:      sess.Metadata,
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	}

	return out, nil
}
