package controllers

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tuser579/CityFix/app/repository"
	"github.com/tuser579/CityFix/internal/pkg/database"
	"github.com/tuser579/CityFix/internal/pkg/middleware"
	"github.com/tuser579/CityFix/internal/pkg/payments"
)

var paymentLog = zerolog.New(os.Stderr).With().Timestamp().Str("component", "payments").Logger()

// HandleCreateCheckoutSession opens a hosted checkout session for a premium
// subscription or issue boost purchase and returns its URL.
func HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var in payments.CheckoutInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid checkout payload")
	}
	if err := validate.Struct(&in); err != nil {
		return badRequest(c, err.Error())
	}

	client := payments.NewStripeClientFromEnv()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	url, err := client.CreateCheckoutSession(ctx, in)
	if err != nil {
		paymentLog.Error().Err(err).Uint("user_id", in.UserID).Msg("checkout session creation failed")
		return serverError(c, "could not create checkout session")
	}
	return c.JSON(fiber.Map{"url": url})
}

// HandlePaymentSuccess reconciles a completed checkout session: verifies it
// with the provider, applies the purchased entitlement exactly once and
// records the immutable ledger entry. Safe to call repeatedly for the same
// session; duplicates short-circuit to the stored outcome.
func HandlePaymentSuccess(c *fiber.Ctx) error {
	sessionID := strings.TrimSpace(c.Query("session_id"))
	if sessionID == "" {
		return badRequest(c, "session_id query parameter is required")
	}

	svc := payments.NewServiceFromDB(database.GetDB(), paymentLog)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := svc.Reconcile(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrSessionLookup):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error":   "session_lookup_failed",
				"message": "checkout session could not be verified, retry is safe",
			})
		case errors.Is(err, payments.ErrBadMetadata),
			errors.Is(err, payments.ErrUnknownCitizen),
			errors.Is(err, payments.ErrUnknownIssue):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "invalid_session_target",
				"message": err.Error(),
			})
		case errors.Is(err, payments.ErrLedgerWrite):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "ledger_write_failed",
				"message": "payment applied but not recorded, do not retry; contact support",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "fulfillment_failed",
				"message": "payment could not be reconciled",
			})
		}
	}

	switch result.Outcome {
	case payments.OutcomeAlreadyProcessed:
		return c.JSON(fiber.Map{
			"message":       "already exists",
			"transactionId": result.TransactionID,
			"trackingId":    result.TrackingID,
		})
	case payments.OutcomeFulfilled:
		resp := fiber.Map{
			"success":       true,
			"amount":        result.Amount,
			"type":          result.ProductType,
			"currency":      result.Currency,
			"modifyUser":    result.Citizen,
			"trackingId":    result.TrackingID,
			"transactionId": result.TransactionID,
			"paymentInfo":   result.Payment,
		}
		if result.IssueID != nil {
			resp["issueId"] = *result.IssueID
		}
		return c.JSON(resp)
	default:
		return c.JSON(fiber.Map{"success": false})
	}
}

// HandleMyPayments lists the ledger entries of the authenticated caller.
// Registered behind middleware.RequireAuth; the email query parameter must
// match the verified identity.
func HandleMyPayments(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.Query("email"))

	repo := repository.GetGlobalRepositories().Payment
	if email == "" {
		result, err := repo.List()
		if err != nil {
			return serverError(c, "could not load payments")
		}
		return c.JSON(result)
	}

	if email != middleware.VerifiedEmail(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "forbidden access"})
	}

	result, err := repo.ListByCustomerEmail(email)
	if err != nil {
		return serverError(c, "could not load payments")
	}
	return c.JSON(result)
}

// HandleDeletePayment removes a ledger entry. Administrative escape hatch;
// the reconciliation flow itself never deletes.
func HandleDeletePayment(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return badRequest(c, "invalid id")
	}

	repo := repository.GetGlobalRepositories().Payment
	if err := repo.Delete(id); err != nil {
		return serverError(c, "could not delete payment")
	}
	return c.JSON(fiber.Map{"success": true})
}
