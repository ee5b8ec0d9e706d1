package payments

import "errors"

var (
	// ErrSessionLookup: the checkout session could not be retrieved from the
	// provider. Fatal to the attempt; nothing was mutated, safe to retry.
	ErrSessionLookup = errors.New("checkout session lookup failed")

	// ErrBadMetadata: the session metadata is malformed (non-numeric ids,
	// missing issue id on a boost). Nothing was mutated.
	ErrBadMetadata = errors.New("invalid checkout session metadata")

	// ErrUnknownCitizen: the citizen referenced by the session metadata does
	// not exist. Nothing was mutated, no ledger entry was written.
	ErrUnknownCitizen = errors.New("citizen referenced by session metadata not found")

	// ErrUnknownIssue: the issue referenced by a boost session does not
	// exist. Nothing was mutated, no ledger entry was written.
	ErrUnknownIssue = errors.New("issue referenced by session metadata not found")

	// ErrMutation: an entitlement mutation failed mid-fulfillment, before the
	// ledger write. Retrying is the caller's decision; no ledger entry exists
	// for the transaction yet.
	ErrMutation = errors.New("fulfillment mutation failed")

	// ErrLedgerWrite: the ledger write failed after the entitlement mutations
	// succeeded. A retry would re-apply mutations; the failure is logged for
	// manual reconciliation instead of retried automatically.
	ErrLedgerWrite = errors.New("payment ledger write failed after fulfillment")
)
