package service

import "account-ledger/internal/core/domain"

// Violation messages returned to callers verbatim, in check order.
const (
	ViolationAmountTooSmall    = "amount must be at least 1"
	ViolationSelfTransfer      = "self-transfer not allowed"
	ViolationSenderMissing     = "sender account does not exist"
	ViolationRecipientMissing  = "recipient does not exist"
	ViolationInsufficientFunds = "insufficient funds"
)

// ValidateTransfer checks a transfer request against the given account
// snapshots. It is pure: no mutation, no side effects, and the same inputs
// always produce the same verdict. Every rule is evaluated (no
// short-circuiting) so the caller receives the complete ordered violation
// list in one pass. An empty result approves the transfer as of the
// snapshot read; the ledger service re-runs this gate on every commit
// attempt against fresh snapshots.
func ValidateTransfer(req domain.TransferRequest, sender, recipient *domain.Account) []string {
	var violations []string

	if req.Amount < 1 {
		violations = append(violations, ViolationAmountTooSmall)
	}

	if req.SenderID == req.RecipientID {
		violations = append(violations, ViolationSelfTransfer)
	}

	if sender == nil {
		violations = append(violations, ViolationSenderMissing)
	}

	if recipient == nil {
		violations = append(violations, ViolationRecipientMissing)
	}

	if sender != nil && !sender.CanCover(req.Amount) {
		violations = append(violations, ViolationInsufficientFunds)
	}

	return violations
}
