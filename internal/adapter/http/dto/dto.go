package dto

import (
	"time"

	"account-ledger/internal/core/domain"
)

// SignUpRequest is the request body for user registration.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// SignInRequest is the request body for user login.
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TransferRequest is the request body for a funds transfer. Amount and
// recipient are checked semantically by the ledger service, so no binding
// constraints beyond shape; a zero amount or unknown recipient comes back
// as a validation violation, not a binding error.
type TransferRequest struct {
	RecipientID int64 `json:"recipient_id"`
	Amount      int64 `json:"amount"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// AuthResponse is the response body for sign-up, sign-in and token validation.
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Token  string       `json:"token"`
	Expiry int64        `json:"expiry"` // Unix timestamp
}

// TransactionResponse is the public view of a transfer record.
type TransactionResponse struct {
	ID          int64  `json:"id"`
	SenderID    int64  `json:"sender_id"`
	RecipientID int64  `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	CreatedAt   string `json:"created_at"`
}

// HistoryResponse splits an account's transfers by direction.
type HistoryResponse struct {
	Sent     []TransactionResponse `json:"sent"`
	Received []TransactionResponse `json:"received"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	AccountID int64 `json:"account_id"`
	Balance   int64 `json:"balance"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NewTransactionResponse maps a transfer record to its public view.
func NewTransactionResponse(rec *domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		ID:          rec.ID,
		SenderID:    rec.SenderID,
		RecipientID: rec.RecipientID,
		Amount:      rec.Amount,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
}

// NewTransactionResponses maps a slice of records, never returning nil.
func NewTransactionResponses(records []domain.TransactionRecord) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(records))
	for i := range records {
		out = append(out, NewTransactionResponse(&records[i]))
	}
	return out
}
