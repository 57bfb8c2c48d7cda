package domain

import "time"

// TransactionRecord is an immutable ledger entry for a completed transfer.
// The id is assigned monotonically by the transaction log on append; a
// record exists if and only if the matching debit/credit pair committed.
type TransactionRecord struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	RecipientID int64     `json:"recipient_id"`
	Amount      int64     `json:"amount"` // In minor units (e.g., cents)
	CreatedAt   time.Time `json:"created_at"`
}

// Involves reports whether the account participated in the transfer,
// as sender or as recipient.
func (t *TransactionRecord) Involves(accountID int64) bool {
	return t.SenderID == accountID || t.RecipientID == accountID
}
