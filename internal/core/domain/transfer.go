package domain

// TransferRequest is the ephemeral input to a funds transfer. The sender id
// comes from the authenticated identity, never from the request body.
type TransferRequest struct {
	SenderID    int64
	RecipientID int64
	Amount      int64 // In minor units, must be >= 1
}
