package domain

import "time"

// Account holds a user's monetary balance in minor currency units.
// The account id is the owning user's id; balance is never negative.
type Account struct {
	ID        int64     `json:"id"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanCover reports whether the account balance covers the given amount.
func (a *Account) CanCover(amount int64) bool {
	return a.Balance >= amount
}
