package domain

import "time"

// Entry holds balance change data for an account.
// Amount is negative for debits and positive for credits.
type Entry struct {
	ID          int64     `json:"id"`
	AccountID   int32     `json:"account_id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
