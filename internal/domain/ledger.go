package domain

import "errors"

var (
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates non-positive amount.
	ErrNegativeAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSelfTransfer indicates an attempt to transfer money to the sender's own account.
	ErrSelfTransfer = errors.New("self transfers are not allowed")
	// ErrRecipientNotFound indicates that the transfer recipient is not found.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrCurrencyMismatch indicates that the accounts have different currencies.
	ErrCurrencyMismatch = errors.New("accounts currency mismatch")
	// ErrInvalidOwner indicates that the user is unauthorized to move money from the account.
	ErrInvalidOwner = errors.New("unauthorized owner")
)

// DepositParams is the input data for the deposit transaction.
type DepositParams struct {
	AccountID int32  `json:"account_id"`
	Amount    string `json:"amount"`
}

// WithdrawParams is the input data for the withdrawal transaction.
// Memo identifies the payment target, e.g. a phone number.
type WithdrawParams struct {
	AccountID int32  `json:"account_id"`
	Amount    string `json:"amount"`
	Memo      string `json:"memo"`
}

// LedgerTxResult is the result of a single-account ledger transaction.
type LedgerTxResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID     int32  `json:"from_account_id"`
	RecipientUsername string `json:"recipient_username"`
	Amount            string `json:"amount"`
}

// TransferTxResult is the result of the transfer transaction.
type TransferTxResult struct {
	FromAccount Account `json:"from_account"`
	ToAccount   Account `json:"to_account"`
	FromEntry   Entry   `json:"from_entry"`
	ToEntry     Entry   `json:"to_entry"`
}
