// Package ledgerrepo manages repository layer of balance-affecting ledger transactions.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/lamor-bank/gamur-bank/internal/accountrepo"
	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/lamor-bank/gamur-bank/internal/entryrepo"
	"github.com/lamor-bank/gamur-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates ledger repository layer logic.
//
// Every exported method runs as a single database transaction:
// balance updates and their entries commit together or not at all.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// execTx executes fn against tx-scoped account and entry repositories
// within a single database transaction.
func (r *RepoPGS) execTx(ctx context.Context, fn func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	if err := fn(accountrepo.NewRepoPGS(tx), entryrepo.NewRepoPGS(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

// Deposit credits the account and appends the matching entry.
func (r *RepoPGS) Deposit(ctx context.Context, arg domain.DepositParams) (domain.LedgerTxResult, error) {
	var result domain.LedgerTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error {
		var err error

		result.Account, err = accounts.AddBalance(ctx, arg.Amount, arg.AccountID)
		if err != nil {
			return err
		}

		result.Entry, err = entries.Create(ctx, arg.AccountID, "Deposit", arg.Amount)

		return err
	})
	if err != nil {
		return domain.LedgerTxResult{}, err
	}

	return result, nil
}

// Withdraw debits the account and appends the matching entry tagged with the memo.
//
// Insufficient funds are detected by the accounts balance constraint inside
// the transaction, so a concurrent debit cannot overdraw the account.
func (r *RepoPGS) Withdraw(ctx context.Context, arg domain.WithdrawParams) (domain.LedgerTxResult, error) {
	var result domain.LedgerTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error {
		var err error

		result.Account, err = accounts.AddBalance(ctx, "-"+arg.Amount, arg.AccountID)
		if err != nil {
			return err
		}

		result.Entry, err = entries.Create(ctx, arg.AccountID, "Payment "+arg.Memo, "-"+arg.Amount)

		return err
	})
	if err != nil {
		return domain.LedgerTxResult{}, err
	}

	return result, nil
}

// Transfer moves money between the sender's account and the recipient's
// account in the same currency.
//
// It resolves the recipient, appends both entries, and updates both balances
// within a single database transaction. Balances are read inside the
// transaction, never taken from the caller.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	var result domain.TransferTxResult

	err := r.execTx(ctx, func(accounts *accountrepo.RepoPGS, entries *entryrepo.RepoPGS) error {
		sender, err := accounts.Get(ctx, arg.FromAccountID)
		if err != nil {
			return err
		}

		recipient, err := accounts.GetByOwner(ctx, arg.RecipientUsername, sender.Currency)
		if err != nil {
			if err == domain.ErrAccountNotFound {
				return domain.ErrRecipientNotFound
			}

			return err
		}

		if recipient.ID == sender.ID {
			return domain.ErrSelfTransfer
		}

		result.FromEntry, err = entries.Create(ctx, sender.ID, "Transfer to "+recipient.Owner, "-"+arg.Amount)
		if err != nil {
			return err
		}

		result.ToEntry, err = entries.Create(ctx, recipient.ID, "Transfer from "+sender.Owner, arg.Amount)
		if err != nil {
			return err
		}

		// To avoid deadlocks execute balance updates in consistent id order.
		if sender.ID < recipient.ID {
			result.FromAccount, err = accounts.AddBalance(ctx, "-"+arg.Amount, sender.ID)
			if err != nil {
				return err
			}

			result.ToAccount, err = accounts.AddBalance(ctx, arg.Amount, recipient.ID)

			return err
		}

		result.ToAccount, err = accounts.AddBalance(ctx, arg.Amount, recipient.ID)
		if err != nil {
			return err
		}

		result.FromAccount, err = accounts.AddBalance(ctx, "-"+arg.Amount, sender.ID)

		return err
	})
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}
