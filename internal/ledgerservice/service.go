// Package ledgerservice manages business logic layer of balance mutations.
//
// Every operation is validated before any store access and executed by the
// repository as a single atomic unit, so a rejected or failed operation
// never leaves a partial balance change behind.
package ledgerservice

import (
	"context"

	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Deposit(ctx context.Context, arg domain.DepositParams) (domain.LedgerTxResult, error)
	Withdraw(ctx context.Context, arg domain.WithdrawParams) (domain.LedgerTxResult, error)
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// AccountService provides account read interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type AccountService interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
}

// New returns ledger service struct to manage ledger bussines logic.
func New(lr Repo, as AccountService) *Service {
	return &Service{
		repo:           lr,
		accountService: as,
	}
}

// parseAmount rejects amounts that are not finite positive decimals.
func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}

	return amountDecimal, nil
}

// ownedAccount returns the account after verifying it belongs to the given user.
func (s *Service) ownedAccount(ctx context.Context, username string, accountID int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accountService.Get(ctx, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, err
	}

	if account.Owner != username {
		l.Warn().Str("owner", account.Owner).Str("username", username).Msg("unauthorized account access")
		return domain.Account{}, domain.ErrInvalidOwner
	}

	return account, nil
}

// Deposit credits the given account and appends the matching credit entry.
func (s *Service) Deposit(ctx context.Context, fromUsername string, arg domain.DepositParams) (domain.LedgerTxResult, error) {
	if _, err := parseAmount(ctx, arg.Amount); err != nil {
		return domain.LedgerTxResult{}, err
	}

	if _, err := s.ownedAccount(ctx, fromUsername, arg.AccountID); err != nil {
		return domain.LedgerTxResult{}, err
	}

	result, err := s.repo.Deposit(ctx, arg)
	if err != nil {
		return domain.LedgerTxResult{}, err
	}

	return result, nil
}

// Withdraw debits the given account for a payment and appends the matching
// debit entry tagged with the payment memo.
func (s *Service) Withdraw(ctx context.Context, fromUsername string, arg domain.WithdrawParams) (domain.LedgerTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(ctx, arg.Amount)
	if err != nil {
		return domain.LedgerTxResult{}, err
	}

	account, err := s.ownedAccount(ctx, fromUsername, arg.AccountID)
	if err != nil {
		return domain.LedgerTxResult{}, err
	}

	currentBalance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.LedgerTxResult{}, err
	}

	if currentBalance.LessThan(amountDecimal) {
		return domain.LedgerTxResult{}, domain.ErrInsufficientBalance
	}

	result, err := s.repo.Withdraw(ctx, arg)
	if err != nil {
		return domain.LedgerTxResult{}, err
	}

	return result, nil
}

// Transfer moves money from the sender's account to the recipient.
//
// The balance check here is advisory: the repository re-checks it inside the
// transfer transaction against the balance read there, not the one read here.
func (s *Service) Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := parseAmount(ctx, arg.Amount)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	if arg.RecipientUsername == fromUsername {
		return domain.TransferTxResult{}, domain.ErrSelfTransfer
	}

	account, err := s.ownedAccount(ctx, fromUsername, arg.FromAccountID)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	currentBalance, err := decimal.NewFromString(account.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if currentBalance.LessThan(amountDecimal) {
		return domain.TransferTxResult{}, domain.ErrInsufficientBalance
	}

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	return result, nil
}
