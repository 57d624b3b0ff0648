// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, owner, balance, currency string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	List(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error)
}

// EntryRepo provides entry data access layer interface needed by account service layer.
type EntryRepo interface {
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.Entry, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	entryRepo EntryRepo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, er EntryRepo) *Service {
	return &Service{
		repo:      ar,
		entryRepo: er,
	}
}

// Create creates and returns an empty account for the given owner and currency.
func (s *Service) Create(ctx context.Context, owner, currency string) (domain.Account, error) {
	return s.CreateWithBalance(ctx, owner, "0", currency)
}

// CreateWithBalance creates and returns an account with the given starting balance.
func (s *Service) CreateWithBalance(ctx context.Context, owner, balance, currency string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	balanceDecimal, err := decimal.NewFromString(balance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if balanceDecimal.IsNegative() {
		return domain.Account{}, domain.ErrNegativeBalance
	}

	account, err := s.repo.Create(ctx, owner, balance, currency)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, owner, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}

// ListEntries returns the most recent entries of the given account
// after verifying that the account belongs to the given owner.
func (s *Service) ListEntries(ctx context.Context, owner string, accountID, pageSize, pageID int32) ([]domain.Entry, error) {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.Owner != owner {
		return nil, domain.ErrAccountOwnerMismatch
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	entries, err := s.entryRepo.List(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
