// Package helpers seeds test data for repository integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/lamor-bank/gamur-bank/internal/accountrepo"
	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/lamor-bank/gamur-bank/internal/entryrepo"
	"github.com/lamor-bank/gamur-bank/internal/userrepo"
	"github.com/lamor-bank/gamur-bank/pkg/currencypkg"
	"github.com/lamor-bank/gamur-bank/pkg/dbpkg"
	"github.com/lamor-bank/gamur-bank/pkg/passpkg"
	"github.com/lamor-bank/gamur-bank/pkg/randompkg"
)

// SeedUser inserts a random user.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount inserts an account with the given balance for the given owner.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, owner, balance string) domain.Account {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), owner, balance, currencypkg.GMR)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			owner, balance, currencypkg.GMR, err)
	}

	return account
}

// SeedAccountWith1000Balance inserts an account with 1000 starting balance.
func SeedAccountWith1000Balance(t *testing.T, db dbpkg.SQLInterface, owner string) domain.Account {
	t.Helper()

	return SeedAccount(t, db, owner, "1000")
}

// SeedEntry inserts an entry for the given account.
func SeedEntry(t *testing.T, db dbpkg.SQLInterface, accountID int32, description, amount string) domain.Entry {
	t.Helper()

	entry, err := entryrepo.NewRepoPGS(db).Create(context.Background(), accountID, description, amount)
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			accountID, description, amount, err)
	}

	return entry
}
