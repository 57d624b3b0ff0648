//go:build integration

package sessionrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/lamor-bank/gamur-bank/internal/integrationtest/helpers"
	"github.com/lamor-bank/gamur-bank/internal/sessionrepo"
	"github.com/lamor-bank/gamur-bank/pkg/configpkg"
	"github.com/lamor-bank/gamur-bank/pkg/dbpkg"
	"github.com/lamor-bank/gamur-bank/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func randomCreateSessionParams(t *testing.T, username string) domain.CreateSessionParams {
	t.Helper()

	return domain.CreateSessionParams{
		ID:           uuid.New(),
		Username:     username,
		RefreshToken: randompkg.String(10),
		UserAgent:    randompkg.String(10),
		ClientIP:     "127.0.0.1",
		IsBlocked:    false,
		ExpiresAt:    time.Now().UTC().Truncate(time.Second).Add(time.Hour),
	}
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name        string
		wantSession func(tx *sql.Tx) domain.CreateSessionParams
		wantErr     error
	}{
		{
			name: "OK",
			wantSession: func(tx *sql.Tx) domain.CreateSessionParams {
				user := helpers.SeedUser(t, tx)
				return randomCreateSessionParams(t, user.Username)
			},
		},
		{
			name: "ErrUserNotFound",
			wantSession: func(tx *sql.Tx) domain.CreateSessionParams {
				return randomCreateSessionParams(t, "missing")
			},
			wantErr: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := dbpkg.SetupTX(t, dbDriver, dbSource)
			arg := tc.wantSession(tx)
			sessionRepo := sessionrepo.NewRepoPGS(tx)

			got, err := sessionRepo.Create(context.Background(), arg)
			if err != nil {
				if err == tc.wantErr {
					return
				}
				t.Fatalf(`sessionRepo.Create(context.Background(), %+v) returned error: %v`, arg, err)
			}

			want := domain.Session{
				ID:           arg.ID,
				Username:     arg.Username,
				RefreshToken: arg.RefreshToken,
				UserAgent:    arg.UserAgent,
				ClientIP:     arg.ClientIP,
				IsBlocked:    arg.IsBlocked,
				ExpiresAt:    arg.ExpiresAt,
				CreatedAt:    time.Now().UTC().Truncate(time.Second),
			}

			compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
			if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
				t.Errorf(`sessionRepo.Create(context.Background(), %+v) returned unexpected difference (-want +got):\n%s`,
					arg, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	testCases := []struct {
		name        string
		wantSession func(tx *sql.Tx) domain.Session
		wantErr     error
	}{
		{
			name: "OK",
			wantSession: func(tx *sql.Tx) domain.Session {
				user := helpers.SeedUser(t, tx)
				arg := randomCreateSessionParams(t, user.Username)

				session, err := sessionrepo.NewRepoPGS(tx).Create(context.Background(), arg)
				if err != nil {
					t.Fatalf(`sessionRepo.Create(context.Background(), %+v) returned error: %v`, arg, err)
				}

				return session
			},
		},
		{
			name: "ErrSessionNotFound",
			wantSession: func(tx *sql.Tx) domain.Session {
				return domain.Session{ID: uuid.New()}
			},
			wantErr: domain.ErrSessionNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := dbpkg.SetupTX(t, dbDriver, dbSource)
			want := tc.wantSession(tx)
			sessionRepo := sessionrepo.NewRepoPGS(tx)

			got, err := sessionRepo.Get(context.Background(), want.ID)
			if err != nil {
				if err == tc.wantErr {
					return
				}
				t.Fatalf(`sessionRepo.Get(context.Background(), %v) returned error: %v`, want.ID, err)
			}

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf(`sessionRepo.Get(context.Background(), %v) returned unexpected difference (-want +got):\n%s`,
					want.ID, diff)
			}
		})
	}
}
