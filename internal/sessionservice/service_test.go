package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/lamor-bank/gamur-bank/pkg/configpkg"
	"github.com/lamor-bank/gamur-bank/pkg/errorspkg"
	"github.com/lamor-bank/gamur-bank/pkg/randompkg"
	"github.com/lamor-bank/gamur-bank/pkg/tokenpkg"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, repo Repo) *Service {
	t.Helper()

	config := configpkg.Config{
		TokenSymmetricKey:    randompkg.String(32),
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", config.TokenSymmetricKey, err)
	}

	return New(repo, config, tokenMaker)
}

func TestCreate(t *testing.T) {
	testUsername := randompkg.Owner()

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(accessToken string, expiresAt time.Time, sess domain.Session, err error)
	}{
		{
			name: "RepoError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Session{}, errorspkg.ErrInternal)
			},
			checkResponse: func(accessToken string, expiresAt time.Time, sess domain.Session, err error) {
				require.Empty(t, accessToken)
				require.Empty(t, sess)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
						require.Equal(t, testUsername, arg.Username)
						require.NotEmpty(t, arg.ID)
						require.NotEmpty(t, arg.RefreshToken)
						require.WithinDuration(t, time.Now().Add(time.Hour), arg.ExpiresAt, time.Minute)

						return domain.Session{
							ID:           arg.ID,
							Username:     arg.Username,
							RefreshToken: arg.RefreshToken,
							ExpiresAt:    arg.ExpiresAt,
						}, nil
					})
			},
			checkResponse: func(accessToken string, expiresAt time.Time, sess domain.Session, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, accessToken)
				require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)
				require.Equal(t, testUsername, sess.Username)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sessionRepo := NewMockRepo(ctrl)
			sessionService := newTestService(t, sessionRepo)

			tc.buildStubs(sessionRepo)

			arg := domain.CreateSessionParams{Username: testUsername}

			tc.checkResponse(sessionService.Create(context.Background(), arg))
		})
	}
}

func TestRenewAccessToken(t *testing.T) {
	testUsername := randompkg.Owner()

	// issueRefreshToken mints a refresh token with the service's own maker so
	// the token verifies against the same key.
	issueRefreshToken := func(t *testing.T, s *Service, username string) (string, domain.Session) {
		t.Helper()

		refreshToken, payload, err := s.TokenMaker.CreateToken(username, time.Hour)
		if err != nil {
			t.Fatalf("TokenMaker.CreateToken(%v, time.Hour) returned error: %v", username, err)
		}

		sess := domain.Session{
			ID:           payload.ID,
			Username:     username,
			RefreshToken: refreshToken,
			ExpiresAt:    payload.ExpiredAt,
		}

		return refreshToken, sess
	}

	testCases := []struct {
		name          string
		setup         func(t *testing.T, s *Service, repo *MockRepo) string
		checkResponse func(accessToken string, expiresAt time.Time, err error)
	}{
		{
			name: "InvalidToken",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				return "invalid"
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.Empty(t, accessToken)
				require.EqualError(t, err, tokenpkg.ErrInvalidToken.Error())
			},
		},
		{
			name: "ErrSessionNotFound",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				refreshToken, sess := issueRefreshToken(t, s, testUsername)

				repo.EXPECT().Get(gomock.Any(), gomock.Eq(sess.ID)).
					Times(1).
					Return(domain.Session{}, domain.ErrSessionNotFound)

				return refreshToken
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.Empty(t, accessToken)
				require.EqualError(t, err, domain.ErrSessionNotFound.Error())
			},
		},
		{
			name: "ErrBlockedSession",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				refreshToken, sess := issueRefreshToken(t, s, testUsername)
				sess.IsBlocked = true

				repo.EXPECT().Get(gomock.Any(), gomock.Eq(sess.ID)).
					Times(1).
					Return(sess, nil)

				return refreshToken
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.Empty(t, accessToken)
				require.EqualError(t, err, domain.ErrBlockedSession.Error())
			},
		},
		{
			name: "ErrInvalidUser",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				refreshToken, sess := issueRefreshToken(t, s, testUsername)
				sess.Username = "other"

				repo.EXPECT().Get(gomock.Any(), gomock.Eq(sess.ID)).
					Times(1).
					Return(sess, nil)

				return refreshToken
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.Empty(t, accessToken)
				require.EqualError(t, err, domain.ErrInvalidUser.Error())
			},
		},
		{
			name: "ErrMismatchedRefreshToken",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				refreshToken, sess := issueRefreshToken(t, s, testUsername)
				sess.RefreshToken = "other"

				repo.EXPECT().Get(gomock.Any(), gomock.Eq(sess.ID)).
					Times(1).
					Return(sess, nil)

				return refreshToken
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.Empty(t, accessToken)
				require.EqualError(t, err, domain.ErrMismatchedRefreshToken.Error())
			},
		},
		{
			name: "ErrExpiredSession",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				refreshToken, sess := issueRefreshToken(t, s, testUsername)
				sess.ExpiresAt = time.Now().Add(-time.Minute)

				repo.EXPECT().Get(gomock.Any(), gomock.Eq(sess.ID)).
					Times(1).
					Return(sess, nil)

				return refreshToken
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.Empty(t, accessToken)
				require.EqualError(t, err, domain.ErrExpiredSession.Error())
			},
		},
		{
			name: "OK",
			setup: func(t *testing.T, s *Service, repo *MockRepo) string {
				refreshToken, sess := issueRefreshToken(t, s, testUsername)

				repo.EXPECT().Get(gomock.Any(), gomock.Eq(sess.ID)).
					Times(1).
					Return(sess, nil)

				return refreshToken
			},
			checkResponse: func(accessToken string, expiresAt time.Time, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, accessToken)
				require.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, time.Minute)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sessionRepo := NewMockRepo(ctrl)
			sessionService := newTestService(t, sessionRepo)

			refreshToken := tc.setup(t, sessionService, sessionRepo)

			tc.checkResponse(sessionService.RenewAccessToken(context.Background(), refreshToken))
		})
	}
}
