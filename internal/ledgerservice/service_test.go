package ledgerservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/lamor-bank/gamur-bank/pkg/currencypkg"
	"github.com/lamor-bank/gamur-bank/pkg/errorspkg"
	"github.com/lamor-bank/gamur-bank/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

func randomAccount(id int32, balance string) domain.Account {
	return domain.Account{
		ID:        id,
		Owner:     randompkg.Owner(),
		Balance:   balance,
		Currency:  currencypkg.GMR,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestDeposit(t *testing.T) {
	testAccount := randomAccount(1, "1000.00")
	testAmount := "250.50"

	testResult := domain.LedgerTxResult{
		Account: domain.Account{
			ID:       testAccount.ID,
			Owner:    testAccount.Owner,
			Balance:  "1250.50",
			Currency: testAccount.Currency,
		},
		Entry: domain.Entry{
			AccountID:   testAccount.ID,
			Description: "Deposit",
			Amount:      testAmount,
		},
	}

	testCases := []struct {
		name          string
		fromUsername  string
		arg           domain.DepositParams
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.LedgerTxResult, err error)
	}{
		{
			name:         "InvalidAmount",
			fromUsername: testAccount.Owner,
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    "!@#$",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:         "NegativeAmount",
			fromUsername: testAccount.Owner,
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    "-100",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name:         "ZeroAmount",
			fromUsername: testAccount.Owner,
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    "0",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrNegativeAmount.Error())
			},
		},
		{
			name:         "AccountNotFound",
			fromUsername: testAccount.Owner,
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrAccountNotFound.Error())
			},
		},
		{
			name:         "InvalidOwner",
			fromUsername: "notOwner",
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name:         "RepoError",
			fromUsername: testAccount.Owner,
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.LedgerTxResult{}, errorspkg.ErrInternal)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, errorspkg.ErrInternal.Error())
			},
		},
		{
			name:         "OK",
			fromUsername: testAccount.Owner,
			arg: domain.DepositParams{
				AccountID: testAccount.ID,
				Amount:    testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().Deposit(gomock.Any(), gomock.Eq(domain.DepositParams{
					AccountID: testAccount.ID,
					Amount:    testAmount,
				})).
					Times(1).
					Return(testResult, nil)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testResult, res)
				require.Equal(t, "1250.50", res.Account.Balance)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledgerRepo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			ledgerService := New(ledgerRepo, accountService)

			tc.buildStubs(ledgerRepo, accountService)

			tc.checkResponse(ledgerService.Deposit(context.Background(), tc.fromUsername, tc.arg))
		})
	}
}

func TestWithdraw(t *testing.T) {
	testAccount := randomAccount(1, "100.00")
	testPhone := randompkg.PhoneNumber()

	testCases := []struct {
		name          string
		fromUsername  string
		arg           domain.WithdrawParams
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.LedgerTxResult, err error)
	}{
		{
			name:         "InvalidAmount",
			fromUsername: testAccount.Owner,
			arg: domain.WithdrawParams{
				AccountID: testAccount.ID,
				Amount:    "amount",
				Memo:      testPhone,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:         "InsufficientBalance",
			fromUsername: testAccount.Owner,
			arg: domain.WithdrawParams{
				AccountID: testAccount.ID,
				Amount:    "150.00",
				Memo:      testPhone,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:         "InvalidOwner",
			fromUsername: "notOwner",
			arg: domain.WithdrawParams{
				AccountID: testAccount.ID,
				Amount:    "50.00",
				Memo:      testPhone,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name:         "OK",
			fromUsername: testAccount.Owner,
			arg: domain.WithdrawParams{
				AccountID: testAccount.ID,
				Amount:    "50.00",
				Memo:      testPhone,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testAccount.ID)).
					Times(1).
					Return(testAccount, nil)
				repo.EXPECT().Withdraw(gomock.Any(), gomock.Eq(domain.WithdrawParams{
					AccountID: testAccount.ID,
					Amount:    "50.00",
					Memo:      testPhone,
				})).
					Times(1).
					Return(domain.LedgerTxResult{
						Account: domain.Account{
							ID:      testAccount.ID,
							Owner:   testAccount.Owner,
							Balance: "50.00",
						},
						Entry: domain.Entry{
							AccountID:   testAccount.ID,
							Description: "Payment " + testPhone,
							Amount:      "-50.00",
						},
					}, nil)
			},
			checkResponse: func(res domain.LedgerTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, "50.00", res.Account.Balance)
				require.Equal(t, "-50.00", res.Entry.Amount)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledgerRepo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			ledgerService := New(ledgerRepo, accountService)

			tc.buildStubs(ledgerRepo, accountService)

			tc.checkResponse(ledgerService.Withdraw(context.Background(), tc.fromUsername, tc.arg))
		})
	}
}

func TestTransfer(t *testing.T) {
	testSender := randomAccount(1, "500.00")
	testRecipient := randomAccount(2, "0.00")
	testAmount := "500.00"

	testTxResult := domain.TransferTxResult{
		FromAccount: domain.Account{
			ID:       testSender.ID,
			Owner:    testSender.Owner,
			Balance:  "0.00",
			Currency: testSender.Currency,
		},
		ToAccount: domain.Account{
			ID:       testRecipient.ID,
			Owner:    testRecipient.Owner,
			Balance:  "500.00",
			Currency: testRecipient.Currency,
		},
		FromEntry: domain.Entry{
			AccountID:   testSender.ID,
			Description: "Transfer to " + testRecipient.Owner,
			Amount:      "-" + testAmount,
		},
		ToEntry: domain.Entry{
			AccountID:   testRecipient.ID,
			Description: "Transfer from " + testSender.Owner,
			Amount:      testAmount,
		},
	}

	testCases := []struct {
		name          string
		fromUsername  string
		arg           domain.CreateTransferParams
		buildStubs    func(repo *MockRepo, accountService *MockAccountService)
		checkResponse func(res domain.TransferTxResult, err error)
	}{
		{
			name:         "InvalidAmount",
			fromUsername: testSender.Owner,
			arg: domain.CreateTransferParams{
				FromAccountID:     testSender.ID,
				RecipientUsername: testRecipient.Owner,
				Amount:            "!@#$",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidAmount.Error())
			},
		},
		{
			name:         "SelfTransfer",
			fromUsername: testSender.Owner,
			arg: domain.CreateTransferParams{
				FromAccountID:     testSender.ID,
				RecipientUsername: testSender.Owner,
				Amount:            "10.00",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrSelfTransfer.Error())
			},
		},
		{
			name:         "InvalidOwner",
			fromUsername: testSender.Owner,
			arg: domain.CreateTransferParams{
				FromAccountID:     testRecipient.ID,
				RecipientUsername: testRecipient.Owner,
				Amount:            testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testRecipient.ID)).
					Times(1).
					Return(testRecipient, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInvalidOwner.Error())
			},
		},
		{
			name:         "InsufficientBalance",
			fromUsername: testSender.Owner,
			arg: domain.CreateTransferParams{
				FromAccountID:     testSender.ID,
				RecipientUsername: testRecipient.Owner,
				Amount:            "10000.00",
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).Times(0)
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testSender.ID)).
					Times(1).
					Return(testSender, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrInsufficientBalance.Error())
			},
		},
		{
			name:         "RecipientNotFound",
			fromUsername: testSender.Owner,
			arg: domain.CreateTransferParams{
				FromAccountID:     testSender.ID,
				RecipientUsername: "ghost",
				Amount:            testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testSender.ID)).
					Times(1).
					Return(testSender, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.TransferTxResult{}, domain.ErrRecipientNotFound)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.Empty(t, res)
				require.EqualError(t, err, domain.ErrRecipientNotFound.Error())
			},
		},
		{
			name:         "OK",
			fromUsername: testSender.Owner,
			arg: domain.CreateTransferParams{
				FromAccountID:     testSender.ID,
				RecipientUsername: testRecipient.Owner,
				Amount:            testAmount,
			},
			buildStubs: func(repo *MockRepo, accountService *MockAccountService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(testSender.ID)).
					Times(1).
					Return(testSender, nil)
				repo.EXPECT().Transfer(gomock.Any(), gomock.Eq(domain.CreateTransferParams{
					FromAccountID:     testSender.ID,
					RecipientUsername: testRecipient.Owner,
					Amount:            testAmount,
				})).
					Times(1).
					Return(testTxResult, nil)
			},
			checkResponse: func(res domain.TransferTxResult, err error) {
				require.NoError(t, err)
				require.Equal(t, testTxResult, res)
				require.Equal(t, "0.00", res.FromAccount.Balance)
				require.Equal(t, "500.00", res.ToAccount.Balance)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledgerRepo := NewMockRepo(ctrl)
			accountService := NewMockAccountService(ctrl)
			ledgerService := New(ledgerRepo, accountService)

			tc.buildStubs(ledgerRepo, accountService)

			tc.checkResponse(ledgerService.Transfer(context.Background(), tc.fromUsername, tc.arg))
		})
	}
}
