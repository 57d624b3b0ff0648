// Package ledgerdelivery manages delivery layer of ledger operations.
package ledgerdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lamor-bank/gamur-bank/internal/domain"
	"github.com/lamor-bank/gamur-bank/internal/middleware"
	"github.com/lamor-bank/gamur-bank/pkg/errorspkg"
	"github.com/lamor-bank/gamur-bank/pkg/tokenpkg"
	"github.com/lamor-bank/gamur-bank/pkg/web"
)

// Service provides service layer interface needed by ledger delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package ledgerdelivery
type Service interface {
	Deposit(ctx context.Context, fromUsername string, arg domain.DepositParams) (domain.LedgerTxResult, error)
	Withdraw(ctx context.Context, fromUsername string, arg domain.WithdrawParams) (domain.LedgerTxResult, error)
	Transfer(ctx context.Context, fromUsername string, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates ledger delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns ledger handler.
func NewHandler(ls Service) *Handler {
	return &Handler{
		service: ls,
	}
}

func bindError(gctx *gin.Context, l *zerolog.Logger, err error) {
	l.Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})

		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

// serviceError maps ledger service errors to http responses.
func serviceError(gctx *gin.Context, err error) {
	switch err {
	case domain.ErrInvalidOwner:
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
		return
	case
		domain.ErrInvalidAmount,
		domain.ErrNegativeAmount,
		domain.ErrInsufficientBalance,
		domain.ErrSelfTransfer,
		domain.ErrRecipientNotFound,
		domain.ErrCurrencyMismatch:
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	case domain.ErrAccountNotFound:
		gctx.JSON(http.StatusNotFound, web.Error(err))
		return
	}

	gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
}

type ledgerData struct {
	Account domain.Account `json:"account"`
	Entry   domain.Entry   `json:"entry"`
}

type depositRequest struct {
	AccountID int32  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req depositRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.DepositParams{
		AccountID: req.AccountID,
		Amount:    req.Amount,
	}

	result, err := h.service.Deposit(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()
		serviceError(gctx, err)

		return
	}

	res := web.Response{
		Message: fmt.Sprintf("Deposited %s %s", req.Amount, result.Account.Currency),
		Data:    ledgerData{Account: result.Account, Entry: result.Entry},
	}

	gctx.JSON(http.StatusOK, res)
}

type paymentRequest struct {
	AccountID   int32  `json:"account_id" binding:"required,min=1"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// Pay handles http request to pay a phone bill from an account.
func (h *Handler) Pay(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req paymentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.WithdrawParams{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Memo:      req.PhoneNumber,
	}

	result, err := h.service.Withdraw(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()
		serviceError(gctx, err)

		return
	}

	res := web.Response{
		Message: fmt.Sprintf("Paid %s %s for phone %s", req.Amount, result.Account.Currency, req.PhoneNumber),
		Data:    ledgerData{Account: result.Account, Entry: result.Entry},
	}

	gctx.JSON(http.StatusOK, res)
}

type transferRequest struct {
	FromAccountID     int32  `json:"from_account_id" binding:"required,min=1"`
	RecipientUsername string `json:"recipient_username" binding:"required,alphanum"`
	Amount            string `json:"amount" binding:"required"`
}

type transferData struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

// Transfer handles http request to transfer money to another user.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, l, err)
		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.CreateTransferParams{
		FromAccountID:     req.FromAccountID,
		RecipientUsername: req.RecipientUsername,
		Amount:            req.Amount,
	}

	result, err := h.service.Transfer(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()
		serviceError(gctx, err)

		return
	}

	res := web.Response{
		Message: fmt.Sprintf("Transferred %s %s to %s", req.Amount, result.FromAccount.Currency, req.RecipientUsername),
		Data:    transferData{Transfer: result},
	}

	gctx.JSON(http.StatusOK, res)
}
