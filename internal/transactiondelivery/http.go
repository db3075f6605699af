// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/internal/middleware"
	"github.com/go-arkady/demo-bank/pkg/errorspkg"
	"github.com/go-arkady/demo-bank/pkg/tokenpkg"
	"github.com/go-arkady/demo-bank/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Fund(ctx context.Context, owner string, accountID int64, amount string, instrument domain.FundingInstrument) (domain.FundResult, error)
	List(ctx context.Context, owner string, accountID int64) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type accountURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type fundingSource struct {
	Type          string `json:"type" binding:"required,oneof=card bank"`
	AccountNumber string `json:"account_number" binding:"required"`
	RoutingNumber string `json:"routing_number"`
}

type fundRequest struct {
	Amount        string        `json:"amount" binding:"required"`
	FundingSource fundingSource `json:"funding_source" binding:"required"`
}

type fundData struct {
	Transaction domain.Transaction `json:"transaction"`
	Balance     string             `json:"balance"`
}
type fundResponse struct {
	Data fundData `json:"data,omitempty"`
}

// Fund handles http request to fund an account.
func (h *Handler) Fund(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req fundRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	instrument := domain.FundingInstrument{
		Type:          req.FundingSource.Type,
		AccountNumber: req.FundingSource.AccountNumber,
		RoutingNumber: req.FundingSource.RoutingNumber,
	}

	result, err := h.service.Fund(ctx, authPayload.Username, uri.ID, req.Amount, instrument)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrAccountNotActive,
			domain.ErrInvalidAmount,
			domain.ErrAmountTooSmall,
			domain.ErrAmountTooLarge,
			domain.ErrInvalidCardNumber,
			domain.ErrInvalidBankAccountNumber,
			domain.ErrInvalidRoutingNumber,
			domain.ErrInvalidInstrumentType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := fundResponse{
		Data: fundData{
			Transaction: result.Transaction,
			Balance:     result.Balance,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}
type responseTransactions struct {
	Data dataTransactions `json:"data,omitempty"`
}

// List handles http request to list the account's transactions newest first.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri accountURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.List(ctx, authPayload.Username, uri.ID)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransactions{
		Data: dataTransactions{transactions},
	}

	gctx.JSON(http.StatusOK, res)
}
