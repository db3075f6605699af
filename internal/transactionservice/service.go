// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/pkg/cardpkg"
	"github.com/go-arkady/demo-bank/pkg/moneypkg"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Fund(ctx context.Context, arg domain.FundParams) (domain.FundResult, error)
	List(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// AccountGetter provides the owner-scoped account read needed for history access checks.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type AccountGetter interface {
	Get(ctx context.Context, id int64, owner string) (domain.Account, error)
}

var minFundingAmount = decimal.RequireFromString("0.01")

// Service facilitates transaction service layer logic.
type Service struct {
	repo      Repo
	accounts  AccountGetter
	maxAmount decimal.Decimal
}

// New returns transaction service struct to manage funding business logic.
// fundingAmountMax is the configured per-request deposit ceiling.
func New(tr Repo, ag AccountGetter, fundingAmountMax string) (*Service, error) {
	maxAmount, err := decimal.NewFromString(fundingAmountMax)
	if err != nil {
		return nil, errors.New("invalid funding amount ceiling: " + fundingAmountMax)
	}

	return &Service{
		repo:      tr,
		accounts:  ag,
		maxAmount: maxAmount,
	}, nil
}

func (s *Service) validAmount(ctx context.Context, amount string) error {
	l := zerolog.Ctx(ctx)

	d, err := moneypkg.Parse(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		return domain.ErrInvalidAmount
	}

	if d.LessThan(minFundingAmount) {
		return domain.ErrAmountTooSmall
	}

	if d.GreaterThan(s.maxAmount) {
		return domain.ErrAmountTooLarge
	}

	return nil
}

func validInstrument(instrument domain.FundingInstrument) error {
	switch instrument.Type {
	case domain.InstrumentCard:
		if !cardpkg.ValidCardNumber(instrument.AccountNumber) {
			return domain.ErrInvalidCardNumber
		}
	case domain.InstrumentBank:
		if !cardpkg.ValidBankAccountNumber(instrument.AccountNumber) {
			return domain.ErrInvalidBankAccountNumber
		}
		if !cardpkg.ValidRoutingNumber(instrument.RoutingNumber) {
			return domain.ErrInvalidRoutingNumber
		}
	default:
		return domain.ErrInvalidInstrumentType
	}

	return nil
}

// Fund validates the funding request and applies the deposit.
//
// Validation never touches the store. Ownership and account status are
// checked by the repository inside the same transaction that writes the
// deposit, so no state read here can go stale before the write.
func (s *Service) Fund(ctx context.Context, owner string, accountID int64, amount string, instrument domain.FundingInstrument) (domain.FundResult, error) {
	if err := s.validAmount(ctx, amount); err != nil {
		return domain.FundResult{}, err
	}

	if err := validInstrument(instrument); err != nil {
		return domain.FundResult{}, err
	}

	arg := domain.FundParams{
		AccountID:   accountID,
		Owner:       owner,
		Amount:      amount,
		Description: "Funding from " + instrument.Type,
	}

	result, err := s.repo.Fund(ctx, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}

// List returns the account's transaction history, newest first, after
// checking that the account belongs to the caller.
func (s *Service) List(ctx context.Context, owner string, accountID int64) ([]domain.Transaction, error) {
	if _, err := s.accounts.Get(ctx, accountID, owner); err != nil {
		return nil, err
	}

	transactions, err := s.repo.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
