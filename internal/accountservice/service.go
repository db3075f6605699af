// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/pkg/errorspkg"
	"github.com/go-arkady/demo-bank/pkg/randompkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, owner, accountNumber, accountType string) (domain.Account, error)
	Get(ctx context.Context, id int64, owner string) (domain.Account, error)
	List(ctx context.Context, owner string) ([]domain.Account, error)
}

// allocationAttempts bounds retries on account number collisions. With
// 10^10 possible numbers a collision is an anomaly worth surfacing, not
// something to loop on forever.
const allocationAttempts = 5

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create allocates an account of the given type for the owner.
//
// The account number is drawn from a cryptographically secure uniform
// source. If the insert collides on the number, the attempt is discarded
// and a fresh number is tried, up to allocationAttempts in total. Every
// other error aborts immediately.
func (s *Service) Create(ctx context.Context, owner, accountType string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !domain.IsSupportedAccountType(accountType) {
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	for attempt := 1; attempt <= allocationAttempts; attempt++ {
		accountNumber := randompkg.AccountNumber()

		account, err := s.repo.Create(ctx, owner, accountNumber, accountType)
		if err == domain.ErrAccountNumberTaken {
			l.Warn().Int("attempt", attempt).Msg("account number collision")
			continue
		}

		if err != nil {
			return domain.Account{}, err
		}

		return account, nil
	}

	l.Error().Int("attempts", allocationAttempts).Msg("account number allocation exhausted retries")

	return domain.Account{}, errorspkg.ErrInternal
}

// Get returns the account with the given id if it belongs to the owner.
func (s *Service) Get(ctx context.Context, id int64, owner string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id, owner)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
