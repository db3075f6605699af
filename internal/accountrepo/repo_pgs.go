// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/pkg/dbpkg"
	"github.com/go-arkady/demo-bank/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (account_number, owner, account_type, balance, status)
VALUES
    ($1, $2, $3, 0, 'active')
RETURNING id, account_number, owner, account_type, balance, status, created_at
`

// Create inserts a new active account with zero balance and returns it.
//
// The insert and the read-back happen in one statement, so a failed attempt
// leaves no row behind. A unique violation on the account number is
// returned as domain.ErrAccountNumberTaken so that the caller can retry
// with a fresh number; any other error aborts.
func (r *RepoPGS) Create(ctx context.Context, owner, accountNumber, accountType string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, accountNumber, owner, accountType)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.Owner,
		&a.Type,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				switch pqErr.Constraint {
				case "accounts_account_number_key":
					return a, domain.ErrAccountNumberTaken
				case "accounts_owner_account_type_key":
					return a, domain.ErrAccountTypeAlreadyExists
				}
			case "foreign_key_violation":
				if pqErr.Constraint == "accounts_owner_fkey" {
					return a, domain.ErrOwnerNotFound
				}
			case "check_violation":
				if pqErr.Constraint == "accounts_account_type_check" {
					return a, domain.ErrInvalidAccountType
				}
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, account_number, owner, account_type, balance, status, created_at
FROM accounts
WHERE id = $1 AND owner = $2
`

// Get returns the account with the given id owned by the given owner.
// Filtering by both columns makes an accountId alone insufficient to read
// someone else's account.
func (r *RepoPGS) Get(ctx context.Context, id int64, owner string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id, owner)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.AccountNumber,
		&a.Owner,
		&a.Type,
		&a.Balance,
		&a.Status,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, account_number, owner, account_type, balance, status, created_at
FROM accounts
WHERE owner = $1
ORDER BY id
`

// List returns all accounts of the given owner.
func (r *RepoPGS) List(ctx context.Context, owner string) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.AccountNumber,
			&a.Owner,
			&a.Type,
			&a.Balance,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
