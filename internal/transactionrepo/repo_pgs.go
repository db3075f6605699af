// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{conn: db}
}

const getAccountForUpdateQuery = `
SELECT status
FROM accounts
WHERE id = $1 AND owner = $2
FOR UPDATE
`

const insertTransactionQuery = `
INSERT INTO
    transactions (account_id, type, amount, description, status, created_at, processed_at)
VALUES
    ($1, $2, $3, $4, $5, $6, $6)
RETURNING id, account_id, type, amount, description, status, created_at, processed_at
`

const addBalanceQuery = `
UPDATE accounts
SET balance = ROUND(balance + $1::numeric, 2)
WHERE id = $2
RETURNING balance
`

// Fund applies a deposit to the account inside a single database transaction.
//
// The account row is locked and re-read within the transaction, so two
// concurrent deposits against the same account serialize instead of both
// adding to the same stale balance. Either the transaction record and the
// balance update both land, or neither does.
func (r *RepoPGS) Fund(ctx context.Context, arg domain.FundParams) (domain.FundResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.FundResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	var status string

	err = tx.QueryRowContext(ctx, getAccountForUpdateQuery, arg.AccountID, arg.Owner).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return result, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return result, errorspkg.ErrInternal
	}

	if status != domain.StatusActive {
		return result, domain.ErrAccountNotActive
	}

	now := time.Now().UTC()

	row := tx.QueryRowContext(ctx, insertTransactionQuery,
		arg.AccountID,
		domain.Deposit,
		arg.Amount,
		arg.Description,
		domain.TransactionCompleted,
		now,
	)

	err = row.Scan(
		&result.Transaction.ID,
		&result.Transaction.AccountID,
		&result.Transaction.Type,
		&result.Transaction.Amount,
		&result.Transaction.Description,
		&result.Transaction.Status,
		&result.Transaction.CreatedAt,
		&result.Transaction.ProcessedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.FundResult{}, errorspkg.ErrInternal
	}

	err = tx.QueryRowContext(ctx, addBalanceQuery, arg.Amount, arg.AccountID).Scan(&result.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.FundResult{}, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.FundResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

const listQuery = `
SELECT
	id, account_id, type, amount, description, status, created_at, processed_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
`

// List returns the account's transactions newest first. Ties on created_at
// break by id so that same-timestamp inserts keep a stable order on coarse
// clocks.
func (r *RepoPGS) List(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.conn.QueryContext(ctx, listQuery, accountID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Type,
			&t.Amount,
			&t.Description,
			&t.Status,
			&t.CreatedAt,
			&t.ProcessedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
