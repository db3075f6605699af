// Package helpers provides seed and fixture helpers shared by integration tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/go-arkady/demo-bank/internal/accountrepo"
	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/internal/sessionrepo"
	"github.com/go-arkady/demo-bank/internal/userrepo"
	"github.com/go-arkady/demo-bank/pkg/dbpkg"
	"github.com/go-arkady/demo-bank/pkg/passpkg"
	"github.com/go-arkady/demo-bank/pkg/randompkg"
)

// RandomAccount returns an in-memory active account owned by the given user.
func RandomAccount(owner string) domain.Account {
	return domain.Account{
		ID:            int64(randompkg.Intn(1000) + 1),
		AccountNumber: randompkg.AccountNumber(),
		Owner:         owner,
		Type:          randompkg.AccountType(),
		Balance:       "0.00",
		Status:        domain.StatusActive,
		CreatedAt:     time.Now().Truncate(time.Second).UTC(),
	}
}

// SeedUser inserts a user with a random username into the database.
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

	userRepo := userrepo.NewRepoPGS(db)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount inserts an active account of the given type for the owner.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, owner, accountType string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)
	accountNumber := randompkg.AccountNumber()

	account, err := accountRepo.Create(context.Background(), owner, accountNumber, accountType)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v, %v) returned error: %v",
			owner, accountNumber, accountType, err)
	}

	return account
}

// SeedSession inserts a refresh token session into the database.
func SeedSession(t *testing.T, db dbpkg.SQLInterface, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	sessionRepo := sessionrepo.NewRepoPGS(db)

	session, err := sessionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}

// SetAccountStatus overrides the account status directly in the database.
func SetAccountStatus(t *testing.T, db dbpkg.SQLInterface, id int64, status string) {
	t.Helper()

	const query = `UPDATE accounts SET status = $1 WHERE id = $2`

	if _, err := db.ExecContext(context.Background(), query, status, id); err != nil {
		t.Fatalf("setting account %v status to %v failed: %v", id, status, err)
	}
}
