//go:build integration

package userrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-arkady/demo-bank/internal/domain"
	"github.com/go-arkady/demo-bank/internal/integrationtest"
	"github.com/go-arkady/demo-bank/internal/middleware"
	"github.com/go-arkady/demo-bank/internal/userrepo"
	"github.com/go-arkady/demo-bank/pkg/configpkg"
	"github.com/go-arkady/demo-bank/pkg/passpkg"
	"github.com/go-arkady/demo-bank/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
	ctx      context.Context
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	logger := middleware.CreateLogger(config)
	ctx = logger.WithContext(context.Background())

	os.Exit(m.Run())
}

func randomCreateUserParams(t *testing.T) domain.CreateUserParams {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	return domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.Owner(),
		Email:          randompkg.Email(),
	}
}

func TestCreate(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(tx)
		arg := randomCreateUserParams(t)

		user, err := userRepo.Create(ctx, arg)
		require.NoError(t, err)

		require.Equal(t, arg.Username, user.Username)
		require.Equal(t, arg.HashedPassword, user.HashedPassword)
		require.Equal(t, arg.FullName, user.FullName)
		require.Equal(t, arg.Email, user.Email)
		require.NotZero(t, user.CreatedAt)
	})

	t.Run("ErrUsernameAlreadyExists", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(tx)
		arg := randomCreateUserParams(t)

		_, err := userRepo.Create(ctx, arg)
		require.NoError(t, err)

		arg.Email = randompkg.Email()

		user, err := userRepo.Create(ctx, arg)
		require.EqualError(t, err, domain.ErrUsernameAlreadyExists.Error())
		require.Empty(t, user)
	})

	t.Run("ErrEmailAlreadyExists", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(tx)
		arg := randomCreateUserParams(t)

		_, err := userRepo.Create(ctx, arg)
		require.NoError(t, err)

		arg.Username = randompkg.Owner()

		user, err := userRepo.Create(ctx, arg)
		require.EqualError(t, err, domain.ErrEmailAlreadyExists.Error())
		require.Empty(t, user)
	})
}

func TestGet(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(tx)
		arg := randomCreateUserParams(t)

		want, err := userRepo.Create(ctx, arg)
		require.NoError(t, err)

		got, err := userRepo.Get(ctx, arg.Username)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("ErrUserNotFound", func(t *testing.T) {
		t.Parallel()

		tx := integrationtest.SetupTX(t, dbDriver, dbSource)
		userRepo := userrepo.NewRepoPGS(tx)

		got, err := userRepo.Get(ctx, "missing")
		require.EqualError(t, err, domain.ErrUserNotFound.Error())
		require.Empty(t, got)
	})
}
