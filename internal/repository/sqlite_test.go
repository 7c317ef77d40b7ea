package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/brokerz/brokerz-auth/internal/bootstrap"
	"github.com/brokerz/brokerz-auth/internal/domain"
	"github.com/brokerz/brokerz-auth/internal/repository"
)

func newTestRepo(t *testing.T) *repository.SQLiteUserRepo {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, bootstrap.Migrate(context.Background(), db))
	return repository.NewSQLiteUserRepo(db)
}

func testAccount(portal domain.Portal) domain.User {
	return domain.User{
		FirstName:    "Ana",
		LastName:     "Lee",
		Email:        "ana@ex.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Portal:       portal,
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, testAccount(domain.PortalClient))
	require.NoError(t, err)
	require.Positive(t, id)

	byEmail, err := repo.GetByEmail(ctx, "ana@ex.com", domain.PortalClient)
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
	require.Equal(t, "Ana", byEmail.FirstName)
	require.Equal(t, domain.PortalClient, byEmail.Portal)
	require.False(t, byEmail.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, byEmail, byID)
}

func TestDuplicateCredential(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testAccount(domain.PortalClient))
	require.NoError(t, err)

	_, err = repo.Create(ctx, testAccount(domain.PortalClient))
	require.ErrorIs(t, err, domain.ErrDuplicateCredential)

	// Same email under the other portal is a distinct credential.
	_, err = repo.Create(ctx, testAccount(domain.PortalBroker))
	require.NoError(t, err)
}

func TestGetMisses(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@ex.com", domain.PortalClient)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByID(ctx, 42)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLookupIsPortalScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, testAccount(domain.PortalBroker))
	require.NoError(t, err)

	_, err = repo.GetByEmail(ctx, "ana@ex.com", domain.PortalClient)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
