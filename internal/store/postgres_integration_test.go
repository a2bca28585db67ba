//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/price-alert-notifier/internal/store"
	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// seedSQL creates one fully populated listing, one sparse listing, three
// profiles, and favorites including one from a user without a profile.
const seedSQL = `
INSERT INTO auction_listings (id, title, url, "firstReg", mileage, fuel, transmission,
	"engineSize", vin, color, "possiblePrice", "reservedPrice", "deliveryPrice",
	"deliveryWindowStart", "deliveryWindowEnd")
VALUES ('full', '2019 Audi A4 Avant', 'https://auctions.example.com/l/full', '2019-03-01',
	84500, 'Diesel', 'Automatic', 110, 'WAUZZZF40KA000000', 'Black',
	18250.50, 17000, 450, '2026-11-01', '2026-11-15');

INSERT INTO auction_listings (id, title) VALUES ('sparse', 'Untitled lot');

INSERT INTO profiles (user_id, username) VALUES
	('u1', 'ana@example.com'),
	('u2', 'bo@example.com'),
	('u3', 'cy@example.com');

INSERT INTO auction_favorites (user_id, listing_id) VALUES
	('u1', 'full'),
	('u2', 'full'),
	('ghost', 'full'),
	('u3', 'sparse');
`

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("notifier_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, store.WithPoolSize(4), store.WithPassword("test"))
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))
	// Migrations are idempotent.
	require.NoError(t, s.Migrate(ctx))

	require.NoError(t, execSeed(ctx, connStr))

	return s
}

func execSeed(ctx context.Context, connStr string) error {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, seedSQL)
	return err
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_ListFavoriteUserIDs(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("listing with favorites", func(t *testing.T) {
		ids, err := s.ListFavoriteUserIDs(ctx, "full")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u1", "u2", "ghost"}, ids)
	})

	t.Run("listing without favorites", func(t *testing.T) {
		ids, err := s.ListFavoriteUserIDs(ctx, "nobody-likes-this")
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestPostgresStore_ListSubscriberProfiles(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	profiles, err := s.ListSubscriberProfiles(ctx, []string{"u1", "u2", "ghost"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.SubscriberProfile{
		{Username: "ana@example.com"},
		{Username: "bo@example.com"},
	}, profiles, "users without a profile are dropped")

	none, err := s.ListSubscriberProfiles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgresStore_GetListingSnapshot(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	t.Run("full listing", func(t *testing.T) {
		l, err := s.GetListingSnapshot(ctx, "full")
		require.NoError(t, err)
		require.NotNil(t, l.Title)
		assert.Equal(t, "2019 Audi A4 Avant", *l.Title)
		require.NotNil(t, l.FirstReg)
		assert.Equal(t, "2019-03-01", *l.FirstReg)
		require.NotNil(t, l.Mileage)
		assert.InDelta(t, 84500, *l.Mileage, 0.001)
		require.NotNil(t, l.PossiblePrice)
		assert.InDelta(t, 18250.50, *l.PossiblePrice, 0.001)
		require.NotNil(t, l.DeliveryWindowEnd)
		assert.Equal(t, "2026-11-15", *l.DeliveryWindowEnd)
	})

	t.Run("sparse listing has nil fields", func(t *testing.T) {
		l, err := s.GetListingSnapshot(ctx, "sparse")
		require.NoError(t, err)
		assert.Nil(t, l.URL)
		assert.Nil(t, l.Mileage)
		assert.Nil(t, l.PossiblePrice)
		assert.Nil(t, l.DeliveryWindowStart)
	})

	t.Run("missing listing", func(t *testing.T) {
		_, err := s.GetListingSnapshot(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
