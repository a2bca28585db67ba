package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// It talks to the data store's database directly instead of its REST gateway.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize sets the maximum number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = int32(n) //nolint:gosec // pool size is small and validated by config
		}
	}
}

// WithPassword sets the connection password, overriding any password in the
// connection string. The service credential is kept out of the URL this way.
func WithPassword(password string) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if password != "" {
			cfg.ConnConfig.Password = password
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// ListFavoriteUserIDs returns the user IDs with a favorite on the listing.
func (s *PostgresStore) ListFavoriteUserIDs(ctx context.Context, listingID string) ([]string, error) {
	rows, err := s.pool.Query(ctx, queryListFavoriteUserIDs, listingID)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableFavorites, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", tableFavorites, err)
	}

	return ids, nil
}

// ListSubscriberProfiles returns the profiles of the given users. Users
// without a profile are absent from the result.
func (s *PostgresStore) ListSubscriberProfiles(
	ctx context.Context,
	userIDs []string,
) ([]domain.SubscriberProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, queryListSubscriberProfiles, userIDs)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableProfiles, err)
	}

	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SubscriberProfile, error) {
		var p domain.SubscriberProfile
		err := row.Scan(&p.Username)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", tableProfiles, err)
	}

	return profiles, nil
}

// GetListingSnapshot retrieves the listing attributes used in notifications.
func (s *PostgresStore) GetListingSnapshot(
	ctx context.Context,
	listingID string,
) (*domain.ListingSnapshot, error) {
	l := &domain.ListingSnapshot{}
	err := s.pool.QueryRow(ctx, queryGetListingSnapshot, listingID).Scan(
		&l.Title, &l.URL, &l.FirstReg,
		&l.Mileage, &l.Fuel, &l.Transmission, &l.EngineSize,
		&l.VIN, &l.Color,
		&l.PossiblePrice, &l.ReservedPrice, &l.DeliveryPrice,
		&l.DeliveryWindowStart, &l.DeliveryWindowEnd,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("listing %s: %w", listingID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableListings, err)
	}

	return l, nil
}
