// Package store defines the datastore abstraction for price-alert-notifier.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// ErrNotFound is returned when a single-row lookup matches no row.
var ErrNotFound = errors.New("not found")

// Table names in the managed data store.
const (
	tableFavorites = "auction_favorites"
	tableProfiles  = "profiles"
	tableListings  = "auction_listings"
)

// Store defines the read-only data access the notifier needs.
type Store interface {
	// Favorites
	ListFavoriteUserIDs(ctx context.Context, listingID string) ([]string, error)

	// Profiles
	ListSubscriberProfiles(ctx context.Context, userIDs []string) ([]domain.SubscriberProfile, error)

	// Listings
	GetListingSnapshot(ctx context.Context, listingID string) (*domain.ListingSnapshot, error)

	// Health
	Ping(ctx context.Context) error
}
