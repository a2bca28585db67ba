package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Favorite queries.
const (
	queryListFavoriteUserIDs = `
		SELECT user_id
		FROM auction_favorites
		WHERE listing_id = $1`
)

// Profile queries.
const (
	queryListSubscriberProfiles = `
		SELECT username
		FROM profiles
		WHERE user_id = ANY($1)`
)

// Listing queries.
const (
	// Numeric and date columns are cast so they scan into the snapshot's
	// float and string pointers regardless of their storage type.
	queryGetListingSnapshot = `
		SELECT title, url, "firstReg"::text,
			mileage::float8, fuel, transmission, "engineSize"::float8,
			vin, color,
			"possiblePrice"::float8, "reservedPrice"::float8, "deliveryPrice"::float8,
			"deliveryWindowStart"::text, "deliveryWindowEnd"::text
		FROM auction_listings
		WHERE id = $1`
)
