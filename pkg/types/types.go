// Package domain defines the core business types for the price alert notifier.
package domain

// NotificationRequest is the inbound request to notify subscribers of a listing.
type NotificationRequest struct {
	ListingID string `json:"listing_id"`
	APIKey    string `json:"api_key"`
}

// FavoriteRecord links a user to a listing they want updates about.
type FavoriteRecord struct {
	UserID string `json:"user_id" db:"user_id"`
}

// SubscriberProfile is the profile of a subscriber. Username doubles as the
// mail delivery address.
type SubscriberProfile struct {
	Username string `json:"username" db:"username"`
}

// ListingSnapshot is a read-only view of an auction listing, fetched once per
// request. Nil fields are missing in the data store.
type ListingSnapshot struct {
	Title        *string  `json:"title"        db:"title"`
	URL          *string  `json:"url"          db:"url"`
	FirstReg     *string  `json:"firstReg"     db:"firstReg"`
	Mileage      *float64 `json:"mileage"      db:"mileage"`
	Fuel         *string  `json:"fuel"         db:"fuel"`
	Transmission *string  `json:"transmission" db:"transmission"`
	EngineSize   *float64 `json:"engineSize"   db:"engineSize"`
	VIN          *string  `json:"vin"          db:"vin"`
	Color        *string  `json:"color"        db:"color"`

	// Pricing
	PossiblePrice *float64 `json:"possiblePrice" db:"possiblePrice"`
	ReservedPrice *float64 `json:"reservedPrice" db:"reservedPrice"`
	DeliveryPrice *float64 `json:"deliveryPrice" db:"deliveryPrice"`

	// Delivery
	DeliveryWindowStart *string `json:"deliveryWindowStart" db:"deliveryWindowStart"`
	DeliveryWindowEnd   *string `json:"deliveryWindowEnd"   db:"deliveryWindowEnd"`
}

// RenderedMessage is the notification content sent to every subscriber.
type RenderedMessage struct {
	Subject string
	Body    string
}

// DispatchOutcome is the result of sending the notification to one subscriber.
// StatusCode is the mail service's HTTP status on failure, or 0 when no
// response was received.
type DispatchOutcome struct {
	Recipient  string
	OK         bool
	StatusCode int
	Err        error
}

// DispatchSummary describes how a notification request terminated.
type DispatchSummary struct {
	ListingID     string
	NoSubscribers bool
	Subscribers   int
	Recipients    int
	Sent          int
	Failed        int
	Outcomes      []DispatchOutcome
}

// Preview is a dry run of a notification: what would be sent and to whom.
type Preview struct {
	ListingID  string   `json:"listing_id"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	Recipients []string `json:"recipients"`
}
