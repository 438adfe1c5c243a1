package domain

import "time"

// Credentials is the exchange API key pair; treated as opaque outside the
// exchange adapter.
type Credentials struct {
	APIKey    string
	APISecret string
}

type User struct {
	TelegramID       int64
	TelegramUsername string
	Credentials      Credentials
	Wallet           Wallet
	// FullyUpdated flips to true once the order history backfill completes.
	FullyUpdated bool
	CreatedAt    time.Time
}
