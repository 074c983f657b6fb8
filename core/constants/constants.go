package constants

import "time"

const (
	// Database pool settings
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"

	// Default timeout for outbound provider calls
	DefaultTimeout = 10 * time.Second

	// OAuth transit state tokens are only valid for one authorization
	// round trip.
	OAuthStateTTL = 10 * time.Minute

	// Per-integration refresh lock. Must comfortably outlive a single
	// token refresh round trip.
	RefreshLockTTL = 30 * time.Second
)
