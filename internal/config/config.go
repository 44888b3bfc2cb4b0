package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultAccessTokenTTL is the lifetime of issued access tokens.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of issued refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Config holds runtime configuration assembled from CLI flags and
// environment variables. It is constructed in main and passed explicitly;
// nothing reads it as ambient global state.
type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	RefreshTokenTTL   time.Duration
	InitialAdminEmail string
}
