package constants

import "time"

const (
	// PageSize is the fixed number of matches requested per page.
	PageSize = 20

	// MarkupRate is applied to the best quoted price to derive the
	// board's own displayed reference price.
	MarkupRate = 1.05

	RefreshInterval = 30 * time.Second
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	LogoCacheTTL    = 24 * time.Hour
	LogoWarmWorkers = 4
)

const (
	ShutdownTimeout = 5 * time.Second
)
