package policy

import "time"

// Config holds the lending policy constants. Every rate and period used by the
// loan, reservation, fine and recommendation features is read from here.
type Config struct {
	// LoanDays is the loan period added to the borrow time to get the due date.
	LoanDays int `mapstructure:"loan_days" default:"14"`
	// ReservationWindowDays is the default reservation window when no dates are supplied.
	ReservationWindowDays int `mapstructure:"reservation_window_days" default:"7"`
	// FineRateCents is the canonical overdue fine per started day, in cents.
	FineRateCents int64 `mapstructure:"fine_rate_cents" default:"100"`
	// RecommendationLimit caps the number of suggested books.
	RecommendationLimit int `mapstructure:"recommendation_limit" default:"10"`
	// RecommendationCacheSeconds is the per-user cache TTL. Zero disables caching.
	RecommendationCacheSeconds int `mapstructure:"recommendation_cache_seconds" default:"300"`
}

// Default returns the policy used when nothing is configured.
func Default() Config {
	return Config{
		LoanDays:                   14,
		ReservationWindowDays:      7,
		FineRateCents:              100,
		RecommendationLimit:        10,
		RecommendationCacheSeconds: 300,
	}
}

// LoanPeriod returns the loan period as a duration.
func (c Config) LoanPeriod() time.Duration {
	return time.Duration(c.LoanDays) * 24 * time.Hour
}

// ReservationWindow returns the default reservation window as a duration.
func (c Config) ReservationWindow() time.Duration {
	return time.Duration(c.ReservationWindowDays) * 24 * time.Hour
}

// RecommendationTTL returns the recommendation cache TTL.
func (c Config) RecommendationTTL() time.Duration {
	return time.Duration(c.RecommendationCacheSeconds) * time.Second
}
