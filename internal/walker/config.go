package walker

import (
	"fmt"
	"time"
)

// Config holds the connection settings for the walker backend.
type Config struct {
	// BaseURL is the root of the backend API, e.g. "http://localhost:8000".
	BaseURL string

	// UserID identifies the learner; sent as the X-User-ID header on
	// every request.
	UserID string

	// Timeout is the per-request deadline. Default: 15s.
	Timeout time.Duration
}

// DefaultConfig returns a Config with local-development defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 15 * time.Second,
	}
}

// Validate checks that the required fields are set.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("walker base URL is required")
	}
	if c.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}
