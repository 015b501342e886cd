package client

import (
	"context"
	"net/http"
	"time"
)

// LanguageCatalog lists the supported languages and the user's pair
type LanguageCatalog struct {
	Supported []Language   `json:"supported"`
	Pair      LanguagePair `json:"pair"`
}

// Limits is the current quota state
type Limits struct {
	Tier             string    `json:"tier"`
	DailyLimit       int64     `json:"daily_limit"`
	DailyUsed        int64     `json:"daily_used"`
	DailyRemaining   int64     `json:"daily_remaining"`
	MonthlyLimit     int64     `json:"monthly_limit"`
	MonthlyUsed      int64     `json:"monthly_used"`
	MonthlyRemaining int64     `json:"monthly_remaining"`
	TotalUsed        int64     `json:"total_used"`
	CheckedAt        time.Time `json:"checked_at"`
}

// Stats summarizes lifetime translation activity
type Stats struct {
	TotalTranslations int64 `json:"totalTranslations"`
	TotalTokensUsed   int64 `json:"totalTokensUsed"`
	StoredExchanges   int64 `json:"storedExchanges"`
}

// Languages returns the supported language catalog and the user's pair
func (c *Client) Languages(ctx context.Context) (*LanguageCatalog, error) {
	var catalog LanguageCatalog
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/languages", nil, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// SetLanguages replaces the user's language pair
func (c *Client) SetLanguages(ctx context.Context, primary, secondary string) (*LanguagePair, error) {
	req := map[string]string{"primary": primary, "secondary": secondary}

	var pair LanguagePair
	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/languages", req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// SwapLanguages exchanges the pair's primary and secondary members
func (c *Client) SwapLanguages(ctx context.Context) (*LanguagePair, error) {
	var pair LanguagePair
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/languages/swap", nil, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// GetLimits returns the current quota state without consuming tokens
func (c *Client) GetLimits(ctx context.Context) (*Limits, error) {
	var limits Limits
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/limits", nil, &limits); err != nil {
		return nil, err
	}
	return &limits, nil
}

// GetStats returns lifetime translation statistics
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Upgrade switches the account to the premium tier for the given number
// of months
func (c *Client) Upgrade(ctx context.Context, months int) (*User, error) {
	req := map[string]int{"months": months}

	var u User
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/subscription/upgrade", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Health checks whether the API is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/healthz", nil, nil)
}
