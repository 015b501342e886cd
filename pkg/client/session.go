package client

import (
	"context"
	"net/http"
	"time"
)

// Session describes the current voice session state
type Session struct {
	State            string     `json:"state"`
	SelectedLanguage string     `json:"selectedLanguage,omitempty"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// GetSession returns the current voice session
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/session", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SelectLanguage arms the voice session with a dictation language. The
// selection applies to the next translation only and expires after five
// minutes.
func (c *Client) SelectLanguage(ctx context.Context, languageCode string) (*Session, error) {
	req := map[string]string{"language": languageCode}

	var s Session
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/session/language", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ClearSession resets the voice session to idle
func (c *Client) ClearSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.doRequest(ctx, http.MethodDelete, "/api/v1/session/language", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
