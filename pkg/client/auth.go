package client

import (
	"context"
	"net/http"
	"time"
)

// Language describes one supported language
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// LanguagePair is a user's configured translation pair
type LanguagePair struct {
	Primary   Language `json:"primary"`
	Secondary Language `json:"secondary"`
}

// User is the API's user representation
type User struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	Username    string       `json:"username,omitempty"`
	Tier        string       `json:"tier"`
	TierExpires *time.Time   `json:"tierExpires,omitempty"`
	Languages   LanguagePair `json:"languages"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Login authenticates with email and password. On success the access
// token is stored on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{Email: email, Password: password}

	var resp AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Register creates a new account and logs it in
func (c *Client) Register(ctx context.Context, email, password, username string) (*AuthResponse, error) {
	req := RegisterRequest{Email: email, Password: password, Username: username}

	var resp AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	req := map[string]string{"refreshToken": refreshToken}

	var resp AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", req, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Me returns the authenticated user
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
