package domain

import "time"

// RefreshToken is the server-side record backing a refresh JWT. At most one live
// record exists per username; login replaces any prior records.
type RefreshToken struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// TokenPair is an issued access/refresh token combination.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// OTP is a one-time email login code. At most one live code exists per email.
type OTP struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
}
