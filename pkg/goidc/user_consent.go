package goidc

import "github.com/luikyv/go-oidc-grants/internal/timeutil"

// UserConsent records the scopes a user allowed a client to access.
type UserConsent struct {
	SubjectID          string   `json:"sub"`
	ClientID           string   `json:"client_id"`
	Scopes             []string `json:"scopes"`
	CreatedAtTimestamp int      `json:"created_at"`
	// ExpiresAtTimestamp is zero when the consent is remembered forever.
	ExpiresAtTimestamp int `json:"expires_at,omitempty"`
}

func (c *UserConsent) IsExpired() bool {
	return c.ExpiresAtTimestamp != 0 && timeutil.TimestampNow() > c.ExpiresAtTimestamp
}
