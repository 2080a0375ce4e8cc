package goidc

// AuthorizationCode is the payload persisted between the authorization and
// token endpoints. It is redeemed once and then deleted.
type AuthorizationCode struct {
	ClientID            string              `json:"client_id"`
	SubjectID           string              `json:"sub"`
	SessionID           string              `json:"sid,omitempty"`
	Description         string              `json:"description,omitempty"`
	RedirectURI         string              `json:"redirect_uri"`
	Scopes              string              `json:"scope"`
	CodeChallenge       string              `json:"code_challenge,omitempty"`
	CodeChallengeMethod CodeChallengeMethod `json:"code_challenge_method,omitempty"`
	Nonce               string              `json:"nonce,omitempty"`
	// StateHash is the hash of the state parameter, used to compute s_hash
	// for ID tokens.
	StateHash          string         `json:"state_hash,omitempty"`
	IsOpenID           bool           `json:"is_openid"`
	WasConsentShown    bool           `json:"was_consent_shown"`
	CreatedAtTimestamp int            `json:"created_at"`
	LifetimeSecs       int            `json:"lifetime_secs"`
	Claims             map[string]any `json:"claims,omitempty"`
}

func (c *AuthorizationCode) ExpiresAtTimestamp() int {
	return expiresAt(c.CreatedAtTimestamp, c.LifetimeSecs)
}

func (c *AuthorizationCode) IsExpired() bool {
	return isExpired(c.CreatedAtTimestamp, c.LifetimeSecs)
}
