package goidc

import (
	"strings"

	"github.com/go-jose/go-jose/v4"
	"github.com/luikyv/go-oidc-grants/internal/hashutil"
	"github.com/luikyv/go-oidc-grants/internal/timeutil"
)

// Token is the server side representation of an access token. Reference
// tokens are persisted with this payload and looked up by handle during
// introspection.
type Token struct {
	Audiences          []string        `json:"aud,omitempty"`
	Issuer             string          `json:"iss"`
	CreatedAtTimestamp int             `json:"created_at"`
	LifetimeSecs       int             `json:"lifetime_secs"`
	Type               TokenType       `json:"type"`
	AccessTokenType    AccessTokenType `json:"access_token_type"`
	ClientID           string          `json:"client_id"`
	Description        string          `json:"description,omitempty"`
	// Claims must contain at least the subject when the token was issued to
	// an end user.
	Claims       map[string]any `json:"claims,omitempty"`
	Confirmation *Confirmation  `json:"cnf,omitempty"`
	Version      int            `json:"version"`
}

// Confirmation binds a token to a key held by the client.
type Confirmation struct {
	// JWKThumbprint is the thumbprint of the JWK informed via DPoP.
	JWKThumbprint string `json:"jkt,omitempty"`
	// ClientCertThumbprint is the thumbprint of the certificate informed by
	// the client when requesting the token.
	ClientCertThumbprint string `json:"x5t#S256,omitempty"`
}

// NewDPoPConfirmation binds a token to the public key the client proved
// possession of with DPoP.
func NewDPoPConfirmation(jwk jose.JSONWebKey) (*Confirmation, error) {
	jkt, err := hashutil.JWKThumbprint(jwk)
	if err != nil {
		return nil, err
	}
	return &Confirmation{JWKThumbprint: jkt}, nil
}

func (t *Token) SubjectID() string {
	return t.stringClaim(ClaimSubject)
}

func (t *Token) SessionID() string {
	return t.stringClaim(ClaimSessionID)
}

// Scopes returns the space separated values of the scope claim.
func (t *Token) Scopes() []string {
	return strings.Fields(t.stringClaim(ClaimScope))
}

func (t *Token) ExpiresAtTimestamp() int {
	return expiresAt(t.CreatedAtTimestamp, t.LifetimeSecs)
}

func (t *Token) IsExpired() bool {
	return isExpired(t.CreatedAtTimestamp, t.LifetimeSecs)
}

func (t *Token) stringClaim(name string) string {
	if t.Claims == nil {
		return ""
	}
	s, _ := t.Claims[name].(string)
	return s
}

func expiresAt(createdAt, lifetimeSecs int) int {
	return createdAt + lifetimeSecs
}

func isExpired(createdAt, lifetimeSecs int) bool {
	return timeutil.TimestampNow() > expiresAt(createdAt, lifetimeSecs)
}

// RefreshToken is the payload persisted for refresh tokens. AccessToken is
// the template used to issue new access tokens when the refresh token is
// redeemed.
type RefreshToken struct {
	CreatedAtTimestamp  int    `json:"created_at"`
	LifetimeSecs        int    `json:"lifetime_secs"`
	ConsumedAtTimestamp int    `json:"consumed_at,omitempty"`
	AccessToken         *Token `json:"access_token"`
	Version             int    `json:"version"`
}

func (t *RefreshToken) ClientID() string {
	if t.AccessToken == nil {
		return ""
	}
	return t.AccessToken.ClientID
}

func (t *RefreshToken) SubjectID() string {
	if t.AccessToken == nil {
		return ""
	}
	return t.AccessToken.SubjectID()
}

func (t *RefreshToken) SessionID() string {
	if t.AccessToken == nil {
		return ""
	}
	return t.AccessToken.SessionID()
}

func (t *RefreshToken) Description() string {
	if t.AccessToken == nil {
		return ""
	}
	return t.AccessToken.Description
}

func (t *RefreshToken) ExpiresAtTimestamp() int {
	return expiresAt(t.CreatedAtTimestamp, t.LifetimeSecs)
}

func (t *RefreshToken) IsExpired() bool {
	return isExpired(t.CreatedAtTimestamp, t.LifetimeSecs)
}
