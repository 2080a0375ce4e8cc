package goidc

// GrantType tags a persisted grant with the kind of artifact it holds.
type GrantType string

const (
	GrantAuthorizationCode GrantType = "authorization_code"
	GrantReferenceToken    GrantType = "reference_token"
	GrantRefreshToken      GrantType = "refresh_token"
	GrantUserConsent       GrantType = "user_consent"
	GrantDeviceCode        GrantType = "device_code"
)

// HandleLength is the number of random bytes used by the default handle
// generator. Handles are hex encoded, so they are twice as long.
const HandleLength int = 32

const (
	ClaimSubject   string = "sub"
	ClaimSessionID string = "sid"
	ClaimScope     string = "scope"
	ClaimClientID  string = "client_id"
)

type AccessTokenType string

const (
	AccessTokenTypeJWT       AccessTokenType = "jwt"
	AccessTokenTypeReference AccessTokenType = "reference"
)

type TokenType string

const (
	TokenTypeBearer TokenType = "Bearer"
	TokenTypeDPoP   TokenType = "DPoP"
)

type CodeChallengeMethod string

const (
	CodeChallengeMethodSHA256 CodeChallengeMethod = "S256"
	CodeChallengeMethodPlain  CodeChallengeMethod = "plain"
)
