package goidc

// DeviceCode is the state of a device authorization request. The device
// polls with the device code while the user approves the request with the
// user code.
type DeviceCode struct {
	UserCode           string   `json:"user_code"`
	ClientID           string   `json:"client_id"`
	SubjectID          string   `json:"sub,omitempty"`
	SessionID          string   `json:"sid,omitempty"`
	Description        string   `json:"description,omitempty"`
	RequestedScopes    []string `json:"requested_scopes"`
	AuthorizedScopes   []string `json:"authorized_scopes,omitempty"`
	IsAuthorized       bool     `json:"is_authorized"`
	IsOpenID           bool     `json:"is_openid"`
	CreatedAtTimestamp int      `json:"created_at"`
	LifetimeSecs       int      `json:"lifetime_secs"`
}

func (c *DeviceCode) ExpiresAtTimestamp() int {
	return expiresAt(c.CreatedAtTimestamp, c.LifetimeSecs)
}

func (c *DeviceCode) IsExpired() bool {
	return isExpired(c.CreatedAtTimestamp, c.LifetimeSecs)
}
