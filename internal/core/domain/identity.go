package domain

// UserInfo is the public view of a registered identity. The connection handle
// and any pending offer stay server-side.
type UserInfo struct {
	Username     string `json:"username"`
	ConnectionID string `json:"id"`
}
