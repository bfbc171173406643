// Package common contains constants and small helpers shared by the client
// and the forwarding server.
package common

const (
	// TokenKey and AccessTokenKey are the two durable-storage keys that hold
	// the bearer token. Both always carry the same value; either one is
	// enough to restore a session.
	TokenKey       = "token"
	AccessTokenKey = "accessToken"

	// DefaultProfileEndpoint is the remote path of the primary user-info lookup.
	DefaultProfileEndpoint = "/user/info"

	// ForwardPath is where the forwarding server accepts user-info lookups.
	ForwardPath = "/api/userInfo"

	// DashboardRoute is the view a successful login navigates to.
	DashboardRoute = "/dashboard"
	// LoginRoute is the view shown when there is no session.
	LoginRoute = "/"
)

// TokenKeys lists the durable-storage keys in rehydration preference order.
var TokenKeys = []string{TokenKey, AccessTokenKey}
