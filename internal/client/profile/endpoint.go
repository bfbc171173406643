package profile

import "github.com/dmitrijs2005/yeshlogin/internal/common"

// Endpoint describes one remote profile lookup.
type Endpoint struct {
	// Path is the API path relative to the identity base URL.
	Path string
	// Primary marks the endpoint tried first and used for token probes.
	Primary bool
}

// DefaultEndpoints is the lookup order used after the embedded profile.
var DefaultEndpoints = []Endpoint{
	{Path: common.DefaultProfileEndpoint, Primary: true},
	{Path: "/users/me"},
	{Path: "/user/profile"},
	{Path: "/auth/user"},
	{Path: "/me"},
	{Path: "/account"},
}
