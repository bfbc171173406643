// Package forward implements the user-info forwarding endpoint.
//
// POST /api/userInfo accepts {"token": "...", "endpoint": "/..."} and
// performs GET <identity base><endpoint> with the token as a bearer
// credential, relaying the remote JSON. The endpoint defaults to
// /user/info. The handler adds nothing beyond error shaping: remote
// failures keep the remote status code.
package forward
