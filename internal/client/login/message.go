package login

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/yeshlogin/internal/client/identity"
	"github.com/dmitrijs2005/yeshlogin/internal/common"
)

const (
	MsgInvalidCredentials = "Invalid credentials. Please check your email and password."
	MsgAccessDenied       = "Access denied. Please check your credentials or contact support."
	MsgSessionExpired     = "Session expired. Please login again."
	MsgInvalidInput       = "Please enter a valid email and password."
	MsgGeneric            = "Login failed. Please try again."
)

// DisplayMessage maps a login failure to the text shown on the form.
func DisplayMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrInvalidInput):
		return MsgInvalidInput
	case errors.Is(err, identity.ErrForbidden), identity.StatusCode(err) == http.StatusForbidden:
		return MsgAccessDenied
	case errors.Is(err, identity.ErrUnauthorized):
		return MsgSessionExpired
	case errors.Is(err, identity.ErrRejected):
		return MsgInvalidCredentials
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgGeneric
}
