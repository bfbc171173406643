package identity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/yeshlogin/internal/client/models"
)

// embeddedProfileKeys are the token-response fields some backend variants
// use to return the user alongside the token.
var embeddedProfileKeys = []string{"user", "userData", "profile"}

// parseProfile normalizes a user object into a UserProfile. Backends differ
// in field names, so several aliases are tried per field.
func parseProfile(raw map[string]any) models.UserProfile {
	p := models.UserProfile{
		ID:    firstString(raw, "id", "userId", "user_id", "employeeId", "sub"),
		Email: firstString(raw, "email", "mail", "emailAddress"),
		Name:  firstString(raw, "name", "fullName", "full_name", "displayName", "display_name"),
	}

	if p.Name == "" {
		first := firstString(raw, "firstName", "first_name", "given_name")
		last := firstString(raw, "lastName", "last_name", "family_name")
		p.Name = strings.TrimSpace(first + " " + last)
	}

	return p
}

// embeddedProfile extracts the first user object found in a token response.
func embeddedProfile(body map[string]any) *models.UserProfile {
	for _, key := range embeddedProfileKeys {
		obj, ok := body[key].(map[string]any)
		if !ok {
			continue
		}
		p := parseProfile(obj)
		return &p
	}
	return nil
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(data, k); s != "" {
			return s
		}
	}
	return ""
}

// stringValue reads data[key] as a string. Numeric IDs are common, so
// numbers are formatted without a trailing ".0".
func stringValue(data map[string]any, key string) string {
	val, ok := data[key]
	if !ok || val == nil {
		return ""
	}
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool, map[string]any, []any:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
