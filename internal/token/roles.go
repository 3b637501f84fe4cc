package token

import (
	"fmt"
	"strings"
)

// Roles derives the role set from decoded claims. Values are unioned from
// the array claims "roles" and "authorities", the space-delimited "scope"
// string, and the singular "role" claim. The result is deduplicated and
// never nil; empty values are dropped.
func Roles(claims map[string]any) []string {
	seen := make(map[string]struct{})
	roles := make([]string, 0, 4)
	add := func(v any) {
		s := coerce(v)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		roles = append(roles, s)
	}
	addMany := func(v any) {
		list, ok := v.([]any)
		if !ok {
			return
		}
		for _, item := range list {
			add(item)
		}
	}

	addMany(claims["roles"])
	addMany(claims["authorities"])
	if scope, ok := claims["scope"].(string); ok {
		for _, part := range strings.Split(scope, " ") {
			add(part)
		}
	}
	if role, ok := claims["role"]; ok && role != nil {
		add(role)
	}
	return roles
}

// IsAdmin reports whether any role is the literal ADMIN or carries a
// ROLE_ADMIN authority.
func IsAdmin(roles []string) bool {
	for _, r := range roles {
		if r == "ADMIN" || strings.Contains(r, "ROLE_ADMIN") {
			return true
		}
	}
	return false
}

// Identity picks a display identity from the claims: email, then sub,
// then username. Empty when none is present.
func Identity(claims map[string]any) string {
	for _, key := range []string{"email", "sub", "username"} {
		if s, ok := claims[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func coerce(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}
