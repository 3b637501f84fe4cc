// Package token inspects JWT credentials on a best-effort basis. Nothing
// here verifies a signature: the backend is the only trust boundary, and
// the decoded claims drive view routing only.
package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// DecodeClaims decodes the payload segment of a JWT without verifying it.
// Returns false for anything that is not a three-segment token with a
// decodable JSON payload.
func DecodeClaims(credential string) (map[string]any, bool) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithPaddingAllowed())
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, false
	}
	return claims, true
}
