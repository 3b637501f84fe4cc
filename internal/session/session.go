// Package session holds the page-lifetime authentication record. Exactly
// one Session exists per process run, owned by the console controller; it
// is created on successful sign-in and destroyed on logout or when an
// authenticated call reports an expired credential.
package session

import "github.com/libroteca/librocli/internal/token"

type Session struct {
	credential string
	claims     map[string]any
}

func New() *Session {
	return &Session{}
}

// Start installs a fresh credential, replacing any previous one. Claims
// are decoded best-effort; an undecodable payload leaves them nil, which
// routes the caller to the lowest-privilege view.
func (s *Session) Start(credential string) {
	s.credential = credential
	s.claims = nil
	if claims, ok := token.DecodeClaims(credential); ok {
		s.claims = claims
	}
}

// Clear destroys the session.
func (s *Session) Clear() {
	s.credential = ""
	s.claims = nil
}

func (s *Session) Active() bool {
	return s.credential != ""
}

func (s *Session) Credential() string {
	return s.credential
}

func (s *Session) Claims() map[string]any {
	return s.claims
}
