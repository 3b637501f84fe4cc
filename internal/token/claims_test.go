package token

import (
	"encoding/base64"
	"encoding/json"
	"reflect"
	"testing"
)

const testHeader = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9" // {"alg":"HS256","typ":"JWT"}

func makeToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return testHeader + "." + base64.RawURLEncoding.EncodeToString(data) + ".sig"
}

func TestDecodeClaims(t *testing.T) {
	payload := map[string]any{
		"sub":   "alice.johnson@example.com",
		"email": "alice.johnson@example.com",
		"roles": []any{"ROLE_USER"},
	}
	claims, ok := DecodeClaims(makeToken(t, payload))
	if !ok {
		t.Fatal("Expected claims for well-formed token")
	}
	if !reflect.DeepEqual(claims["roles"], []any{"ROLE_USER"}) {
		t.Errorf("Expected roles claim preserved, got %#v", claims["roles"])
	}
	if claims["email"] != "alice.johnson@example.com" {
		t.Errorf("Expected email claim preserved, got %v", claims["email"])
	}
}

func TestDecodeClaimsPaddedPayload(t *testing.T) {
	data, err := json.Marshal(map[string]any{"sub": "bob"})
	if err != nil {
		t.Fatal(err)
	}
	padded := base64.URLEncoding.EncodeToString(data) // includes '=' padding
	claims, ok := DecodeClaims(testHeader + "." + padded + ".sig")
	if !ok {
		t.Fatal("Expected padded payload to decode")
	}
	if claims["sub"] != "bob" {
		t.Errorf("Expected sub=bob, got %v", claims["sub"])
	}
}

func TestDecodeClaimsMalformed(t *testing.T) {
	tests := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"two segments", testHeader + ".eyJzdWIiOiJ4In0"},
		{"four segments", testHeader + ".eyJzdWIiOiJ4In0.sig.extra"},
		{"payload not base64", testHeader + ".!!!.sig"},
		{"payload not json", testHeader + "." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if claims, ok := DecodeClaims(tt.credential); ok {
				t.Errorf("Expected no claims, got %#v", claims)
			}
		})
	}
}
