package auth

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
)

func buildToken(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(body)
	return "header." + encoded + ".signature"
}

func TestIdentityFromClaims_StructuredRoles(t *testing.T) {
	claims := &casdoorsdk.Claims{}
	claims.User = casdoorsdk.User{
		Id:          "cas-123",
		Email:       "marie@example.fr",
		DisplayName: "Marie Dupont",
		FirstName:   "Marie",
		LastName:    "Dupont",
		Phone:       "+33600000000",
		Roles: []*casdoorsdk.Role{
			{Name: "secretary"},
			{Name: "student"},
		},
	}

	identity := IdentityFromClaims(claims, "not-a-jwt")

	if identity.CasdoorID != "cas-123" || identity.Email != "marie@example.fr" {
		t.Errorf("Unexpected identity fields: %+v", identity)
	}
	if len(identity.RoleClaims) != 2 || identity.RoleClaims[0] != "secretary" {
		t.Errorf("Expected structured role claims, got %v", identity.RoleClaims)
	}
}

func TestIdentityFromClaims_TokenFallback(t *testing.T) {
	claims := &casdoorsdk.Claims{}
	claims.User = casdoorsdk.User{
		Id:    "cas-456",
		Email: "paul@example.fr",
	}

	token := buildToken(t, map[string]interface{}{
		"roles": []interface{}{
			"enseignant",
			map[string]interface{}{"name": "moniteur"},
		},
	})

	identity := IdentityFromClaims(claims, token)

	if len(identity.RoleClaims) != 2 {
		t.Fatalf("Expected 2 role claims from token payload, got %v", identity.RoleClaims)
	}
	if identity.RoleClaims[0] != "enseignant" || identity.RoleClaims[1] != "moniteur" {
		t.Errorf("Unexpected role claims: %v", identity.RoleClaims)
	}
}

func TestIdentityFromClaims_NoRoles(t *testing.T) {
	claims := &casdoorsdk.Claims{}
	claims.User = casdoorsdk.User{Email: "none@example.fr"}

	identity := IdentityFromClaims(claims, "malformed")

	if len(identity.RoleClaims) != 0 {
		t.Errorf("Expected no role claims, got %v", identity.RoleClaims)
	}
}
