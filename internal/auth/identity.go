package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
)

// ErrMissingEmail is the only hard authentication failure: without an
// email the identity cannot be reconciled against a local user.
var ErrMissingEmail = errors.New("auth: identity provider supplied no email")

// Identity is the normalized view of an authenticated Casdoor principal.
// It carries facts only; all decisions live in the resolver.
type Identity struct {
	CasdoorID  string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Phone      string
	RoleClaims []string
}

// IdentityFromClaims builds an Identity from parsed Casdoor claims.
// Role claims are extracted in two ordered attempts: the structured user
// object first, then a raw decode of the token payload for organizations
// that put roles in a custom claim.
func IdentityFromClaims(claims *casdoorsdk.Claims, rawToken string) Identity {
	identity := Identity{
		CasdoorID:  claims.User.Id,
		Email:      claims.User.Email,
		Name:       claims.User.DisplayName,
		GivenName:  claims.User.FirstName,
		FamilyName: claims.User.LastName,
		Phone:      claims.User.Phone,
	}

	identity.RoleClaims = structuredRoleClaims(claims)
	if len(identity.RoleClaims) == 0 {
		identity.RoleClaims = decodeTokenRoleClaims(rawToken)
	}

	return identity
}

func structuredRoleClaims(claims *casdoorsdk.Claims) []string {
	names := make([]string, 0, len(claims.User.Roles))
	for _, role := range claims.User.Roles {
		if role != nil && role.Name != "" {
			names = append(names, role.Name)
		}
	}
	return names
}

// decodeTokenRoleClaims pulls a "roles" claim straight out of the JWT
// payload without signature verification. The token was already verified
// by the SDK; this is only a fallback extraction path.
func decodeTokenRoleClaims(rawToken string) []string {
	parts := strings.Split(rawToken, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}

	var body struct {
		Roles []json.RawMessage `json:"roles"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil
	}

	names := make([]string, 0, len(body.Roles))
	for _, raw := range body.Roles {
		// Entries are either plain strings or objects with a name field
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			names = append(names, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
			names = append(names, obj.Name)
		}
	}
	return names
}
