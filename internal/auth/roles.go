package auth

import (
	"strings"

	"github.com/formacentre/training-service/internal/models"
)

// roleSynonyms maps normalized claim strings to internal roles. French
// labels come from the Casdoor organization used in production.
var roleSynonyms = map[string]models.UserRole{
	"owner":          models.RoleOwner,
	"proprietaire":   models.RoleOwner,
	"gerant":         models.RoleOwner,
	"admin":          models.RoleAdmin,
	"administrator":  models.RoleAdmin,
	"administrateur": models.RoleAdmin,
	"secretary":      models.RoleSecretary,
	"secretaire":     models.RoleSecretary,
	"teacher":        models.RoleTeacher,
	"enseignant":     models.RoleTeacher,
	"formateur":      models.RoleTeacher,
	"instructor":     models.RoleInstructor,
	"moniteur":       models.RoleInstructor,
	"student":        models.RoleStudent,
	"eleve":          models.RoleStudent,
	"stagiaire":      models.RoleStudent,
}

// MapClaimsToRoles translates provider role claims into the internal role
// set and elects a primary role by fixed precedence. The set always
// contains STUDENT; unrecognized claims are ignored. Pure function.
func MapClaimsToRoles(claims []string) ([]models.UserRole, models.UserRole) {
	granted := map[models.UserRole]bool{
		models.RoleStudent: true,
	}

	for _, claim := range claims {
		normalized := normalizeClaim(claim)
		if role, ok := roleSynonyms[normalized]; ok {
			granted[role] = true
		}
	}

	roles := make([]models.UserRole, 0, len(granted))
	var primary models.UserRole
	for _, role := range models.RolePrecedence {
		if granted[role] {
			roles = append(roles, role)
			if primary == "" {
				primary = role
			}
		}
	}

	return roles, primary
}

// normalizeClaim lowercases and strips accents used in French role labels.
func normalizeClaim(claim string) string {
	normalized := strings.ToLower(strings.TrimSpace(claim))
	replacer := strings.NewReplacer("é", "e", "è", "e", "ê", "e", "à", "a")
	return replacer.Replace(normalized)
}

// SameRoleSet reports whether two role slices contain the same roles,
// ignoring order.
func SameRoleSet(a, b []models.UserRole) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[models.UserRole]bool, len(a))
	for _, role := range a {
		set[role] = true
	}
	for _, role := range b {
		if !set[role] {
			return false
		}
	}
	return true
}
