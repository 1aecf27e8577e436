package auth

import (
	"testing"

	"github.com/formacentre/training-service/internal/models"
)

func TestMapClaimsToRoles_Baseline(t *testing.T) {
	roles, primary := MapClaimsToRoles(nil)

	if len(roles) != 1 || roles[0] != models.RoleStudent {
		t.Fatalf("Expected [student] for empty claims, got %v", roles)
	}
	if primary != models.RoleStudent {
		t.Errorf("Expected primary student, got %s", primary)
	}
}

func TestMapClaimsToRoles_Synonyms(t *testing.T) {
	tests := []struct {
		name    string
		claims  []string
		want    []models.UserRole
		primary models.UserRole
	}{
		{
			name:    "owner claim",
			claims:  []string{"owner"},
			want:    []models.UserRole{models.RoleOwner, models.RoleStudent},
			primary: models.RoleOwner,
		},
		{
			name:    "french synonyms map to canonical roles",
			claims:  []string{"enseignant", "moniteur"},
			want:    []models.UserRole{models.RoleTeacher, models.RoleInstructor, models.RoleStudent},
			primary: models.RoleTeacher,
		},
		{
			name:    "accented secretary",
			claims:  []string{"secrétaire"},
			want:    []models.UserRole{models.RoleSecretary, models.RoleStudent},
			primary: models.RoleSecretary,
		},
		{
			name:    "unknown claims are ignored",
			claims:  []string{"janitor", "alien"},
			want:    []models.UserRole{models.RoleStudent},
			primary: models.RoleStudent,
		},
		{
			name:    "duplicates collapse",
			claims:  []string{"admin", "administrateur", "ADMIN"},
			want:    []models.UserRole{models.RoleAdmin, models.RoleStudent},
			primary: models.RoleAdmin,
		},
		{
			name:    "instructor alone stays instructor",
			claims:  []string{"moniteur"},
			want:    []models.UserRole{models.RoleInstructor, models.RoleStudent},
			primary: models.RoleInstructor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles, primary := MapClaimsToRoles(tt.claims)

			if len(roles) != len(tt.want) {
				t.Fatalf("Expected roles %v, got %v", tt.want, roles)
			}
			for i, role := range tt.want {
				if roles[i] != role {
					t.Errorf("Expected role %s at position %d, got %s", role, i, roles[i])
				}
			}
			if primary != tt.primary {
				t.Errorf("Expected primary %s, got %s", tt.primary, primary)
			}
		})
	}
}

func TestMapClaimsToRoles_TeacherWinsPrimaryTie(t *testing.T) {
	// TEACHER and INSTRUCTOR share a precedence level; TEACHER must win
	// the primary election regardless of claim order.
	_, primary := MapClaimsToRoles([]string{"instructor", "teacher"})
	if primary != models.RoleTeacher {
		t.Errorf("Expected teacher as primary, got %s", primary)
	}

	_, primary = MapClaimsToRoles([]string{"teacher", "instructor"})
	if primary != models.RoleTeacher {
		t.Errorf("Expected teacher as primary, got %s", primary)
	}
}

func TestMapClaimsToRoles_Deterministic(t *testing.T) {
	a, primaryA := MapClaimsToRoles([]string{"admin", "moniteur", "owner"})
	b, primaryB := MapClaimsToRoles([]string{"owner", "admin", "moniteur"})

	if !SameRoleSet(a, b) {
		t.Errorf("Expected identical role sets, got %v and %v", a, b)
	}
	if primaryA != primaryB || primaryA != models.RoleOwner {
		t.Errorf("Expected owner primary from both orders, got %s and %s", primaryA, primaryB)
	}
}

func TestSameRoleSet(t *testing.T) {
	a := []models.UserRole{models.RoleAdmin, models.RoleStudent}
	b := []models.UserRole{models.RoleAdmin, models.RoleStudent}
	c := []models.UserRole{models.RoleStudent}

	if !SameRoleSet(a, b) {
		t.Error("Expected equal sets to match")
	}
	if SameRoleSet(a, c) {
		t.Error("Expected different sets not to match")
	}
	if SameRoleSet(nil, a) {
		t.Error("Expected nil not to match a populated set")
	}
}
