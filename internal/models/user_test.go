package models

import "testing"

func TestUserRole_Satisfies(t *testing.T) {
	tests := []struct {
		name     string
		held     UserRole
		required UserRole
		want     bool
	}{
		{"exact match", RoleSecretary, RoleSecretary, true},
		{"admin satisfies secretary", RoleAdmin, RoleSecretary, true},
		{"owner satisfies everything", RoleOwner, RoleTeacher, true},
		{"student does not satisfy secretary", RoleStudent, RoleSecretary, false},
		{"teacher does not satisfy instructor", RoleTeacher, RoleInstructor, false},
		{"instructor does not satisfy teacher", RoleInstructor, RoleTeacher, false},
		{"secretary satisfies instructor", RoleSecretary, RoleInstructor, true},
		{"secretary satisfies teacher", RoleSecretary, RoleTeacher, true},
		{"teacher satisfies student", RoleTeacher, RoleStudent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.held.Satisfies(tt.required); got != tt.want {
				t.Errorf("%s.Satisfies(%s) = %v, want %v", tt.held, tt.required, got, tt.want)
			}
		})
	}
}

func TestUser_HasRole(t *testing.T) {
	user := &User{
		Roles: []UserRole{RoleInstructor, RoleStudent},
	}

	if !user.HasRole(RoleInstructor) {
		t.Error("Expected instructor role to be granted")
	}
	if !user.HasRole(RoleStudent) {
		t.Error("Expected student role to be granted")
	}
	if user.HasRole(RoleTeacher) {
		t.Error("Instructor must not satisfy a teacher requirement")
	}
	if user.HasRole(RoleAdmin) {
		t.Error("Instructor must not satisfy an admin requirement")
	}
}

func TestUser_HasRole_LegacyFallback(t *testing.T) {
	// Rows created before the roles column rely on the single role field
	user := &User{Role: RoleAdmin}

	if !user.HasRole(RoleSecretary) {
		t.Error("Legacy admin should satisfy secretary requirement")
	}

	// Once roles are populated the legacy field is ignored
	user.Roles = []UserRole{RoleStudent}
	if user.HasRole(RoleSecretary) {
		t.Error("Populated roles must take precedence over the legacy field")
	}
}

func TestRolePrecedence_CoversAllRoles(t *testing.T) {
	if len(RolePrecedence) != 6 {
		t.Fatalf("Expected 6 roles in precedence order, got %d", len(RolePrecedence))
	}
	for i := 1; i < len(RolePrecedence); i++ {
		if RolePrecedence[i-1].Level() < RolePrecedence[i].Level() {
			t.Errorf("Precedence order broken between %s and %s",
				RolePrecedence[i-1], RolePrecedence[i])
		}
	}
}
