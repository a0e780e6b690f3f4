package rbac

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role, perm string
		want       bool
	}{
		{RoleInfluencer, PermApply, true},
		{RoleInfluencer, PermAcceptApplication, false},
		{RoleBrand, PermGiveFeedback, true},
		{RoleBrand, PermApply, false},
		{"admin", PermApply, false},
	}
	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		role, actor string
		want        bool
	}{
		{RoleInfluencer, RoleInfluencer, true},
		{RoleInfluencer, RoleBrand, false},
		{RoleBrand, RoleBrand, true},
		{RoleBrand, RoleInfluencer, false},
		{RoleInfluencer, "", true},
		{"admin", "admin", false},
	}
	for _, tt := range tests {
		if got := CanAdvance(tt.role, tt.actor); got != tt.want {
			t.Errorf("CanAdvance(%q, %q) = %v, want %v", tt.role, tt.actor, got, tt.want)
		}
	}
}
