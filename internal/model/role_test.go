package model

import "testing"

func TestParseRoles(t *testing.T) {
	t.Run("membership check", func(t *testing.T) {
		set := ParseRoles("ROLE_ADMIN,ROLE_USER")
		if !set.Has(RoleAdmin) {
			t.Error("expected admin role")
		}
		if !set.Has(RoleUser) {
			t.Error("expected user role")
		}
		if set.Has(Role("ROLE_OTHER")) {
			t.Error("unexpected role")
		}
	})

	t.Run("empty and whitespace segments dropped", func(t *testing.T) {
		set := ParseRoles(" ROLE_USER , ,")
		if len(set) != 1 || !set.Has(RoleUser) {
			t.Errorf("expected only ROLE_USER, got %v", set)
		}
	})

	t.Run("string round-trip is stable", func(t *testing.T) {
		set := ParseRoles("ROLE_USER,ROLE_ADMIN")
		if got := set.String(); got != "ROLE_ADMIN,ROLE_USER" {
			t.Errorf("expected sorted join, got %q", got)
		}
		if got := ParseRoles(set.String()).String(); got != set.String() {
			t.Errorf("round-trip changed value: %q", got)
		}
	})

	t.Run("empty set renders empty", func(t *testing.T) {
		set := ParseRoles("")
		if set.String() != "" {
			t.Errorf("expected empty string, got %q", set.String())
		}
		if set.Slice() != nil {
			t.Errorf("expected nil slice, got %v", set.Slice())
		}
	})
}

func TestUserHasRole(t *testing.T) {
	user := User{Roles: "ROLE_ADMIN,ROLE_USER"}
	if !user.HasRole(RoleAdmin) {
		t.Error("expected admin role")
	}

	plain := User{Roles: "ROLE_USER"}
	if plain.HasRole(RoleAdmin) {
		t.Error("plain user must not have admin role")
	}
}
