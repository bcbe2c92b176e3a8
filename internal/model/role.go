package model

import "strings"

// Role is a user-level capability tag. It is independent of the tenant's
// administrative scope; the two are checked separately wherever both apply.
type Role string

const (
	// RoleAdmin enables user management and content mutation actions
	RoleAdmin Role = "ROLE_ADMIN"
	// RoleUser is the baseline role every account carries
	RoleUser Role = "ROLE_USER"
)

// RoleSet is a typed set of roles supporting membership checks
type RoleSet map[Role]struct{}

// ParseRoles parses a comma-joined role column into a RoleSet.
// Unknown tags are kept; empty segments are dropped.
func ParseRoles(s string) RoleSet {
	set := RoleSet{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		set[Role(part)] = struct{}{}
	}
	return set
}

// Has reports set membership
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// String renders the set back to the comma-joined storage form
func (s RoleSet) String() string {
	parts := make([]string, 0, len(s))
	for role := range s {
		parts = append(parts, string(role))
	}
	// Stable order for storage and comparison
	for i := 0; i < len(parts); i++ {
		for j := i + 1; j < len(parts); j++ {
			if parts[j] < parts[i] {
				parts[i], parts[j] = parts[j], parts[i]
			}
		}
	}
	return strings.Join(parts, ",")
}

// Slice returns the roles in stable order for token claims
func (s RoleSet) Slice() []string {
	joined := s.String()
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
