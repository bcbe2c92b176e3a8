package handler

import (
	"testing"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/pkg/jwtutil"
)

func TestMayAccessUser(t *testing.T) {
	session := func(tenantID uint, admin bool) *sessionContext {
		return &sessionContext{
			Claims: &jwtutil.UserClaims{UserID: 1, TenantID: &tenantID},
			Tenant: model.Tenant{ID: tenantID, IsAdmin: admin},
		}
	}

	t.Run("same tenant", func(t *testing.T) {
		if !mayAccessUser(session(5, false), &model.User{TenantID: 5}) {
			t.Error("expected access within the same tenant")
		}
	})

	t.Run("cross-tenant denied without administrative scope", func(t *testing.T) {
		if mayAccessUser(session(5, false), &model.User{TenantID: 6}) {
			t.Error("expected cross-tenant access to be denied")
		}
	})

	t.Run("cross-tenant allowed for administrative tenant", func(t *testing.T) {
		if !mayAccessUser(session(5, true), &model.User{TenantID: 6}) {
			t.Error("expected administrative tenant to see other tenants' users")
		}
	})
}
