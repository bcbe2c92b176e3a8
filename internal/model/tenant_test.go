package model

import "testing"

func TestTenantIsIssuerBusiness(t *testing.T) {
	issuer := uint(7)

	t.Run("matches designated issuer", func(t *testing.T) {
		ten := Tenant{IssuerBusinessID: &issuer}
		if !ten.IsIssuerBusiness(7) {
			t.Error("expected business 7 to be the issuer")
		}
	})

	t.Run("other business is not issuer", func(t *testing.T) {
		ten := Tenant{IssuerBusinessID: &issuer}
		if ten.IsIssuerBusiness(8) {
			t.Error("business 8 should not be the issuer")
		}
	})

	t.Run("no issuer designated", func(t *testing.T) {
		ten := Tenant{}
		if ten.IsIssuerBusiness(7) {
			t.Error("tenant without issuer should never match")
		}
	})
}
