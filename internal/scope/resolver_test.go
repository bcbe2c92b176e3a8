package scope

import "testing"

func uptr(v uint) *uint { return &v }

func TestResolve(t *testing.T) {
	t.Run("route parameter wins over everything", func(t *testing.T) {
		session := Session{TenantAdmin: true, IssuerBusinessID: uptr(7)}
		id, outcome := Resolve(session, uptr(5), "42", []Business{{ID: 3}})
		if id == nil || *id != 42 {
			t.Fatalf("expected 42, got %v", id)
		}
		if outcome != OutcomeRouteParam {
			t.Errorf("expected route_param outcome, got %s", outcome)
		}
	})

	t.Run("invalid route parameter falls through", func(t *testing.T) {
		session := Session{IssuerBusinessID: uptr(7)}
		for _, param := range []string{"abc", "-1", "0", "4.2"} {
			id, outcome := Resolve(session, nil, param, nil)
			if id == nil || *id != 7 {
				t.Errorf("param %q: expected issuer 7, got %v", param, id)
			}
			if outcome != OutcomeIssuer {
				t.Errorf("param %q: expected issuer outcome, got %s", param, outcome)
			}
		}
	})

	t.Run("explicit selection requires admin tenant", func(t *testing.T) {
		admin := Session{TenantAdmin: true, IssuerBusinessID: uptr(7)}
		id, outcome := Resolve(admin, uptr(5), "", nil)
		if id == nil || *id != 5 {
			t.Fatalf("expected selection 5, got %v", id)
		}
		if outcome != OutcomeSelection {
			t.Errorf("expected selection outcome, got %s", outcome)
		}

		nonAdmin := Session{TenantAdmin: false, IssuerBusinessID: uptr(7)}
		id, outcome = Resolve(nonAdmin, uptr(5), "", nil)
		if id == nil || *id != 7 {
			t.Fatalf("non-admin selection must be ignored, got %v", id)
		}
		if outcome != OutcomeIssuer {
			t.Errorf("expected issuer outcome, got %s", outcome)
		}
	})

	t.Run("issuer business for non-admin tenant", func(t *testing.T) {
		session := Session{TenantAdmin: false, IssuerBusinessID: uptr(7)}
		id, outcome := Resolve(session, nil, "", nil)
		if id == nil || *id != 7 {
			t.Fatalf("expected 7, got %v", id)
		}
		if outcome != OutcomeIssuer {
			t.Errorf("expected issuer outcome, got %s", outcome)
		}
	})

	t.Run("admin tenant falls back to first visible business", func(t *testing.T) {
		session := Session{TenantAdmin: true}
		id, outcome := Resolve(session, nil, "", []Business{{ID: 3}, {ID: 9}})
		if id == nil || *id != 3 {
			t.Fatalf("expected 3, got %v", id)
		}
		if outcome != OutcomeFirstVisible {
			t.Errorf("expected first_visible outcome, got %s", outcome)
		}
	})

	t.Run("non-admin tenant never falls back to business list", func(t *testing.T) {
		session := Session{TenantAdmin: false}
		id, outcome := Resolve(session, nil, "", []Business{{ID: 3}})
		if id != nil {
			t.Fatalf("expected nil, got %v", *id)
		}
		if outcome != OutcomeNone {
			t.Errorf("expected none outcome, got %s", outcome)
		}
	})

	t.Run("no resolvable scope yields nil", func(t *testing.T) {
		id, outcome := Resolve(Session{TenantAdmin: true}, nil, "", nil)
		if id != nil {
			t.Fatalf("expected nil, got %v", *id)
		}
		if outcome != OutcomeNone {
			t.Errorf("expected none outcome, got %s", outcome)
		}
	})

	t.Run("idempotent for identical inputs", func(t *testing.T) {
		session := Session{TenantAdmin: true, IssuerBusinessID: uptr(7)}
		businesses := []Business{{ID: 3}, {ID: 9}}
		first, _ := Resolve(session, uptr(5), "42", businesses)
		for i := 0; i < 5; i++ {
			got, _ := Resolve(session, uptr(5), "42", businesses)
			if got == nil || first == nil || *got != *first {
				t.Fatalf("iteration %d: resolution not stable", i)
			}
		}
	})
}
