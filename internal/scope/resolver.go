// Package scope resolves the effective business a request operates against
// and guards scope-dependent reloads against stale results.
package scope

import "strconv"

// Session carries the identity facts the resolver consumes. TenantAdmin is
// tenant-level administrative scope; it is independent of any user-level role
// and the two are never merged.
type Session struct {
	UserID           uint
	TenantID         uint
	TenantAdmin      bool
	IssuerBusinessID *uint
}

// Business is the minimal business shape the resolver needs
type Business struct {
	ID uint
}

// Outcome identifies which precedence rule produced a resolution
type Outcome string

const (
	OutcomeRouteParam   Outcome = "route_param"
	OutcomeSelection    Outcome = "selection"
	OutcomeIssuer       Outcome = "issuer"
	OutcomeFirstVisible Outcome = "first_visible"
	OutcomeNone         Outcome = "none"
)

// Resolve determines the effective business id for the session.
//
// Precedence, highest first: a route parameter that parses to a positive
// integer; an explicit in-page selection (admin tenants only, since only they
// operate across businesses); the tenant's issuer business; the first entry
// of the visible business collection for admin tenants without an issuer.
// nil means no resolvable scope — callers must treat that as a blocking
// error, never guess further.
//
// Resolve is pure: identical inputs always yield identical results.
func Resolve(session Session, explicitSelection *uint, routeParam string, businesses []Business) (*uint, Outcome) {
	if routeParam != "" {
		if id, err := strconv.ParseUint(routeParam, 10, 32); err == nil && id > 0 {
			v := uint(id)
			return &v, OutcomeRouteParam
		}
	}

	if session.TenantAdmin && explicitSelection != nil {
		v := *explicitSelection
		return &v, OutcomeSelection
	}

	if session.IssuerBusinessID != nil {
		v := *session.IssuerBusinessID
		return &v, OutcomeIssuer
	}

	if session.TenantAdmin && len(businesses) > 0 {
		v := businesses[0].ID
		return &v, OutcomeFirstVisible
	}

	return nil, OutcomeNone
}
