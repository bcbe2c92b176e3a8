package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/faturaime/admin-api/internal/middleware"
	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/internal/scope"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/jwtutil"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sessionContext bundles the authenticated claims with the current tenant
// row. The tenant is re-read per request so issuer-business changes made
// after token issuance are honored.
type sessionContext struct {
	Claims *jwtutil.UserClaims
	Tenant model.Tenant
}

func loadSession(c echo.Context) (*sessionContext, error) {
	claims, ok := middleware.ClaimsFromEcho(c)
	if !ok {
		return nil, echo.ErrUnauthorized
	}
	if claims.TenantID == nil {
		return nil, echo.ErrUnauthorized
	}

	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, *claims.TenantID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			// The token references a tenant that no longer exists
			return nil, echo.ErrUnauthorized
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError,
			"failed to load tenant").SetInternal(result.Error)
	}

	return &sessionContext{Claims: claims, Tenant: tenant}, nil
}

// sessionError renders a loadSession failure: tenant lookup failures are
// server errors, everything else is a missing or unusable credential.
func sessionError(c echo.Context, err error) error {
	log := logger.FromEcho(c)

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusInternalServerError {
		log.Error("Failed to load session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load session"})
	}

	log.Warn("Rejected unauthenticated request", zap.Error(err))
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
}

// scopeSession projects the session onto the shape the scope resolver reads
func (s *sessionContext) scopeSession() scope.Session {
	return scope.Session{
		UserID:           s.Claims.UserID,
		TenantID:         s.Tenant.ID,
		TenantAdmin:      s.Tenant.IsAdmin,
		IssuerBusinessID: s.Tenant.IssuerBusinessID,
	}
}

// hasAdminRole reports whether the session's user carries the admin role
func (s *sessionContext) hasAdminRole() bool {
	roles := model.RoleSet{}
	for _, role := range s.Claims.Roles {
		roles[model.Role(role)] = struct{}{}
	}
	return roles.Has(model.RoleAdmin)
}

// visibleBusinesses returns the businesses the session may operate on:
// every business for administrative tenants, otherwise only the tenant's
// own. Order is stable (primary key) so scope resolution is deterministic.
func (s *sessionContext) visibleBusinesses() ([]model.Business, error) {
	var businesses []model.Business
	query := database.GetDB().Order("id")
	if !s.Tenant.IsAdmin {
		query = query.Where("tenant_id = ?", s.Tenant.ID)
	}
	if result := query.Find(&businesses); result.Error != nil {
		return nil, result.Error
	}
	return businesses, nil
}

// resolveScope applies the business scope precedence for this request.
// explicitSelection comes from the X-Business-ID header (the in-page
// selector), routeParam from the URL when the route nests under a business.
func (s *sessionContext) resolveScope(c echo.Context, routeParam string) (*uint, scope.Outcome, error) {
	businesses, err := s.visibleBusinesses()
	if err != nil {
		return nil, scope.OutcomeNone, err
	}

	var explicitSelection *uint
	if header := c.Request().Header.Get("X-Business-ID"); header != "" {
		if id, err := strconv.ParseUint(header, 10, 32); err == nil && id > 0 {
			v := uint(id)
			explicitSelection = &v
		}
	}

	scopeBusinesses := make([]scope.Business, len(businesses))
	for i, b := range businesses {
		scopeBusinesses[i] = scope.Business{ID: b.ID}
	}

	id, outcome := scope.Resolve(s.scopeSession(), explicitSelection, routeParam, scopeBusinesses)
	return id, outcome, nil
}
