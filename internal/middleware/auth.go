package middleware

import (
	"net/http"
	"strings"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/pkg/jwtutil"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token from the Authorization header
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Error("Missing Authorization header")
			prometheus.RecordAuthError("missing_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Error("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store the claims in the context for later use
		c.Set("user", claims)
		log.Debug("JWT token validated successfully",
			zap.Uint("user_id", claims.UserID),
			zap.String("email", claims.Email))

		return next(c)
	}
}

// ClaimsFromEcho returns the authenticated claims stored by AuthMiddleware
func ClaimsFromEcho(c echo.Context) (*jwtutil.UserClaims, bool) {
	claims, ok := c.Get("user").(*jwtutil.UserClaims)
	return claims, ok
}

// RequireAdminRole rejects requests whose session lacks the user-level admin
// role. The check runs before the handler so restricted work never starts.
func RequireAdminRole(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		claims, ok := ClaimsFromEcho(c)
		if !ok {
			log.Error("Failed to get user claims from context")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		roles := model.RoleSet{}
		for _, role := range claims.Roles {
			roles[model.Role(role)] = struct{}{}
		}
		if !roles.Has(model.RoleAdmin) {
			log.Warn("Admin role required",
				zap.Uint("user_id", claims.UserID),
				zap.Strings("roles", claims.Roles))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "administrator role required"})
		}

		return next(c)
	}
}

// RequireTenantAdmin rejects requests whose session's tenant lacks
// administrative scope. Independent of RequireAdminRole; endpoints needing
// both apply both.
func RequireTenantAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		claims, ok := ClaimsFromEcho(c)
		if !ok {
			log.Error("Failed to get user claims from context")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		if !claims.TenantAdmin {
			log.Warn("Administrative tenant scope required",
				zap.Uint("user_id", claims.UserID))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "administrative tenant scope required"})
		}

		return next(c)
	}
}
