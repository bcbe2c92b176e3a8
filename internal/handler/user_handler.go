package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/pkg/config"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var invitationTTL = 72 * time.Hour

// InitUserHandler applies handler configuration
func InitUserHandler(cfg *config.AuthConfig) {
	if cfg.InvitationTTL > 0 {
		invitationTTL = cfg.InvitationTTL
	}
}

// ListUsers retrieves the users of the session's tenant
func ListUsers(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var users []model.User
	query := database.GetDB().Order("id")
	if !session.Tenant.IsAdmin {
		query = query.Where("tenant_id = ?", session.Tenant.ID)
	}
	if result := query.Find(&users); result.Error != nil {
		log.Error("Failed to retrieve users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to retrieve users"})
	}

	return c.JSON(http.StatusOK, users)
}

// mayAccessUser reports whether the session may read or mutate the given
// user: same tenant always, other tenants only with administrative tenant
// scope.
func mayAccessUser(session *sessionContext, user *model.User) bool {
	return user.TenantID == session.Tenant.ID || session.Tenant.IsAdmin
}

// GetUser retrieves a single user within the session's tenant
func GetUser(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		log.Error("User not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if !mayAccessUser(session, &user) {
		log.Warn("Cross-tenant user read attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint("user_tenant_id", user.TenantID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	return c.JSON(http.StatusOK, user)
}

// GetProfile returns the authenticated user's profile
func GetProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, session.Claims.UserID); result.Error != nil {
		log.Error("User not found", zap.Uint("id", session.Claims.UserID), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":   user,
		"tenant": session.Tenant,
	})
}

// InviteUser creates an invitation for a new user in the session's tenant
func InviteUser(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.InvitationCounter.WithLabelValues("create").Inc()

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	var req struct {
		Email string   `json:"email"`
		Roles []string `json:"roles"`
	}

	if err := c.Bind(&req); err != nil || req.Email == "" {
		log.Error("Invalid invitation request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}

	// Refuse duplicate accounts up front
	var existing model.User
	if result := database.GetDB().Where("email = ?", req.Email).First(&existing); result.Error == nil {
		log.Warn("Invitation for existing account", zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "a user with this email already exists"})
	}

	roles := model.RoleSet{model.RoleUser: {}}
	for _, r := range req.Roles {
		roles[model.Role(r)] = struct{}{}
	}

	invitation := model.Invitation{
		TenantID:  session.Tenant.ID,
		Email:     req.Email,
		Roles:     roles.String(),
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(invitationTTL),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&invitation); result.Error != nil {
		log.Error("Failed to create invitation", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create invitation"})
	}

	log.Info("Invitation created",
		zap.String("email", invitation.Email),
		zap.Uint("tenant_id", invitation.TenantID))

	// The token travels by email through the mail collaborator, not the API.
	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Invitation created",
		"invitation": invitation,
	})
}

// UpdateUserRoles replaces the role set of a user within the session's tenant
func UpdateUserRoles(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		log.Error("User not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if !mayAccessUser(session, &user) {
		log.Warn("Cross-tenant user update attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint("user_tenant_id", user.TenantID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	var req struct {
		Roles []string `json:"roles"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse role update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	roles := model.RoleSet{}
	for _, r := range req.Roles {
		roles[model.Role(r)] = struct{}{}
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&user).Update("roles", roles.String()); result.Error != nil {
		log.Error("Failed to update roles", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "role update failed"})
	}

	log.Info("User roles updated", zap.Uint("id", user.ID), zap.String("roles", roles.String()))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Roles updated successfully",
		"user":    user,
	})
}

// DeleteUser removes a user from the session's tenant
func DeleteUser(c echo.Context) error {
	log := logger.FromEcho(c)

	session, err := loadSession(c)
	if err != nil {
		return sessionError(c, err)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user ID"})
	}

	if uint(id) == session.Claims.UserID {
		log.Warn("User attempted self-deletion", zap.Uint("id", session.Claims.UserID))
		return c.JSON(http.StatusConflict, echo.Map{"error": "you cannot delete your own account"})
	}

	var user model.User
	if result := database.GetDB().First(&user, id); result.Error != nil {
		log.Error("User not found", zap.Uint64("id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	if !mayAccessUser(session, &user) {
		log.Warn("Cross-tenant user delete attempt",
			zap.Uint("requesting_tenant_id", session.Tenant.ID),
			zap.Uint("user_tenant_id", user.TenantID))
		return c.JSON(http.StatusForbidden, echo.Map{"error": "access denied"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(&user); result.Error != nil {
		log.Error("Failed to delete user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "user deletion failed"})
	}

	log.Info("User deleted", zap.Uint("id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
