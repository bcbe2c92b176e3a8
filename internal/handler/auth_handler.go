package handler

import (
	"net/http"
	"time"

	"github.com/faturaime/admin-api/internal/model"
	"github.com/faturaime/admin-api/pkg/database"
	"github.com/faturaime/admin-api/pkg/jwtutil"
	"github.com/faturaime/admin-api/pkg/logger"
	"github.com/faturaime/admin-api/prometheus"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Login authenticates a user and returns a JWT token carrying both the
// tenant-level admin scope and the user-level role set.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if !user.EmailVerified {
		log.Warn("Login attempt with unverified email", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_not_verified")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "email address not verified"})
	}

	// Load the user's tenant for the admin scope and issuer business
	var tenant model.Tenant
	if result := database.GetDB().First(&tenant, user.TenantID); result.Error != nil {
		log.Error("Tenant not found for user",
			zap.Uint("tenant_id", user.TenantID), zap.Error(result.Error))
		prometheus.RecordAuthError("tenant_not_found")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	tenantID := tenant.ID
	token, err := jwtutil.GenerateToken(user.Email, user.ID, &tenantID, tenant.Name, tenant.IsAdmin, user.RoleSet().Slice())
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.Uint("tenant_id", tenant.ID),
		zap.Bool("tenant_admin", tenant.IsAdmin),
		zap.String("roles", user.Roles))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"roles": user.RoleSet().Slice(),
		},
		"tenant": map[string]interface{}{
			"id":                 tenant.ID,
			"name":               tenant.Name,
			"is_admin":           tenant.IsAdmin,
			"issuer_business_id": tenant.IssuerBusinessID,
		},
	})
}

// Signup registers a new tenant with its first user. The user starts
// unverified and receives a verification token.
func Signup(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.SignupCounter.Inc()

	// Parse request
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		TenantName string `json:"tenant_name"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" || req.TenantName == "" {
		log.Error("Invalid signup data",
			zap.String("email", req.Email),
			zap.String("tenant_name", req.TenantName),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_signup")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and tenant_name are required"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existingUser model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&existingUser)
	if result.Error == nil {
		log.Error("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}

	verificationToken := uuid.New().String()

	// Create tenant and first user together
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		tenant := model.Tenant{
			Name:   req.TenantName,
			Active: true,
		}
		if result := tx.Create(&tenant); result.Error != nil {
			return result.Error
		}

		roles := model.RoleSet{model.RoleAdmin: {}, model.RoleUser: {}}
		user := model.User{
			Email:             req.Email,
			Password:          string(hashedPassword),
			Name:              req.Name,
			Roles:             roles.String(),
			TenantID:          tenant.ID,
			VerificationToken: verificationToken,
		}
		if result := tx.Create(&user); result.Error != nil {
			return result.Error
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create tenant and user", zap.Error(err))
		prometheus.RecordAuthError("signup_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}

	log.Info("User signed up",
		zap.String("email", req.Email),
		zap.String("tenant_name", req.TenantName))

	// The verification token is handed to the mail collaborator out of band;
	// it is never part of the API response in production builds.
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Signup successful, please verify your email address",
	})
}

// VerifyEmail marks a user's email address as verified using the token
// delivered by email.
func VerifyEmail(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Token string `json:"token"`
	}

	if err := c.Bind(&req); err != nil || req.Token == "" {
		log.Error("Invalid email verification request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "verification token is required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("verification_token = ?", req.Token).First(&user)
	if result.Error != nil {
		log.Error("Verification token not found")
		prometheus.RecordAuthError("invalid_verification_token")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid verification token"})
	}

	if user.EmailVerified {
		return c.JSON(http.StatusOK, echo.Map{"message": "email already verified"})
	}

	updates := map[string]interface{}{
		"email_verified":     true,
		"verification_token": "",
	}
	if result := database.GetDB().Model(&user).Updates(updates); result.Error != nil {
		log.Error("Failed to mark email verified", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verification failed"})
	}

	log.Info("Email verified", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, echo.Map{"message": "email verified successfully"})
}

// AcceptInvitation creates a user account from a pending invitation
func AcceptInvitation(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.InvitationCounter.WithLabelValues("accept").Inc()

	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	if err := c.Bind(&req); err != nil || req.Token == "" || req.Password == "" {
		log.Error("Invalid invitation acceptance request")
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "token and password are required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var invitation model.Invitation
	result := database.GetDB().Where("token = ?", req.Token).First(&invitation)
	if result.Error != nil {
		log.Error("Invitation not found")
		prometheus.RecordAuthError("invalid_invitation_token")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invalid invitation token"})
	}

	if !invitation.Usable(time.Now()) {
		log.Warn("Expired or consumed invitation",
			zap.String("email", invitation.Email),
			zap.Time("expires_at", invitation.ExpiresAt))
		prometheus.RecordAuthError("invitation_unusable")
		return c.JSON(http.StatusGone, echo.Map{"error": "invitation has expired or was already accepted"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to accept invitation"})
	}

	roles := invitation.Roles
	if roles == "" {
		roles = string(model.RoleUser)
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Email:         invitation.Email,
			Password:      string(hashedPassword),
			Name:          req.Name,
			Roles:         roles,
			TenantID:      invitation.TenantID,
			EmailVerified: true, // the invitation itself proved mailbox ownership
		}
		if result := tx.Create(&user); result.Error != nil {
			return result.Error
		}

		now := time.Now()
		return tx.Model(&invitation).Update("accepted_at", &now).Error
	})
	if err != nil {
		log.Error("Failed to accept invitation", zap.Error(err))
		prometheus.RecordAuthError("invitation_accept_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to accept invitation"})
	}

	log.Info("Invitation accepted",
		zap.String("email", invitation.Email),
		zap.Uint("tenant_id", invitation.TenantID))

	return c.JSON(http.StatusCreated, echo.Map{"message": "invitation accepted, you can now log in"})
}
