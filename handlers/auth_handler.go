// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"recallguard-server/commons"
	"recallguard-server/crypto"
	"recallguard-server/db"
	"recallguard-server/models"
	"recallguard-server/notifications"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func generateSessionToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "recallguard-server",
		"iat": time.Now().Unix(),
		"uid": user.ID,
		"exp": time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")))
}

func resetTokenTTL() time.Duration {
	minutes := 60
	if v := commons.GetEnv("RESET_TOKEN_TTL_MINUTES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			minutes = i
		}
	}
	return time.Duration(minutes) * time.Minute
}

// RegisterHandler godoc
// @Summary      Register a new user
// @Description  Creates a new user account and returns a session token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        registerRequest  body  RegisterRequest  true  "Register request payload"
// @Success      201 {object} UserResponse 	 "Registration successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or mismatched fields, duplicate email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/users [post]
func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid register request payload:", err)
		return echo.ErrBadRequest
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || req.Password2 == "" {
		logger.Error("Missing required registration fields.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Please add all fields",
		}
	}

	if req.Password != req.Password2 {
		logger.Error("Passwords do not match.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Passwords do not match",
		}
	}

	count := db.Conn.Where("email = ?", req.Email).First(&models.User{}).RowsAffected
	if count > 0 {
		logger.Errorf("This email is already registered.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "User already exists",
		}
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hash,
	}

	if err := db.Conn.Create(&user).Error; err != nil {
		// Unique index on email is the backstop for concurrent
		// registrations with the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Error("Duplicate email on create.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "User already exists",
			}
		}
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	sessionToken, err := generateSessionToken(user)
	if err != nil {
		logger.Errorf("Failed to sign session token: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User registered successfully")
	return c.JSON(http.StatusCreated, UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Token:     sessionToken,
	})
}

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates a user and returns a session token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} UserResponse 	 "Login successful"
// @Failure      400 {object} echo.HTTPError     "Bad request or invalid credentials"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/users/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" || req.Password == "" {
		logger.Error("Email and password are required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email and password fields are required",
		}
	}

	newCrypto := crypto.NewCrypto()
	user := models.User{}

	// Unknown email and wrong password must be indistinguishable to
	// the caller.
	if err := db.Conn.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid credentials",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := newCrypto.VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid credentials",
		}
	}

	sessionToken, err := generateSessionToken(user)
	if err != nil {
		logger.Errorf("Failed to sign session token: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Token:     sessionToken,
	})
}

// RequestPasswordResetHandler godoc
// @Summary      Request password reset
// @Description  Issues a single-use reset token and emails a reset link to the user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        requestResetPasswordRequest  body  RequestResetPasswordRequest  true  "Password reset request"
// @Success      200 {object} RequestResetPasswordResponse "Reset link issued"
// @Failure      400 {object} echo.HTTPError  "Bad request or unknown email"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/users/requestResetPassword [post]
func RequestPasswordResetHandler(c echo.Context) error {
	logger := c.Logger()

	var req RequestResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid reset request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	user := models.User{}
	if err := db.Conn.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found for password reset.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "User does not exist",
			}
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	resetToken, err := crypto.GenerateRandomString("", 32, "hex")
	if err != nil {
		logger.Errorf("Failed to generate reset token: %v", err)
		return echo.ErrInternalServerError
	}

	newCrypto := crypto.NewCrypto()
	tokenHash, err := newCrypto.HashPassword(resetToken)
	if err != nil {
		logger.Errorf("Failed to hash reset token: %v", err)
		return echo.ErrInternalServerError
	}

	// One live token per user: issuing a new one replaces any prior.
	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.PasswordReset{}).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to delete prior reset tokens: %v", err)
		return echo.ErrInternalServerError
	}

	passwordReset := models.PasswordReset{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(resetTokenTTL()),
	}
	if err := tx.Create(&passwordReset).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create reset token: %v", err)
		return echo.ErrInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	link := commons.GetEnv("FRONTEND_URL", "http://localhost:8000") +
		"/passwordReset?token=" + resetToken + "&id=" + strconv.FormatUint(uint64(user.ID), 10)

	go notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       user.Email,
		ToName:   &user.FirstName,
		Subject:  "Password Reset Request",
		Template: "request-reset",
		Variables: map[string]any{
			"name": user.FirstName,
			"link": link,
		},
	})

	logger.Infof("Password reset link issued.")
	return c.JSON(http.StatusOK, RequestResetPasswordResponse{Link: link})
}

// ResetPasswordHandler godoc
// @Summary      Reset password
// @Description  Consumes a single-use reset token and sets a new password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body  ResetPasswordRequest  true  "Password reset payload"
// @Success      200 {boolean} bool "Password reset successfully"
// @Failure      400 {object} echo.HTTPError  "Bad request or invalid/expired token"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/users/resetPassword [post]
func ResetPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid reset password payload:", err)
		return echo.ErrBadRequest
	}

	if req.UserID == 0 || req.Token == "" || req.Password == "" {
		logger.Error("Missing required reset fields.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "userId, token and password fields are required",
		}
	}

	invalidToken := &echo.HTTPError{
		Code:    http.StatusBadRequest,
		Message: "Invalid or expired password reset token",
	}

	passwordReset := models.PasswordReset{}
	if err := db.Conn.Preload("User").Where("user_id = ?", req.UserID).First(&passwordReset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("No reset token found for user.")
			return invalidToken
		}
		logger.Errorf("Failed to find reset token: %v", err)
		return echo.ErrInternalServerError
	}

	if time.Now().After(passwordReset.ExpiresAt) {
		logger.Error("Password reset token has expired.")
		return invalidToken
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.Token, passwordReset.TokenHash); err != nil {
		logger.Error("Reset token verification failed.")
		return invalidToken
	}

	hashedPassword, err := newCrypto.HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash new password: %v", err)
		return echo.ErrInternalServerError
	}

	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Model(&passwordReset.User).Update("password", hashedPassword).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to update user password: %v", err)
		return echo.ErrInternalServerError
	}

	// Compare-and-delete on the row ID: of two racers consuming the
	// same token, exactly one sees RowsAffected == 1.
	res := tx.Unscoped().Where("id = ?", passwordReset.ID).Delete(&models.PasswordReset{})
	if res.Error != nil {
		tx.Rollback()
		logger.Errorf("Failed to consume reset token: %v", res.Error)
		return echo.ErrInternalServerError
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		logger.Error("Reset token already consumed.")
		return invalidToken
	}

	if err := tx.Commit().Error; err != nil {
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	user := passwordReset.User
	go notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       user.Email,
		ToName:   &user.FirstName,
		Subject:  "Password Reset Successfully",
		Template: "reset-success",
		Variables: map[string]any{
			"name": user.FirstName,
		},
	})

	logger.Infof("Password reset successful for user ID: %d", passwordReset.UserID)
	return c.JSON(http.StatusOK, true)
}
