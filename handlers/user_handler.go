// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"recallguard-server/crypto"
	"recallguard-server/db"
	"recallguard-server/middlewares"

	"github.com/labstack/echo/v4"
)

// GetMeHandler godoc
// @Summary      Get user details
// @Description  Retrieves the public fields of the authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Success      200 {object}  UserResponse 	 "User retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/users/me [get]
func GetMeHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
}

// ChangePasswordHandler godoc
// @Summary      Change user password
// @Description  Changes the authenticated user's password after validating the current password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Password change request payload"
// @Success      200 {object}  ChangePasswordResponse "Password changed successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing fields, mismatched or reused password, wrong current password"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/users/newPassword [post]
func ChangePasswordHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid change password request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.OldPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		logger.Error("Missing required password fields.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Please enter all fields",
		}
	}

	if req.NewPassword != req.ConfirmPassword {
		logger.Error("New passwords do not match.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Passwords do not match",
		}
	}

	newCrypto := crypto.NewCrypto()

	if err := newCrypto.VerifyPassword(req.NewPassword, user.Password); err == nil {
		logger.Error("New password is the same as current password.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "New password can't match old password",
		}
	}

	if err := newCrypto.VerifyPassword(req.OldPassword, user.Password); err != nil {
		logger.Error("Current password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Old password is incorrect",
		}
	}

	hashedNewPassword, err := newCrypto.HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash new password: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Model(user).Update("password", hashedNewPassword).Error; err != nil {
		logger.Errorf("Failed to update password in database: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password changed successfully.")
	return c.JSON(http.StatusOK, ChangePasswordResponse{
		Msg: "password updated",
	})
}
