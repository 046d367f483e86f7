// SPX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"recallguard-server/commons"
	"recallguard-server/db"
	"recallguard-server/models"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// VerifyAuthMiddleware validates the bearer session token, loads the
// user it asserts, and stashes it in the request context.
func VerifyAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			logger.Error("Authorization header missing or invalid.")
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Bearer token is required",
			}
		}

		sessionToken := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(sessionToken, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")), nil
		})

		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if uid, ok := claims["uid"].(float64); ok {
					user := models.User{}
					if err := db.Conn.Where("id = ?", uint(uid)).First(&user).Error; err == nil {
						c.Set("user", user)
						return next(c)
					}
				}
			}
		}

		logger.Error("Authentication failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token",
		}
	}
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	if user, ok := c.Get("user").(models.User); ok {
		return &user, nil
	}
	return nil, errors.New("no authenticated user found")
}

func GetAuthenticatedUserID(c echo.Context) (uint, error) {
	user, err := GetAuthenticatedUser(c)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
