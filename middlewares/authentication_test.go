// SPX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recallguard-server/commons"
	"recallguard-server/db"
	"recallguard-server/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) models.User {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn

	user := models.User{
		FirstName: "Denis",
		LastName:  "Moini",
		Email:     "denis@example.com",
		Password:  "not-a-real-hash",
	}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func signToken(t *testing.T, uid uint, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "recallguard-server",
		"iat": time.Now().Unix(),
		"uid": uid,
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte(commons.GetEnv("JWT_SECRET", "default_very_secret_key")))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func runMiddleware(e *echo.Echo, authHeader string) (echo.Context, error) {
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return c, VerifyAuthMiddleware(next)(c)
}

func TestVerifyAuthMiddleware(t *testing.T) {
	user := setupTestDB(t)
	e := echo.New()

	token := signToken(t, user.ID, time.Now().Add(time.Hour))
	c, err := runMiddleware(e, "Bearer "+token)
	if err != nil {
		t.Fatalf("Middleware rejected a valid token: %v", err)
	}

	authenticated, err := GetAuthenticatedUser(c)
	if err != nil {
		t.Fatalf("GetAuthenticatedUser failed: %v", err)
	}
	if authenticated.ID != user.ID || authenticated.Email != user.Email {
		t.Errorf("Unexpected authenticated user: %+v", authenticated)
	}

	uid, err := GetAuthenticatedUserID(c)
	if err != nil || uid != user.ID {
		t.Errorf("Expected user ID %d, got %d (err: %v)", user.ID, uid, err)
	}
}

func TestVerifyAuthMiddlewareRejections(t *testing.T) {
	user := setupTestDB(t)
	e := echo.New()

	assertUnauthorized := func(name, header string) {
		_, err := runMiddleware(e, header)
		he, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("%s: expected *echo.HTTPError, got %T: %v", name, err, err)
		}
		if he.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected status 401, got %d", name, he.Code)
		}
	}

	assertUnauthorized("missing header", "")
	assertUnauthorized("not bearer", "Basic abc123")
	assertUnauthorized("garbage token", "Bearer not.a.jwt")
	assertUnauthorized("expired token", "Bearer "+signToken(t, user.ID, time.Now().Add(-time.Hour)))
	assertUnauthorized("unknown user", "Bearer "+signToken(t, user.ID+999, time.Now().Add(time.Hour)))
}
