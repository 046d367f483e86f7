// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"recallguard-server/db"
	"recallguard-server/models"

	"github.com/labstack/echo/v4"
)

func loadUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{}
	if err := db.Conn.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("Failed to load user %s: %v", email, err)
	}
	return user
}

func TestGetMeHandler(t *testing.T) {
	setupTestDB(t)
	e := echo.New()

	registerUser(t, e, "Denis", "Moini", "denis@example.com", "pw1")
	user := loadUser(t, "denis@example.com")

	c, rec := newJSONContext(e, http.MethodGet, "/api/users/me", "")
	c.Set("user", user)
	if err := GetMeHandler(c); err != nil {
		t.Fatalf("GetMeHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID != user.ID || resp.Email != "denis@example.com" {
		t.Errorf("Unexpected user details: %+v", resp)
	}
	if resp.Token != "" {
		t.Error("Token should not be present in the me response")
	}
	if strings.Contains(rec.Body.String(), user.Password) {
		t.Error("Password hash must not appear in the response")
	}

	c, _ = newJSONContext(e, http.MethodGet, "/api/users/me", "")
	he := httpError(t, GetMeHandler(c))
	if he.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without authenticated user, got %d", he.Code)
	}
}

func TestChangePasswordHandler(t *testing.T) {
	setupTestDB(t)
	e := echo.New()

	registerUser(t, e, "Denis", "Moini", "denis@example.com", "pw1")
	user := loadUser(t, "denis@example.com")

	changePassword := func(body string) (int, error) {
		c, rec := newJSONContext(e, http.MethodPost, "/api/users/newPassword", body)
		c.Set("user", user)
		err := ChangePasswordHandler(c)
		return rec.Code, err
	}

	_, err := changePassword(`{"oldPassword":"pw1","newPassword":"pw2"}`)
	he := httpError(t, err)
	if he.Code != http.StatusBadRequest || he.Message != "Please enter all fields" {
		t.Errorf("Expected 400 for missing fields, got %d %v", he.Code, he.Message)
	}

	_, err = changePassword(`{"oldPassword":"pw1","newPassword":"pw2","confirmPassword":"pw3"}`)
	he = httpError(t, err)
	if he.Code != http.StatusBadRequest || he.Message != "Passwords do not match" {
		t.Errorf("Expected 400 for mismatched confirmation, got %d %v", he.Code, he.Message)
	}

	_, err = changePassword(`{"oldPassword":"pw1","newPassword":"pw1","confirmPassword":"pw1"}`)
	he = httpError(t, err)
	if he.Code != http.StatusBadRequest || he.Message != "New password can't match old password" {
		t.Errorf("Expected 400 for reused password, got %d %v", he.Code, he.Message)
	}

	_, err = changePassword(`{"oldPassword":"wrong","newPassword":"pw2","confirmPassword":"pw2"}`)
	he = httpError(t, err)
	if he.Code != http.StatusBadRequest || he.Message != "Old password is incorrect" {
		t.Errorf("Expected 400 for wrong current password, got %d %v", he.Code, he.Message)
	}

	code, err := changePassword(`{"oldPassword":"pw1","newPassword":"pw2","confirmPassword":"pw2"}`)
	if err != nil {
		t.Fatalf("ChangePasswordHandler failed: %v", err)
	}
	if code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}

	c, _ := newJSONContext(e, http.MethodPost, "/api/users/login",
		`{"email":"denis@example.com","password":"pw1"}`)
	he = httpError(t, LoginHandler(c))
	if he.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for old password after change, got %d", he.Code)
	}

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/login",
		`{"email":"denis@example.com","password":"pw2"}`)
	if err := LoginHandler(c); err != nil {
		t.Fatalf("Login with new password failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for new password, got %d", rec.Code)
	}
}

func TestListRecallsHandler(t *testing.T) {
	setupTestDB(t)
	e := echo.New()

	registerUser(t, e, "Denis", "Moini", "denis@example.com", "pw1")
	user := loadUser(t, "denis@example.com")

	for i := 0; i < 15; i++ {
		record := models.RecallRecord{
			ExternalID:    fmt.Sprintf("%d", 1000+i),
			Title:         fmt.Sprintf("Recall reason %d", i),
			SourceWebsite: models.SourceFDA,
			Date:          "20240326",
		}
		if err := db.Conn.Create(&record).Error; err != nil {
			t.Fatalf("Failed to seed recall record: %v", err)
		}
	}

	c, rec := newJSONContext(e, http.MethodGet, "/api/recalls?page=2&page_size=10", "")
	c.Set("user", user)
	if err := ListRecallsHandler(c); err != nil {
		t.Fatalf("ListRecallsHandler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp RecallListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Pagination.Total != 15 {
		t.Errorf("Expected total 15, got %d", resp.Pagination.Total)
	}
	if resp.Pagination.TotalPages != 2 {
		t.Errorf("Expected 2 pages, got %d", resp.Pagination.TotalPages)
	}
	if len(resp.Data) != 5 {
		t.Errorf("Expected 5 records on page 2, got %d", len(resp.Data))
	}

	c, _ = newJSONContext(e, http.MethodGet, "/api/recalls", "")
	he := httpError(t, ListRecallsHandler(c))
	if he.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without authenticated user, got %d", he.Code)
	}
}
