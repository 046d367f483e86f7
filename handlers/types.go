// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model RegisterRequest
type RegisterRequest struct {
	// User's first name
	// required: true
	FirstName string `json:"firstName" example:"Denis"`
	// User's last name
	// required: true
	LastName string `json:"lastName" example:"Moini"`
	// User's email address
	// required: true
	Email string `json:"email" example:"user@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// Password confirmation, must match password
	// required: true
	Password2 string `json:"password2" example:"MySecretPassword@123"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"user@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model UserResponse
type UserResponse struct {
	// Unique identifier for the user
	ID uint `json:"_id" example:"1"`
	// User's first name
	FirstName string `json:"firstName" example:"Denis"`
	// User's last name
	LastName string `json:"lastName" example:"Moini"`
	// Email address associated with the account
	Email string `json:"email" example:"user@example.com"`
	// Session token for subsequent authenticated requests.
	// Should be used in the Authorization header as a Bearer token.
	Token string `json:"token,omitempty" example:"sample_session_token"`
}

// swagger:model RequestResetPasswordRequest
type RequestResetPasswordRequest struct {
	// Email address of the account to reset
	// required: true
	Email string `json:"email" example:"user@example.com"`
}

// swagger:model RequestResetPasswordResponse
type RequestResetPasswordResponse struct {
	// Password reset link emailed to the user
	Link string `json:"link" example:"https://recallguard.com/passwordReset?token=abc&id=1"`
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// ID of the user resetting their password
	// required: true
	UserID uint `json:"userId" example:"1"`
	// Raw reset token from the emailed link
	// required: true
	Token string `json:"token" example:"a1b2c3d4e5f6"`
	// New password
	// required: true
	Password string `json:"password" example:"MyNewPassword@456"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"oldPassword" example:"MySecretPassword@123"`
	// New password
	// required: true
	NewPassword string `json:"newPassword" example:"MyNewPassword@456"`
	// New password confirmation, must match newPassword
	// required: true
	ConfirmPassword string `json:"confirmPassword" example:"MyNewPassword@456"`
}

// swagger:model ChangePasswordResponse
type ChangePasswordResponse struct {
	// Message indicating the result of the operation
	Msg string `json:"msg" example:"password updated"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message"`
}

// swagger:model RecallDetails
type RecallDetails struct {
	// Public event ID of the record
	EID string `json:"eid" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Identifier assigned by the upstream feed, "0" for sentinel rows
	ExternalID string `json:"external_id" example:"88549"`
	// Reason for the recall
	Title string `json:"title" example:"Undeclared peanut allergen"`
	// Feed the record came from
	SourceWebsite string `json:"source_website" example:"FDA"`
	// Report date as published by the feed (YYYYMMDD)
	Date string `json:"date" example:"20240326"`
	// Timestamp of when the record was ingested
	CreatedAt string `json:"created_at" example:"2024-03-27T03:51:00Z"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model RecallListResponse
type RecallListResponse struct {
	// List of recall records
	Data []RecallDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Recalls retrieved successfully"`
}
