// SPX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"recallguard-server/db"
	"recallguard-server/middlewares"
	"recallguard-server/models"
	"time"

	"github.com/labstack/echo/v4"
)

// ListRecallsHandler godoc
// @Summary      List recall records
// @Description  Retrieves ingested recall records, newest first. Sentinel rows mark ticks with no recalls.
// @Tags         recalls
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page      query   int     false  "Page number (default 1)"
// @Param        page_size query   int     false  "Page size (default 10, max 100)"
// @Success      200 {object} RecallListResponse "Recalls retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized, invalid or expired session token"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/recalls [get]
func ListRecallsHandler(c echo.Context) error {
	logger := c.Logger()

	if _, err := middlewares.GetAuthenticatedUser(c); err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	page := 1
	pageSize := 10
	if p := c.QueryParam("page"); p != "" {
		if _, err := fmt.Sscanf(p, "%d", &page); err != nil || page < 1 {
			page = 1
		}
	}
	if ps := c.QueryParam("page_size"); ps != "" {
		if _, err := fmt.Sscanf(ps, "%d", &pageSize); err != nil || pageSize < 1 {
			pageSize = 10
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	if err := db.Conn.Model(&models.RecallRecord{}).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count recall records: %v", err)
		return echo.ErrInternalServerError
	}

	offset := (page - 1) * pageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var records []models.RecallRecord
	if err := db.Conn.Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&records).Error; err != nil {
		logger.Errorf("Failed to fetch recall records: %v", err)
		return echo.ErrInternalServerError
	}

	data := make([]RecallDetails, 0, len(records))
	for _, record := range records {
		data = append(data, RecallDetails{
			EID:           record.EID.String(),
			ExternalID:    record.ExternalID,
			Title:         record.Title,
			SourceWebsite: string(record.SourceWebsite),
			Date:          record.Date,
			CreatedAt:     record.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, RecallListResponse{
		Data: data,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Recalls retrieved successfully",
	})
}
