package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// GET /api/health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Document Approval System API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
