package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/patiponrmutl/DASystem/models"
	"github.com/patiponrmutl/DASystem/service"
	"github.com/patiponrmutl/DASystem/storage"
)

// identity reads the caller set by the auth middleware.
func identity(c echo.Context) (uint, models.Role) {
	uid, _ := c.Get("user_id").(uint)
	role, _ := c.Get("role").(models.Role)
	return uid, role
}

func paramID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, map[string]any{"message": "Application not found"})
	}
	return uint(n), nil
}

// fail translates the domain error taxonomy to HTTP. Unknown errors are
// logged and suppressed to a generic 500 unless running in dev.
func fail(c echo.Context, err error, dev bool) error {
	switch {
	case service.IsValidation(err),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrFileType),
		errors.Is(err, service.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, map[string]any{"message": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]any{"message": "Access denied"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"message": "Not found"})
	}

	log.Printf("internal error: %v", err)
	msg := "Internal server error"
	if dev {
		msg = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, map[string]any{"message": msg})
}
