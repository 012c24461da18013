package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"healthycore/services"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, expected YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// statusFor maps domain errors onto HTTP statuses; anything unknown is
// a server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrFoodNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrEntryNotFoundOrNotOwned),
		errors.Is(err, services.ErrPreferencesNotConfigured),
		errors.Is(err, services.ErrPlanNotFound),
		errors.Is(err, services.ErrDietNotFound),
		errors.Is(err, services.ErrSedentaryLevelNotFound),
		errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrBarcodeTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidResetToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrBarcodeRequired),
		errors.Is(err, services.ErrInvalidFoodCategory),
		errors.Is(err, services.ErrInvalidMacroSplit),
		errors.Is(err, services.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
