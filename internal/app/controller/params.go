package controller

import (
	"errors"
	"strconv"
	"strings"

	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// parseIDParam reads a positive numeric path parameter. On failure it writes
// a 400 and returns false.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid id parameter", map[string]interface{}{
			"param": name,
			"value": raw,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// queryFloat returns nil when the parameter is absent.
func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// queryPosition reads lat and lon. Both absent is not an error; one without
// the other, or an out of range value, is.
func queryPosition(c *gin.Context) (lat, lon *float64, ok bool) {
	lat, latErr := queryFloat(c, "lat")
	lon, lonErr := queryFloat(c, "lon")
	if latErr != nil || lonErr != nil || (lat == nil) != (lon == nil) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "lat and lon must be given together as numbers")
		return nil, nil, false
	}
	if lat != nil && (*lat < -90 || *lat > 90 || *lon < -180 || *lon > 180) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Coordinates out of range")
		return nil, nil, false
	}
	return lat, lon, true
}

// bindJSON decodes the body into obj. Binding tag failures are reported per
// field; anything else is a plain 400.
func bindJSON(c *gin.Context, obj interface{}, what string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	middleware.GetLoggerFromContext(c).Warn("Invalid "+what+" request", map[string]interface{}{
		"user_id": middleware.GetUserID(c),
		"error":   err.Error(),
	})

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		apperrors.RespondWithValidationError(c, fields)
		return false
	}
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
	return false
}
