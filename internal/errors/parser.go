package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is an error translated for a client.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError turns a storage error into something a client can act on.
// Driver messages are never echoed back. context names the resource the
// request was about ("profile", "restaurant", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	errLower := strings.ToLower(err.Error())

	// postgres 23505, sqlite "UNIQUE constraint failed"
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceAlreadyExists,
			Message: "This " + contextNoun(context) + " already exists",
		}
	}

	if strings.Contains(errLower, "foreign key constraint") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceConflict,
			Message: "The " + contextNoun(context) + " references missing data",
		}
	}

	if strings.Contains(errLower, "not-null constraint") || strings.Contains(errLower, "not null constraint") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable, please try again later",
		}
	}

	if strings.Contains(errLower, "database is locked") || strings.Contains(errLower, "sql:") {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalDatabaseError,
			Message: "Storage is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: "Something went wrong, please try again later",
	}
}

func notFoundCode(context string) string {
	switch contextNoun(context) {
	case "profile":
		return ProfileNotFound
	case "restaurant":
		return RestaurantNotFound
	default:
		return ResourceNotFound
	}
}

func notFoundMessage(context string) string {
	noun := contextNoun(context)
	return strings.ToUpper(noun[:1]) + noun[1:] + " not found"
}

func contextNoun(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "profile"):
		return "profile"
	case strings.Contains(lower, "restaurant"):
		return "restaurant"
	case strings.Contains(lower, "favorite"):
		return "favorite"
	case strings.Contains(lower, "preference"):
		return "preferences"
	default:
		return "resource"
	}
}

// ParseAndRespond writes the parsed error with its own status.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, err error, context string) {
	info := ParseError(err, context)
	c.JSON(info.Status, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
