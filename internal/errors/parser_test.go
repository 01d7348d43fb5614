package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		context    string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "record not found on profile",
			err:        fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound),
			context:    "get profile",
			wantStatus: http.StatusNotFound,
			wantCode:   ProfileNotFound,
			wantMsg:    "Profile not found",
		},
		{
			name:       "record not found on restaurant",
			err:        gorm.ErrRecordNotFound,
			context:    "restaurant",
			wantStatus: http.StatusNotFound,
			wantCode:   RestaurantNotFound,
			wantMsg:    "Restaurant not found",
		},
		{
			name:       "sqlite unique",
			err:        errors.New("UNIQUE constraint failed: profiles.id"),
			context:    "create profile",
			wantStatus: http.StatusConflict,
			wantCode:   ResourceAlreadyExists,
			wantMsg:    "This profile already exists",
		},
		{
			name:       "postgres duplicate",
			err:        errors.New(`ERROR: duplicate key value violates unique constraint "favorites_pkey"`),
			context:    "favorite",
			wantStatus: http.StatusConflict,
			wantCode:   ResourceAlreadyExists,
		},
		{
			name:       "connection refused",
			err:        errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   InternalExternalAPI,
		},
		{
			name:       "locked",
			err:        errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   InternalDatabaseError,
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, info.Message)
			}
			assert.NotContains(t, info.Message, "constraint")
		})
	}
}

func TestParseError_Nil(t *testing.T) {
	info := ParseError(nil, "")
	assert.Equal(t, InternalServerError, info.Code)
}
