package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateProfileToken(t *testing.T) {
	tests := []struct {
		name      string
		profileID string
		wantErr   bool
	}{
		{name: "Valid token generation", profileID: "3f1c2a", wantErr: false},
		{name: "Missing profile id", profileID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateProfileToken(tt.profileID, "Alice", testSecret, time.Hour)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	token, err := GenerateProfileToken("profile-123", "Alice", testSecret, 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "Valid token", token: token, secret: testSecret},
		{name: "Invalid secret", token: token, secret: "wrong-secret", wantErr: ErrInvalidToken},
		{name: "Invalid token format", token: "invalid.token.format", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Empty token", token: "", secret: testSecret, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, "profile-123", claims.ProfileID)
				assert.Equal(t, "Alice", claims.Name)
				assert.Equal(t, "profile-123", claims.Subject)
				assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))
			}
		})
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateProfileToken("p1", "Bob", testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}
