package util

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// ProfileClaims identifies the active local profile of a device.
type ProfileClaims struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateProfileToken signs a profile session token with HS256.
func GenerateProfileToken(profileID, name, secret string, expiry time.Duration) (string, error) {
	if profileID == "" {
		return "", fmt.Errorf("profile id is required")
	}

	now := time.Now()
	claims := ProfileClaims{
		ProfileID: profileID,
		Name:      name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profileID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a profile token. Every failure other than expiry is
// reported as ErrInvalidToken.
func ValidateToken(tokenString, secret string) (*ProfileClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ProfileClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ProfileClaims)
	if !ok || !token.Valid || claims.ProfileID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
