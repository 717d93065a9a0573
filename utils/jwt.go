package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/darshan-mishra17/GoPrakritik-sub000/config"
	"github.com/golang-jwt/jwt"
)

// Session tokens are valid for 30 days.
const TokenLifetime = 30 * 24 * time.Hour

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.StandardClaims
}

// GenerateJWT issues a signed session token embedding the user id and admin flag.
func GenerateJWT(userID string, isAdmin bool) (string, error) {
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(TokenLifetime).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GetEnv("JWT_SECRET", "")))
}

// ValidateJWT parses and verifies a session token. Expired and malformed
// tokens are reported as distinct errors so the middleware can tell the
// client which it was.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.GetEnv("JWT_SECRET", "")), nil
	})

	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, ErrTokenExpired
			}
		}
		return nil, ErrTokenMalformed
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
