package utils

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
)

// Principal type carried in the token's "typ" claim. It names the store
// the middleware resolves the bearer from, so authentication is a single
// lookup instead of an admin-then-realtor fallback.
const (
	PrincipalRealtor = "realtor"
	PrincipalAdmin   = "admin"
)

var JwtSecret []byte

func init() {
	// It's okay if the .env file isn't found; environment variables may
	// be set elsewhere
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET is not set in the environment")
		secret = "development-secret"
	}

	JwtSecret = []byte(secret)
}

// TokenClaims is the decoded identity carried by a bearer token.
type TokenClaims struct {
	UserID uint
	Typ    string
	Role   string
}

// GenerateToken mints a signed credential for a principal. Tokens are
// valid for 7 days.
func GenerateToken(userID uint, typ, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"typ":     typ,
		"role":    role,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})

	return token.SignedString(JwtSecret)
}

// ParseBearerToken validates an Authorization header value and extracts
// the identity claims.
func ParseBearerToken(authHeader string) (*TokenClaims, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64) // JWT numeric values are float64
	if !ok {
		return nil, errors.New("invalid user ID in token")
	}

	typ, _ := claims["typ"].(string)
	role, _ := claims["role"].(string)

	return &TokenClaims{
		UserID: uint(userIDFloat),
		Typ:    typ,
		Role:   role,
	}, nil
}
