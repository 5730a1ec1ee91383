package jwtmw

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// EnvKeyJWTSecret names the environment variable holding the HMAC signing key.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration names the environment variable holding the token lifetime (Go duration syntax).
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	defaultExpiration = 24 * time.Hour
)

// Config holds the settings used to sign access tokens.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfigFromEnv reads the token settings from environment variables.
func LoadConfigFromEnv() Config {
	exp, err := time.ParseDuration(os.Getenv(EnvKeyJWTExpiration))
	if err != nil || exp <= 0 {
		exp = defaultExpiration
	}
	return Config{Secret: os.Getenv(EnvKeyJWTSecret), Expiration: exp}
}

// Generator signs HS256 access tokens for authenticated users.
type Generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// GenerateToken creates a signed JWT token carrying the user id as subject and the email.
func (g *Generator) GenerateToken(userID int64, email string) (string, error) {
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
