// Package jwtmw issues access tokens and turns bearer tokens on incoming
// requests into the security.Actor of the request context.
package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"finance_tracker/internal/platform/security"
)

const (
	ContextUserID      = "userID"
	ContextToken       = "token"
	ContextTokenExpiry = "tokenExpiry"
)

var errMissingBearer = errors.New("missing bearer token")

// Revocations reports whether a token was revoked by logout.
type Revocations interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type options struct {
	revocations Revocations
}

// Option configures the authentication middleware.
type Option func(*options)

// WithRevocations rejects tokens found in r.
func WithRevocations(r Revocations) Option {
	return func(o *options) { o.revocations = r }
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
func AuthRequired(opts ...Option) gin.HandlerFunc {
	o := buildOptions(opts)
	return func(c *gin.Context) {
		authenticate(c, false, o)
	}
}

// OptionalAuth authenticates a bearer token when one is sent and otherwise
// continues with the anonymous actor. A token that is sent but invalid is
// still rejected.
func OptionalAuth(opts ...Option) gin.HandlerFunc {
	o := buildOptions(opts)
	return func(c *gin.Context) {
		authenticate(c, true, o)
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func authenticate(c *gin.Context, allowAnonymous bool, o options) {
	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		// Server misconfiguration (JWT_SECRET not set)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
		return
	}

	actor, tok, err := actorFromHeader(c.GetHeader("Authorization"), secret)
	switch {
	case errors.Is(err, errMissingBearer) && allowAnonymous:
		actor = security.AnonymousActor
	case errors.Is(err, errMissingBearer):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	case err != nil:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	default:
		if o.revocations != nil {
			revoked, err := o.revocations.IsRevoked(c.Request.Context(), tok.raw)
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "revocation lookup failed", "error", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication unavailable"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
				return
			}
		}
		c.Set(ContextUserID, actor.UserID)
		c.Set(ContextToken, tok.raw)
		c.Set(ContextTokenExpiry, tok.expiresAt)
	}

	c.Request = c.Request.WithContext(security.WithActor(c.Request.Context(), actor))
	c.Next()
}

// bearer is the raw token of an authenticated request.
type bearer struct {
	raw       string
	expiresAt time.Time
}

// actorFromHeader parses an "Authorization: Bearer <token>" value.
func actorFromHeader(auth, secret string) (security.Actor, bearer, error) {
	if !strings.HasPrefix(auth, "Bearer ") {
		return security.Actor{}, bearer{}, errMissingBearer
	}
	tokenStr := strings.TrimPrefix(auth, "Bearer ")

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return security.Actor{}, bearer{}, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return security.Actor{}, bearer{}, jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub <= 0 {
		return security.Actor{}, bearer{}, jwt.ErrTokenInvalidSubject
	}
	email, _ := claims["email"].(string)

	b := bearer{raw: tokenStr}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		b.expiresAt = exp.Time
	}

	return security.Actor{
		Authenticated: true,
		Name:          email,
		UserID:        int64(sub),
		Principal:     &security.Principal{Username: email},
	}, b, nil
}
