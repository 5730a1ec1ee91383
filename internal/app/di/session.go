package di

import (
	"github.com/redis/go-redis/v9"

	"finance_tracker/internal/app/router"
	userhandler "finance_tracker/internal/feature/user/transport/handler"
	jwtmw "finance_tracker/internal/platform/jwt"
	"finance_tracker/internal/platform/session"
)

// NewAuthMiddleware returns the authentication middlewares and the logout
// revocation store. Without Redis, tokens stay valid until they expire and
// the returned revoker is nil.
func NewAuthMiddleware(rdb *redis.Client) (router.Middleware, userhandler.TokenRevoker) {
	if rdb == nil {
		return router.Middleware{
			AuthRequired: jwtmw.AuthRequired(),
			OptionalAuth: jwtmw.OptionalAuth(),
		}, nil
	}
	revocations := session.NewRevocationRedis(rdb, "revoked")
	return router.Middleware{
		AuthRequired: jwtmw.AuthRequired(jwtmw.WithRevocations(revocations)),
		OptionalAuth: jwtmw.OptionalAuth(jwtmw.WithRevocations(revocations)),
	}, revocations
}
