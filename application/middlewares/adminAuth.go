package middlewares

import (
	"os"

	apperrors "faceclock.io/application/appErrors"
	"faceclock.io/application/interfaces"
	"faceclock.io/infrastructure/cryptography"
	"faceclock.io/infrastructure/logger"
)

// AdminAuthenticationMiddleware gates enrollment behind the operator's API
// key. Only the argon2 hash of the key is ever configured on the server.
func AdminAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], adminKey string) (*interfaces.ApplicationContext[any], bool) {
	keyHash := os.Getenv("ADMIN_API_KEY_HASH")
	if keyHash == "" {
		logger.Error("ADMIN_API_KEY_HASH is not configured. rejecting admin request")
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access", nil)
		return nil, false
	}
	if adminKey == "" || !cryptography.CryptoHasher.VerifyHashData(keyHash, adminKey) {
		logger.Warning("request with an invalid admin key")
		apperrors.AuthenticationError(ctx.Ctx, "unauthorized access", nil)
		return nil, false
	}
	return ctx, true
}
