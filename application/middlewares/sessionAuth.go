package middlewares

import (
	"strings"

	apperrors "faceclock.io/application/appErrors"
	"faceclock.io/application/constants"
	"faceclock.io/application/interfaces"
	"faceclock.io/infrastructure/auth"
)

// SessionAuthenticationMiddleware resolves the bearer token to a live
// session. Every successful pass slides the session's idle expiry forward.
func SessionAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authHeader string) (*interfaces.ApplicationContext[any], bool) {
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	if token == "" {
		apperrors.AuthenticationError(ctx.Ctx, "verify your face to start a session", &constants.SESSION_EXPIRED)
		return nil, false
	}
	session, sessionID, err := auth.ValidateSession(token)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "your session has expired. verify your face to continue", &constants.SESSION_EXPIRED)
		return nil, false
	}
	ctx.SessionID = sessionID
	ctx.SetContextData("IdentityID", session.IdentityID)
	ctx.SetContextData("SessionID", sessionID)
	ctx.SetContextData("DeviceName", session.DeviceName)
	ctx.SetContextData("UserAgent", session.UserAgent)
	return ctx, true
}
