package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"faceclock.io/application/utils"
	"faceclock.io/infrastructure/database/repository/cache"
	"faceclock.io/infrastructure/logger"
	"github.com/golang-jwt/jwt"
)

const defaultIdleTTLMins = 30

// SessionCache is swappable so the session lifecycle can be tested without
// redis.
var SessionCache SessionCacheType = &cache.Cache

var ErrUnauthenticated = errors.New("session is missing or has expired")

// SessionIdleTTL is how long a session survives without being exercised.
// Every successful validation slides the expiry forward by this much.
func SessionIdleTTL() time.Duration {
	raw := os.Getenv("SESSION_IDLE_TTL_MINS")
	if raw == "" {
		return defaultIdleTTLMins * time.Minute
	}
	mins, err := strconv.Atoi(raw)
	if err != nil || mins <= 0 {
		return defaultIdleTTLMins * time.Minute
	}
	return time.Duration(mins) * time.Minute
}

// StartSession binds a freshly verified identity to a new session and
// returns the bearer token for it. Called only after a Matched resolution.
func StartSession(identityID string, deviceName string, userAgent string) (*string, error) {
	sessionID := utils.GenerateULIDString()
	payload, err := json.Marshal(SessionData{
		IdentityID: identityID,
		DeviceName: deviceName,
		UserAgent:  userAgent,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return nil, err
	}
	if !SessionCache.CreateEntry(sessionKey(sessionID), string(payload), SessionIdleTTL()) {
		return nil, errors.New("could not persist session")
	}
	token, err := generateSessionToken(sessionID)
	if err != nil {
		logger.Error("error generating session token", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		SessionCache.DeleteOne(sessionKey(sessionID))
		return nil, err
	}
	return token, nil
}

// ValidateSession resolves a bearer token back to its session data. A token
// whose cache entry is gone - expired or logged out - fails with
// ErrUnauthenticated and the caller must re-verify.
func ValidateSession(token string) (*SessionData, string, error) {
	sessionID, err := decodeSessionToken(token)
	if err != nil {
		return nil, "", ErrUnauthenticated
	}
	raw := SessionCache.FindOne(sessionKey(sessionID))
	if raw == nil {
		return nil, "", ErrUnauthenticated
	}
	var data SessionData
	if err := json.Unmarshal([]byte(*raw), &data); err != nil {
		logger.Error("error parsing stored session payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, "", ErrUnauthenticated
	}
	SessionCache.UpdateTTL(sessionKey(sessionID), SessionIdleTTL())
	return &data, sessionID, nil
}

// EndSession destroys a session immediately. Ending an already expired
// session is a no-op.
func EndSession(sessionID string) {
	SessionCache.DeleteOne(sessionKey(sessionID))
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session-%s", sessionID)
}

func generateSessionToken(sessionID string) (*string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":       os.Getenv("JWT_ISSUER"),
		"sessionID": sessionID,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}).SignedString([]byte(os.Getenv("JWT_SIGNING_KEY")))
	if err != nil {
		return nil, err
	}
	return &tokenString, nil
}

func decodeSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SIGNING_KEY")), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token used")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("malformed token claims")
	}
	sessionID, ok := claims["sessionID"].(string)
	if !ok || sessionID == "" {
		return "", errors.New("token carries no session id")
	}
	return sessionID, nil
}
