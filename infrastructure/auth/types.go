package auth

import "time"

// SessionData is the ephemeral state held in the cache for one verified
// session. Nothing here is durable; expiry simply deletes it.
type SessionData struct {
	IdentityID string    `json:"identityID"`
	DeviceName string    `json:"deviceName"`
	UserAgent  string    `json:"userAgent"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SessionCacheType is the slice of the cache repository the session
// authenticator needs. Satisfied by the redis repository in production and
// by an in-memory fake in tests.
type SessionCacheType interface {
	CreateEntry(key string, payload interface{}, ttl time.Duration) bool
	FindOne(key string) *string
	DeleteOne(key string) bool
	UpdateTTL(key string, ttl time.Duration) bool
}
