package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeSessionCache struct {
	entries map[string]string
	ttls    map[string]time.Duration
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{
		entries: map[string]string{},
		ttls:    map[string]time.Duration{},
	}
}

func (f *fakeSessionCache) CreateEntry(key string, payload interface{}, ttl time.Duration) bool {
	f.entries[key] = payload.(string)
	f.ttls[key] = ttl
	return true
}

func (f *fakeSessionCache) FindOne(key string) *string {
	value, ok := f.entries[key]
	if !ok {
		return nil
	}
	return &value
}

func (f *fakeSessionCache) DeleteOne(key string) bool {
	_, ok := f.entries[key]
	delete(f.entries, key)
	delete(f.ttls, key)
	return ok
}

func (f *fakeSessionCache) UpdateTTL(key string, ttl time.Duration) bool {
	if _, ok := f.entries[key]; !ok {
		return false
	}
	f.ttls[key] = ttl
	return true
}

func (f *fakeSessionCache) expire(key string) {
	delete(f.entries, key)
	delete(f.ttls, key)
}

func withFakeCache(t *testing.T) *fakeSessionCache {
	t.Helper()
	t.Setenv("JWT_SIGNING_KEY", "test-signing-key")
	original := SessionCache
	fake := newFakeSessionCache()
	SessionCache = fake
	t.Cleanup(func() { SessionCache = original })
	return fake
}

func TestSessionLifecycle(t *testing.T) {
	fake := withFakeCache(t)

	token, err := StartSession("identity-1", "Chrome", "Mozilla/5.0")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if token == nil || *token == "" {
		t.Fatal("StartSession() returned empty token")
	}
	if len(fake.entries) != 1 {
		t.Fatalf("expected 1 session entry, got %d", len(fake.entries))
	}

	data, sessionID, err := ValidateSession(*token)
	if err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	if data.IdentityID != "identity-1" {
		t.Errorf("ValidateSession() identity = %q, want identity-1", data.IdentityID)
	}
	if data.DeviceName != "Chrome" {
		t.Errorf("ValidateSession() device = %q, want Chrome", data.DeviceName)
	}

	EndSession(sessionID)
	if _, _, err := ValidateSession(*token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ValidateSession() after EndSession error = %v, want ErrUnauthenticated", err)
	}
}

func TestValidateSessionAfterExpiry(t *testing.T) {
	fake := withFakeCache(t)

	token, err := StartSession("identity-2", "", "")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	for key := range fake.entries {
		fake.expire(key)
	}
	if _, _, err := ValidateSession(*token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ValidateSession() on expired session error = %v, want ErrUnauthenticated", err)
	}
}

func TestValidateSessionSlidesIdleExpiry(t *testing.T) {
	fake := withFakeCache(t)
	t.Setenv("SESSION_IDLE_TTL_MINS", "45")

	token, err := StartSession("identity-3", "", "")
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, _, err := ValidateSession(*token); err != nil {
		t.Fatalf("ValidateSession() error = %v", err)
	}
	for key, ttl := range fake.ttls {
		if ttl != 45*time.Minute {
			t.Errorf("ttl for %s = %v, want 45m", key, ttl)
		}
	}
}

func TestValidateSessionRejectsGarbageTokens(t *testing.T) {
	withFakeCache(t)

	for _, token := range []string{"", "not-a-jwt", strings.Repeat("a", 300)} {
		if _, _, err := ValidateSession(token); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("ValidateSession(%q) error = %v, want ErrUnauthenticated", token, err)
		}
	}
}

func TestSessionIdleTTL(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want time.Duration
	}{
		{name: "default when unset", env: "", want: 30 * time.Minute},
		{name: "configured", env: "10", want: 10 * time.Minute},
		{name: "garbage falls back", env: "soon", want: 30 * time.Minute},
		{name: "non positive falls back", env: "0", want: 30 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_IDLE_TTL_MINS", tt.env)
			if got := SessionIdleTTL(); got != tt.want {
				t.Errorf("SessionIdleTTL() = %v, want %v", got, tt.want)
			}
		})
	}
}
