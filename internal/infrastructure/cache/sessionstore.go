package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const (
	// SessionKeyPrefix is the Redis key prefix for UI sessions
	SessionKeyPrefix = "fleetdesk:session:"
	// flashOnlyTTL bounds sessions that only carry a message for the next page.
	flashOnlyTTL = 10 * time.Minute
)

// Flash is a one-shot message rendered by the next page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the server-side state behind the session cookie.
type Session struct {
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Flashes      []Flash   `json:"flashes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Authenticated reports whether the session carries an access token.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// SessionStore keeps sessions in Redis under a hash of the cookie value.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	maxAge time.Duration
	now    func() time.Time
}

func NewSessionStore(client redis.UniversalClient, maxAge time.Duration) *SessionStore {
	if maxAge <= 0 {
		maxAge = 8 * time.Hour
	}
	return &SessionStore{
		client: client,
		prefix: SessionKeyPrefix,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// NewSessionID returns a fresh opaque cookie value.
func NewSessionID() string {
	return uuid.NewString()
}

// buildKey hashes id so the raw cookie value never appears in Redis.
func (s *SessionStore) buildKey(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return s.prefix + hex.EncodeToString(sum[:])
}

// ttlFor follows the refresh token lifetime, bounded by maxAge.
func (s *SessionStore) ttlFor(sess *Session) time.Duration {
	if !sess.Authenticated() {
		return flashOnlyTTL
	}
	if sess.RefreshToken == "" {
		return s.maxAge
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.RefreshToken, claims); err != nil {
		return s.maxAge
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.maxAge
	}

	ttl := exp.Time.Sub(s.now())
	if ttl <= 0 || ttl > s.maxAge {
		return s.maxAge
	}
	return ttl
}

// Get returns the session for id, or nil when it does not exist or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, s.buildKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, id string, sess *Session) error {
	if id == "" {
		return errors.New("session id cannot be empty")
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now().UTC()
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(id), data, s.ttlFor(sess)).Err(); err != nil {
		return fmt.Errorf("failed to store session in redis: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.buildKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AddFlash appends a message to the session, creating a message-only session
// when id has none.
func (s *SessionStore) AddFlash(ctx context.Context, id, level, message string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sess == nil {
		sess = &Session{}
	}
	sess.Flashes = append(sess.Flashes, Flash{Level: level, Message: message})
	return s.Save(ctx, id, sess)
}

// PopFlashes returns and clears the pending messages.
func (s *SessionStore) PopFlashes(ctx context.Context, id string) ([]Flash, error) {
	sess, err := s.Get(ctx, id)
	if err != nil || sess == nil || len(sess.Flashes) == 0 {
		return nil, err
	}

	flashes := sess.Flashes
	sess.Flashes = nil
	if err := s.Save(ctx, id, sess); err != nil {
		return nil, err
	}
	return flashes, nil
}
