package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/atelier-ng/atelier-backend/pkg/errors"
	"github.com/atelier-ng/atelier-backend/pkg/redis"
)

type sessionBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CheckoutKey(sessionID string) string
}

// SessionStore persists checkout state in Redis, keyed by the cart session.
type SessionStore struct {
	backend sessionBackend
	ttl     time.Duration
}

func NewSessionStore(backend sessionBackend, ttl time.Duration) (*SessionStore, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: session backend is required")
	}
	if ttl <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout: session ttl must be positive")
	}
	return &SessionStore{backend: backend, ttl: ttl}, nil
}

// Load returns the stored checkout session, or a fresh one at the info step
// when nothing is stored yet or the stored payload cannot be decoded.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*Session, error) {
	raw, err := s.backend.Get(ctx, s.backend.CheckoutKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewSession(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout: failed to load session")
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return NewSession(), nil
	}
	if session.Step == "" {
		session.Step = StepInfo
	}
	return &session, nil
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout: failed to encode session")
	}
	if err := s.backend.Set(ctx, s.backend.CheckoutKey(sessionID), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout: failed to store session")
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.backend.Del(ctx, s.backend.CheckoutKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout: failed to delete session")
	}
	return nil
}
