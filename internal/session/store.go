package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"order_bot/internal/models"
	"order_bot/internal/redis"
)

// Store keeps one conversation session per customer phone.
// Load never reports a missing session: a fresh one in the initial state is
// returned instead.
type Store interface {
	Load(ctx context.Context, phone string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
}

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

func (s *MemoryStore) Load(ctx context.Context, phone string) (*models.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[phone]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[phone]; ok {
		return sess, nil
	}
	sess = models.NewSession(phone)
	s.sessions[phone] = sess
	return sess, nil
}

func (s *MemoryStore) Save(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = time.Now()
	s.sessions[session.Phone] = session
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// RedisStore keeps sessions in redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, phone string) (*models.Session, error) {
	sess, err := s.client.GetSession(ctx, phone)
	if errors.Is(err, redis.ErrSessionNotFound) {
		return models.NewSession(phone), nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now()
	return s.client.SetSession(ctx, session.Phone, session, s.ttl)
}
