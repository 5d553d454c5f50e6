package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
)

// tokenRepository implements adapter.TokenRepository over the shared store.
type tokenRepository struct {
	store *Store
}

// NewTokenRepository creates a new in-memory token repository.
func NewTokenRepository(store *Store) adapter.TokenRepository {
	return &tokenRepository{
		store: store,
	}
}

func (r *tokenRepository) SaveRefreshToken(_ context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.tokens[token] = &refreshToken{
		userID:    userID,
		expiresAt: expiresAt,
	}
	return nil
}

func (r *tokenRepository) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stored, ok := r.store.tokens[token]
	if !ok || stored.invalidated {
		return false, nil
	}
	return time.Now().Before(stored.expiresAt), nil
}

func (r *tokenRepository) InvalidateRefreshToken(_ context.Context, token string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if stored, ok := r.store.tokens[token]; ok {
		stored.invalidated = true
	}
	return nil
}
