package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ecoride/internal/domain"
	"ecoride/internal/repository"
	"ecoride/internal/store"
)

// SessionStore is a record-store implementation of repository.SessionStore.
// All sessions live in the session collection as one token-to-user map.
type SessionStore struct {
	store store.Store
}

var _ repository.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a new SessionStore.
func NewSessionStore(s store.Store) *SessionStore {
	return &SessionStore{store: s}
}

func (r *SessionStore) load(ctx context.Context) (map[string]domain.User, error) {
	data, err := r.store.Read(ctx, store.CollectionSessions)
	if err != nil {
		if errors.Is(err, store.ErrNoCollection) {
			return map[string]domain.User{}, nil
		}
		return nil, err
	}

	sessions := map[string]domain.User{}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", store.CollectionSessions, err)
	}
	return sessions, nil
}

func (r *SessionStore) save(ctx context.Context, sessions map[string]domain.User) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", store.CollectionSessions, err)
	}
	return r.store.Write(ctx, store.CollectionSessions, data)
}

// Get retrieves the user bound to a token.
func (r *SessionStore) Get(ctx context.Context, token string) (*domain.User, error) {
	sessions, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	user, ok := sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

// Put binds a token to a user snapshot.
func (r *SessionStore) Put(ctx context.Context, token string, user domain.User) error {
	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	sessions[token] = user
	return r.save(ctx, sessions)
}

// Delete removes a session.
func (r *SessionStore) Delete(ctx context.Context, token string) error {
	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := sessions[token]; !ok {
		return nil
	}
	delete(sessions, token)
	return r.save(ctx, sessions)
}

// RefreshUser updates the user snapshot in every session belonging to the
// user, so a booking's totals are visible on the next authenticated read.
func (r *SessionStore) RefreshUser(ctx context.Context, user domain.User) error {
	sessions, err := r.load(ctx)
	if err != nil {
		return err
	}
	changed := false
	for token, u := range sessions {
		if u.ID == user.ID {
			sessions[token] = user
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.save(ctx, sessions)
}
