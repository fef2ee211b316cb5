package userstore

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-memory Store for development and tests.
// Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemory creates an empty in-memory user store.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]User)}
}

// Put stores or replaces a user profile.
func (m *Memory) Put(user User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

// Delete removes a user profile. Unknown IDs are a no-op.
func (m *Memory) Delete(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

// GetUser implements Store.
func (m *Memory) GetUser(ctx context.Context, userID string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.users[userID]
	if !exists {
		return User{}, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	return user, nil
}
