package auth

import (
	"context"
	"sync"
	"time"

	"github.com/ashishjangde/flip-weather/apperror"
)

// memUserStore is an in-memory UserStore for handler tests. It mirrors the
// Postgres store's contract, including the unique-email conflict and the
// password-hash projection rules.
type memUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[int]*User{}}
}

func (s *memUserStore) Create(ctx context.Context, name, email, passwordHash string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, apperror.NewConflictError("email already registered", nil)
		}
	}

	s.nextID++
	user := &User{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (s *memUserStore) FindByID(ctx context.Context, id int) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError("user not found", nil)
	}
	copied := *u
	copied.PasswordHash = ""
	return &copied, nil
}

// delete removes a user, simulating account deletion for revocation tests.
func (s *memUserStore) delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
