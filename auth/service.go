package auth

import (
	"context"

	"github.com/ashishjangde/flip-weather/apperror"
)

// AuthService implements registration and login on top of a UserStore and a
// TokenService.
type AuthService struct {
	store  UserStore
	tokens *TokenService
}

// NewAuthService creates an AuthService.
func NewAuthService(store UserStore, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates a new user and issues a session token for it. The password
// is hashed before it reaches the store. A duplicate email surfaces as a
// ConflictError.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.Create(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to issue session token", err)
	}
	return user, token, nil
}

// Login verifies the credentials and issues a session token. An unknown email
// and a wrong password both come back as the same AuthError, so a caller
// cannot tell which part was wrong.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, "", apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, "", err
	}

	if !CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", apperror.NewAuthError("invalid credentials", nil)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to issue session token", err)
	}
	return user, token, nil
}
