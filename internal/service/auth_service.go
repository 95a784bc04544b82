package service

import (
	"errors"
	"fmt"

	"github.com/Donsufia/LACIPD-APP/internal/hash"
	"github.com/Donsufia/LACIPD-APP/internal/models"
	"github.com/Donsufia/LACIPD-APP/internal/repository"
	"github.com/Donsufia/LACIPD-APP/internal/session"
)

// ErrInvalidCredential is returned for a wrong password and for an
// unknown username alike, so sign-in failures carry no enumeration
// signal.
var ErrInvalidCredential = errors.New("invalid username or password")

// dummyHash is a valid bcrypt hash compared against when the username
// does not exist, keeping the miss path as expensive as the hit path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService handles registration and the session lifecycle.
type AuthService struct {
	users    repository.Users
	sessions *session.Manager
}

func NewAuthService(users repository.Users, sessions *session.Manager) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// SignUp hashes the password and inserts the new record. New accounts
// always get the plain user role.
func (s *AuthService) SignUp(input SignUpInput) error {
	hashed, err := hash.Password(input.Password)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	return s.users.Insert(models.User{
		Username:     input.Username,
		PasswordHash: hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		Role:         models.RoleUser,
	})
}

// SignIn verifies the credentials and opens a session.
func (s *AuthService) SignIn(username, password string) (*models.User, string, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a comparison so unknown usernames cost the same.
			hash.Verify(dummyHash, password)
			return nil, "", ErrInvalidCredential
		}
		return nil, "", err
	}
	if !hash.Verify(u.PasswordHash, password) {
		return nil, "", ErrInvalidCredential
	}

	token, err := s.sessions.Issue(u.Username)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// SignOut destroys the session behind the token, if any.
func (s *AuthService) SignOut(token string) {
	s.sessions.Revoke(token)
}

// Authenticate resolves the token to a username. No store access, no
// credential re-validation; an invalid token yields session.ErrNoSession.
func (s *AuthService) Authenticate(token string) (string, error) {
	return s.sessions.Resolve(token)
}
