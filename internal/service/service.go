package service

import (
	"context"

	"github.com/Donsufia/LACIPD-APP/internal/mailer"
	"github.com/Donsufia/LACIPD-APP/internal/models"
	"github.com/Donsufia/LACIPD-APP/internal/repository"
	"github.com/Donsufia/LACIPD-APP/internal/session"
)

// SignUpInput carries the registration form fields. Only username and
// password are validated; profile fields are stored as given.
type SignUpInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Email       string
}

// Authorization covers registration and the session lifecycle.
type Authorization interface {
	SignUp(input SignUpInput) error
	// SignIn verifies credentials and opens a session, returning the
	// signed-in record and the session token for the client.
	SignIn(username, password string) (*models.User, string, error)
	SignOut(token string)
	// Authenticate maps a session token to a username, consulting
	// session state only.
	Authenticate(token string) (string, error)
}

// Accounts exposes read-only projections of the user collection.
type Accounts interface {
	ListUsernames() ([]string, error)
	ListUsers() ([]models.PublicUser, error)
	GetByUsername(username string) (*models.User, error)
}

// Recovery dispatches credentials to a user's email address.
type Recovery interface {
	RecoverPassword(ctx context.Context, email string) error
	RecoverUsername(ctx context.Context, email string) error
}

// Service aggregates all sub-services behind one handle for the HTTP
// layer.
type Service struct {
	Authorization
	Accounts
	Recovery
}

// NewService wires the repository, session manager and mail channel
// into concrete services.
func NewService(repos *repository.Repository, sessions *session.Manager, mail mailer.Mailer) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, sessions),
		Accounts:      NewAccountService(repos.Users),
		Recovery:      NewRecoveryService(repos.Users, mail),
	}
}
