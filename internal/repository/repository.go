package repository

import (
	"errors"

	"github.com/Donsufia/LACIPD-APP/internal/models"
)

// Domain errors surfaced by the store. Callers match with errors.Is.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Users is the user record store. Every operation is a full
// read-collection / operate / write-collection cycle against the
// backing file, serialized so concurrent calls cannot clobber each
// other's writes.
type Users interface {
	FindByUsername(username string) (*models.User, error)
	// FindByEmail returns the first record with the given email;
	// emails are not unique in the store.
	FindByEmail(email string) (*models.User, error)
	Insert(u models.User) error
	UpdatePassword(username, newHash string) error
	ListAll() ([]models.User, error)
}

// Repository aggregates the store implementations; a single field
// today, but the seam every service goes through.
type Repository struct {
	Users Users
}

// New builds the repository over the JSON store file at path.
func New(path string) (*Repository, error) {
	fs, err := NewFileStore(path)
	if err != nil {
		return nil, err
	}
	return &Repository{Users: fs}, nil
}
