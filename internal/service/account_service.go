package service

import (
	"github.com/Donsufia/LACIPD-APP/internal/models"
	"github.com/Donsufia/LACIPD-APP/internal/repository"
)

// AccountService serves read-only views of the user collection.
type AccountService struct {
	users repository.Users
}

func NewAccountService(users repository.Users) *AccountService {
	return &AccountService{users: users}
}

// ListUsernames returns every username in registration order.
func (s *AccountService) ListUsernames() ([]string, error) {
	all, err := s.users.ListAll()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for i := range all {
		names = append(names, all[i].Username)
	}
	return names, nil
}

// ListUsers returns the hash-free projection of every record, in
// registration order.
func (s *AccountService) ListUsers() ([]models.PublicUser, error) {
	all, err := s.users.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(all))
	for i := range all {
		out = append(out, all[i].Public())
	}
	return out, nil
}

// GetByUsername looks up a single record.
func (s *AccountService) GetByUsername(username string) (*models.User, error) {
	return s.users.FindByUsername(username)
}
