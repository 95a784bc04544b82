package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Donsufia/LACIPD-APP/internal/models"
)

// FileStore persists the user collection as a single JSON array file.
// One mutex guards every operation, so a mutation's read-modify-write
// cycle can never interleave with another's. Reads re-parse the file
// each time; the file is the only source of truth.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*FileStore)(nil)

// NewFileStore opens the store at path, creating an empty collection
// (and parent directory) if the file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create store directory %q: %w", dir, err)
			}
		}
		if err := s.write(nil); err != nil {
			return nil, err
		}
		return s, nil
	}
	// Fail fast on an unreadable or corrupt file.
	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

// read loads and parses the whole collection. Caller must hold mu.
func (s *FileStore) read() ([]models.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read user store %q: %w", s.path, err)
	}
	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse user store %q: %w", s.path, err)
	}
	for i := range users {
		normalizeRole(&users[i])
	}
	return users, nil
}

// write replaces the store file with the given collection. The rewrite
// goes to a temp file first and renames over the original, so a crash
// mid-write never truncates the store. Caller must hold mu.
func (s *FileStore) write(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user store: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write user store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace user store %q: %w", s.path, err)
	}
	return nil
}

// legacyAdminUsername is how old store files marked the admin: by
// username alone, with no role field.
const legacyAdminUsername = "admin"

// normalizeRole fills in the role for records written before the role
// field existed: the "admin" username was the admin, everyone else a
// plain user.
func normalizeRole(u *models.User) {
	if u.Role != "" {
		return
	}
	if u.Username == legacyAdminUsername {
		u.Role = models.RoleAdmin
	} else {
		u.Role = models.RoleUser
	}
}

// FindByUsername returns the record with the given username or
// ErrUserNotFound.
func (s *FileStore) FindByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByEmail returns the first record with the given email or
// ErrUserNotFound. Emails are not unique; first match wins.
func (s *FileStore) FindByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Insert appends a new record and persists the collection. Fails with
// ErrDuplicateUsername if the username is already taken; the store is
// left unchanged in that case.
func (s *FileStore) Insert(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == u.Username {
			return fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicateUsername)
		}
	}
	normalizeRole(&u)
	return s.write(append(users, u))
}

// UpdatePassword replaces the stored hash for username in place and
// persists the collection. Fails with ErrUserNotFound on a miss.
func (s *FileStore) UpdatePassword(username, newHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == username {
			users[i].PasswordHash = newHash
			return s.write(users)
		}
	}
	return fmt.Errorf("update password for %q: %w", username, ErrUserNotFound)
}

// ListAll returns the whole collection in registration order.
func (s *FileStore) ListAll() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read()
}
