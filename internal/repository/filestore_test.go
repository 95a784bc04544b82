package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/Donsufia/LACIPD-APP/internal/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s
}

func testUser(name string) models.User {
	return models.User{
		Username:     name,
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		FirstName:    "First",
		LastName:     "Last",
		PhoneNumber:  "555-0100",
		Email:        name + "@example.com",
		Role:         models.RoleUser,
	}
}

func TestFileStore_InsertThenFind(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(testUser("alice")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := s.FindByUsername("alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("unexpected email %q", got.Email)
	}

	byEmail, err := s.FindByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.Username != "alice" {
		t.Errorf("FindByEmail returned %q", byEmail.Username)
	}
}

func TestFileStore_FindMiss(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.FindByUsername("ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByUsername miss: got %v, want ErrUserNotFound", err)
	}
	if _, err := s.FindByEmail("ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("FindByEmail miss: got %v, want ErrUserNotFound", err)
	}
}

func TestFileStore_DuplicateInsertLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(testUser("bob")); err != nil {
		t.Fatalf("first Insert: %v", err)
	}

	dup := testUser("bob")
	dup.Email = "other@example.com"
	if err := s.Insert(dup); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("second Insert: got %v, want ErrDuplicateUsername", err)
	}

	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("store size changed on duplicate insert: %d records", len(all))
	}
	if all[0].Email != "bob@example.com" {
		t.Errorf("original record mutated: email %q", all[0].Email)
	}
}

func TestFileStore_FindByEmailFirstMatchWins(t *testing.T) {
	s := newTestStore(t)

	first := testUser("carol")
	second := testUser("dave")
	second.Email = first.Email
	for _, u := range []models.User{first, second} {
		if err := s.Insert(u); err != nil {
			t.Fatalf("Insert %q: %v", u.Username, err)
		}
	}

	got, err := s.FindByEmail(first.Email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.Username != "carol" {
		t.Errorf("expected first match carol, got %q", got.Username)
	}
}

func TestFileStore_UpdatePassword(t *testing.T) {
	s := newTestStore(t)

	if err := s.Insert(testUser("erin")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.UpdatePassword("erin", "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}

	got, err := s.FindByUsername("erin")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.PasswordHash != "newhash" {
		t.Errorf("hash not replaced: %q", got.PasswordHash)
	}
	// other fields untouched
	if got.Email != "erin@example.com" {
		t.Errorf("unrelated field changed: %q", got.Email)
	}

	if err := s.UpdatePassword("ghost", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdatePassword miss: got %v, want ErrUserNotFound", err)
	}
}

func TestFileStore_RoundTripPreservesFieldsAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	var want []models.User
	for i := 0; i < 5; i++ {
		u := testUser(fmt.Sprintf("user%02d", i))
		if err := s.Insert(u); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		want = append(want, u)
	}

	// Reopen from the same file, as a fresh process would.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reopened.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestFileStore_LegacyRecordsGetRoles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	legacy := []map[string]string{
		{"username": "admin", "password": "h1", "email": "admin@example.com"},
		{"username": "frank", "password": "h2", "email": "frank@example.com"},
	}
	data, _ := json.Marshal(legacy)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("seed legacy file: %v", err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	admin, err := s.FindByUsername("admin")
	if err != nil {
		t.Fatalf("FindByUsername admin: %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("legacy admin record did not get the admin role")
	}
	frank, err := s.FindByUsername("frank")
	if err != nil {
		t.Fatalf("FindByUsername frank: %v", err)
	}
	if frank.Role != models.RoleUser {
		t.Errorf("legacy user record got role %q", frank.Role)
	}
}

func TestFileStore_CorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}
	if _, err := NewFileStore(path); err == nil {
		t.Fatal("expected error opening corrupt store, got nil")
	}
}

// Regression test for the lost-update race: simultaneous inserts of
// distinct usernames must all survive.
func TestFileStore_ConcurrentInsertsAllPersist(t *testing.T) {
	s := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Insert(testUser(fmt.Sprintf("user%02d", i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	all, err := s.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != n {
		t.Fatalf("lost update: %d of %d records persisted", len(all), n)
	}
	seen := make(map[string]bool, n)
	for _, u := range all {
		if seen[u.Username] {
			t.Fatalf("duplicate record %q", u.Username)
		}
		seen[u.Username] = true
	}
}
