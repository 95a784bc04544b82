package service

import (
	"context"

	"github.com/Donsufia/LACIPD-APP/internal/models"
	"github.com/Donsufia/LACIPD-APP/internal/repository"
)

// mockUsers is a lightweight in-test mock for repository.Users.
type mockUsers struct {
	FindByUsernameFn func(username string) (*models.User, error)
	FindByEmailFn    func(email string) (*models.User, error)
	InsertFn         func(u models.User) error
	UpdatePasswordFn func(username, newHash string) error
	ListAllFn        func() ([]models.User, error)

	inserts []models.User
	updates []struct {
		username string
		hash     string
	}
}

var _ repository.Users = (*mockUsers)(nil)

func (m *mockUsers) FindByUsername(username string) (*models.User, error) {
	return m.FindByUsernameFn(username)
}

func (m *mockUsers) FindByEmail(email string) (*models.User, error) {
	return m.FindByEmailFn(email)
}

func (m *mockUsers) Insert(u models.User) error {
	m.inserts = append(m.inserts, u)
	if m.InsertFn != nil {
		return m.InsertFn(u)
	}
	return nil
}

func (m *mockUsers) UpdatePassword(username, newHash string) error {
	m.updates = append(m.updates, struct {
		username string
		hash     string
	}{username: username, hash: newHash})
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(username, newHash)
	}
	return nil
}

func (m *mockUsers) ListAll() ([]models.User, error) {
	return m.ListAllFn()
}

// mockMailer records dispatched messages and fails on demand.
type mockMailer struct {
	err  error
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *mockMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}
