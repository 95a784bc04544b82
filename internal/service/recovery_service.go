package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/Donsufia/LACIPD-APP/internal/hash"
	"github.com/Donsufia/LACIPD-APP/internal/mailer"
	"github.com/Donsufia/LACIPD-APP/internal/repository"
)

// ErrMailDelivery is returned when the recovery email could not be
// dispatched. The user's stored credential is untouched in that case.
var ErrMailDelivery = errors.New("mail delivery failed")

const (
	tempPasswordLength  = 8
	tempPasswordCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

	passwordSubject = "Password Recovery"
	usernameSubject = "Username Recovery"
)

// RecoveryService emails a temporary password or the username to the
// address on record.
type RecoveryService struct {
	users repository.Users
	mail  mailer.Mailer
}

func NewRecoveryService(users repository.Users, mail mailer.Mailer) *RecoveryService {
	return &RecoveryService{users: users, mail: mail}
}

// RecoverPassword replaces the user's password with a short temporary
// one and emails it in plain text. Dispatch happens before the store
// commit: if the email cannot be delivered the old credential keeps
// working and ErrMailDelivery is returned. Only a storage failure
// after a successful send can leave the two out of step.
func (s *RecoveryService) RecoverPassword(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	temp, err := randomPassword(tempPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	hashed, err := hash.Password(temp)
	if err != nil {
		return err
	}

	body := "Your temporary password is: " + temp
	if err := s.mail.Send(ctx, u.Email, passwordSubject, body); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return s.users.UpdatePassword(u.Username, hashed)
}

// RecoverUsername emails the username for the address on record. No
// mutation.
func (s *RecoveryService) RecoverUsername(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}

	body := "Your username is: " + u.Username
	if err := s.mail.Send(ctx, u.Email, usernameSubject, body); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// randomPassword draws n characters from the lowercase alphanumeric
// charset. Deliberately short and simple; it is a one-shot credential
// the user is expected to change.
func randomPassword(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = tempPasswordCharset[int(buf[i])%len(tempPasswordCharset)]
	}
	return string(buf), nil
}
