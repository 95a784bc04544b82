package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/Donsufia/LACIPD-APP/internal/models"
	"github.com/Donsufia/LACIPD-APP/internal/service"
	"github.com/Donsufia/LACIPD-APP/internal/session"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpErr   error
	signInUser  *models.User
	signInToken string
	signInErr   error
	resolved    map[string]string // token -> username

	lastSignUp  service.SignUpInput
	lastSignIn  [2]string
	revoked     []string
	signUpCalls int
}

func (m *mockAuth) SignUp(input service.SignUpInput) error {
	m.signUpCalls++
	m.lastSignUp = input
	return m.signUpErr
}

func (m *mockAuth) SignIn(username, password string) (*models.User, string, error) {
	m.lastSignIn = [2]string{username, password}
	if m.signInErr != nil {
		return nil, "", m.signInErr
	}
	return m.signInUser, m.signInToken, nil
}

func (m *mockAuth) SignOut(token string) {
	m.revoked = append(m.revoked, token)
}

func (m *mockAuth) Authenticate(token string) (string, error) {
	if username, ok := m.resolved[token]; ok {
		return username, nil
	}
	return "", session.ErrNoSession
}

type mockAccounts struct {
	usernames     []string
	users         []models.PublicUser
	listErr       error
	byUsername    map[string]*models.User
	byUsernameErr error
}

func (m *mockAccounts) ListUsernames() ([]string, error) {
	return m.usernames, m.listErr
}

func (m *mockAccounts) ListUsers() ([]models.PublicUser, error) {
	return m.users, m.listErr
}

func (m *mockAccounts) GetByUsername(username string) (*models.User, error) {
	if m.byUsernameErr != nil {
		return nil, m.byUsernameErr
	}
	if u, ok := m.byUsername[username]; ok {
		return u, nil
	}
	return nil, session.ErrNoSession
}

type mockRecovery struct {
	passwordErr error
	usernameErr error

	passwordCalls []string
	usernameCalls []string
}

func (m *mockRecovery) RecoverPassword(_ context.Context, email string) error {
	m.passwordCalls = append(m.passwordCalls, email)
	return m.passwordErr
}

func (m *mockRecovery) RecoverUsername(_ context.Context, email string) error {
	m.usernameCalls = append(m.usernameCalls, email)
	return m.usernameErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, Config{})
	return h.InitRoutes()
}

// postForm performs an urlencoded POST, optionally with a session cookie.
func postForm(r *gin.Engine, path string, form url.Values, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: cookie})
	}
	r.ServeHTTP(w, req)
	return w
}
