package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookie is the cookie holding the signed session token.
	sessionCookie = "lacipd_session"
	// usernameKey is where middleware stores the resolved identity in
	// the request context.
	usernameKey = "username"

	signInPath = "/sign-in"

	errAccessDenied     = "Access denied"
	errNotAuthenticated = "Not authenticated"
)

// page serves one static file from the configured pages directory.
func (h *Handler) page(name string) gin.HandlerFunc {
	path := filepath.Join(h.cfg.PagesDir, name)
	return func(c *gin.Context) {
		c.File(path)
	}
}

// resolveSession maps the request's session cookie to a username.
// Returns "" when there is no usable session.
func (h *Handler) resolveSession(c *gin.Context) string {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return ""
	}
	username, err := h.services.Authenticate(token)
	if err != nil {
		return ""
	}
	return username
}

// requirePageAuth guards browser page routes: without a session the
// client is redirected to the sign-in page.
func (h *Handler) requirePageAuth(c *gin.Context) {
	username := h.resolveSession(c)
	if username == "" {
		c.Redirect(http.StatusFound, signInPath)
		c.Abort()
		return
	}
	c.Set(usernameKey, username)
	c.Next()
}

// requireAuth guards API routes: without a session the response is a
// 401 JSON error.
func (h *Handler) requireAuth(c *gin.Context) {
	username := h.resolveSession(c)
	if username == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}
	c.Set(usernameKey, username)
	c.Next()
}

// requireAdmin runs after an auth middleware and rejects identities
// whose record does not carry the admin role.
func (h *Handler) requireAdmin(c *gin.Context) {
	username := c.GetString(usernameKey)
	u, err := h.services.GetByUsername(username)
	if err != nil || !u.IsAdmin() {
		c.String(http.StatusForbidden, errAccessDenied)
		c.Abort()
		return
	}
	c.Next()
}
