package handlers

import (
	"errors"
	"net/http"

	"github.com/Donsufia/LACIPD-APP/internal/repository"
	"github.com/Donsufia/LACIPD-APP/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errUserExists         = "User already exists"
	errInvalidCredentials = "Invalid username or password"

	dashboardPath = "/LACIPD_TECH"
	viewUsersPath = "/view-users"
)

// signUpForm mirrors the registration page's form fields.
type signUpForm struct {
	Username    string `form:"username" json:"username" binding:"required"`
	Password    string `form:"password" json:"password" binding:"required"`
	FirstName   string `form:"firstName" json:"firstName"`
	LastName    string `form:"lastName" json:"lastName"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Email       string `form:"email" json:"email"`
}

type credentialsForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// bindOrBadRequest binds the request body (form or JSON) into dst and
// writes a 400 on failure. Returns false if the request was handled.
func (h *Handler) bindOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.String(http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username     formData  string  true   "Unique username"
// @Param        password     formData  string  true   "Password"
// @Param        firstName    formData  string  false  "First name"
// @Param        lastName     formData  string  false  "Last name"
// @Param        phoneNumber  formData  string  false  "Phone number"
// @Param        email        formData  string  false  "Email address"
// @Success      302
// @Failure      400  {string}  string  "User already exists"
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var form signUpForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}

	err := h.services.SignUp(service.SignUpInput{
		Username:    form.Username,
		Password:    form.Password,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		PhoneNumber: form.PhoneNumber,
		Email:       form.Email,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			c.String(http.StatusBadRequest, errUserExists)
			return
		}
		h.logAndText(c, http.StatusInternalServerError, "Error saving user", "sign_up_failed", err, "username", form.Username)
		return
	}

	c.Redirect(http.StatusFound, signInPath)
}

// @Summary      Sign in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Failure      401  {string}  string  "Invalid username or password"
// @Router       /sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var form credentialsForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}

	u, token, err := h.services.SignIn(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredential) {
			if h.log != nil {
				h.log.Infow("sign_in_rejected", "username", form.Username)
			}
			c.String(http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		h.logAndText(c, http.StatusInternalServerError, "Error signing in", "sign_in_failed", err, "username", form.Username)
		return
	}

	h.setSessionCookie(c, token)

	// Admins land on the user listing, everyone else on the dashboard.
	if u.IsAdmin() {
		c.Redirect(http.StatusFound, viewUsersPath)
	} else {
		c.Redirect(http.StatusFound, dashboardPath)
	}
}

// @Summary      Log out
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *Handler) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		h.services.SignOut(token)
	}
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, signInPath)
}

// @Summary      Current session's username
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /get-username [get]
func (h *Handler) getUsername(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"username": c.GetString(usernameKey)})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.SessionTTL.Seconds())
	c.SetCookie(sessionCookie, token, maxAge, "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// logAndText logs the error with context and writes a plain-text
// response, the shape every non-JSON endpoint uses for failures.
func (h *Handler) logAndText(c *gin.Context, code int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.String(code, userMsg)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
