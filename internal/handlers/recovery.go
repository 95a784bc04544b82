package handlers

import (
	"errors"
	"net/http"

	"github.com/Donsufia/LACIPD-APP/internal/repository"
	"github.com/Donsufia/LACIPD-APP/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errEmailNotFound = "Email not found"
	errSendMail      = "Failed to send email"

	msgTempPasswordSent = "Temporary password sent to your email"
	msgUsernameSent     = "Username sent to your email"
)

type recoveryForm struct {
	Email string `form:"email" json:"email" binding:"required"`
}

// @Summary      Email a temporary password
// @Description  Replaces the account password with a short temporary one and emails it. The old password keeps working if the email cannot be delivered.
// @Tags         recovery
// @Accept       x-www-form-urlencoded
// @Param        email  formData  string  true  "Email on record"
// @Success      200  {string}  string  "Temporary password sent to your email"
// @Failure      404  {string}  string  "Email not found"
// @Failure      502  {string}  string  "Failed to send email"
// @Router       /recover-password [post]
func (h *Handler) recoverPassword(c *gin.Context) {
	var form recoveryForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}

	err := h.services.RecoverPassword(c.Request.Context(), form.Email)
	if err != nil {
		h.respondRecoveryError(c, "recover_password_failed", form.Email, err)
		return
	}
	c.String(http.StatusOK, msgTempPasswordSent)
}

// @Summary      Email the account's username
// @Tags         recovery
// @Accept       x-www-form-urlencoded
// @Param        email  formData  string  true  "Email on record"
// @Success      200  {string}  string  "Username sent to your email"
// @Failure      404  {string}  string  "Email not found"
// @Failure      502  {string}  string  "Failed to send email"
// @Router       /recover-username [post]
func (h *Handler) recoverUsername(c *gin.Context) {
	var form recoveryForm
	if ok := h.bindOrBadRequest(c, &form); !ok {
		return
	}

	err := h.services.RecoverUsername(c.Request.Context(), form.Email)
	if err != nil {
		h.respondRecoveryError(c, "recover_username_failed", form.Email, err)
		return
	}
	c.String(http.StatusOK, msgUsernameSent)
}

// respondRecoveryError maps recovery failures to their statuses: miss
// on the email lookup is a 404, a dead mail channel a 502, anything
// else a 500.
func (h *Handler) respondRecoveryError(c *gin.Context, logKey, email string, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		c.String(http.StatusNotFound, errEmailNotFound)
	case errors.Is(err, service.ErrMailDelivery):
		h.logAndText(c, http.StatusBadGateway, errSendMail, logKey, err, "email", email)
	default:
		h.logAndText(c, http.StatusInternalServerError, "Error processing request", logKey, err, "email", email)
	}
}
