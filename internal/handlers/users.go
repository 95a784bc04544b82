package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errReadUsers = "Error reading users data"

// @Summary      List registered usernames
// @Tags         users
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {string}  string
// @Router       /users [get]
func (h *Handler) listUsernames(c *gin.Context) {
	names, err := h.services.ListUsernames()
	if err != nil {
		h.logAndText(c, http.StatusInternalServerError, errReadUsers, "list_usernames_failed", err)
		return
	}
	c.JSON(http.StatusOK, names)
}

// @Summary      Full user listing (admin only)
// @Tags         users
// @Produce      json
// @Success      200  {array}   models.PublicUser
// @Failure      403  {string}  string  "Access denied"
// @Failure      500  {string}  string
// @Router       /view-users [get]
func (h *Handler) viewUsers(c *gin.Context) {
	users, err := h.services.ListUsers()
	if err != nil {
		h.logAndText(c, http.StatusInternalServerError, errReadUsers, "view_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
