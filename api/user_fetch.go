package api

import (
	"net/http"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
)

// UserFetch returns the authenticated user's profile. The model keeps the
// password hash, tokens and avatar bytes off the wire.
func (a *API) UserFetch(c *gin.Context) {
	user := c.MustGet("user").(model.User)

	c.JSON(http.StatusOK, user)
}
