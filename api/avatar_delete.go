package api

import (
	"net/http"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvatarDelete clears the avatar field. Deleting an avatar that was never
// set still succeeds.
func (a *API) AvatarDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	err := a.DB.
		Model(&user).
		Update("avatar", nil).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Failed to delete avatar",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	invalidateAvatarCache(user.ID)

	c.Status(http.StatusOK)
}
