package api

import (
	"net/http"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserDelete removes the account together with everything that hangs off
// it. SQLite won't cascade for us, so tasks and session tokens go in the
// same transaction as the user row to avoid orphans.
func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", user.ID).Delete(model.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(model.Token{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", user.ID).Delete(model.User{}).Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete account", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	invalidateAvatarCache(user.ID)

	c.JSON(http.StatusOK, user)
}
