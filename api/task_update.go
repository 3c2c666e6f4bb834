package api

import (
	"errors"
	"net/http"
	"strings"

	"taskvault/task-api/model"
	"taskvault/task-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allowedTaskUpdates = []string{"description", "completed"}

// TaskUpdate applies a partial update to an owned task with the same
// whole-body allow-list semantics as the profile update.
func (a *API) TaskUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	taskID := c.Param("id")

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if !validators.UpdateValidator(updates, allowedTaskUpdates) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"Error": "Invalid Updates!",
		})
		return
	}

	var task model.Task

	err := a.DB.
		Where("id = ? AND owner_id = ?", taskID, userID).
		First(&task).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	for key, value := range updates {
		switch key {
		case "description":
			description, ok := value.(string)
			if !ok || strings.TrimSpace(description) == "" {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Description can't be empty",
					"requestID": requestID,
				})
				return
			}
			task.Description = strings.TrimSpace(description)

		case "completed":
			completed, ok := value.(bool)
			if !ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Completed must be a boolean",
					"requestID": requestID,
				})
				return
			}
			task.Completed = completed
		}
	}

	if err := a.DB.Save(&task).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save task update", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, task)
}
