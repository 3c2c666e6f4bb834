package api

import (
	"net/http"
	"strings"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type taskCreateBody struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (a *API) TaskCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data taskCreateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	data.Description = strings.TrimSpace(data.Description)
	if data.Description == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Description can't be empty",
			"requestID": requestID,
		})
		return
	}

	task := model.Task{
		Description: data.Description,
		Completed:   data.Completed,
		OwnerID:     userID,
	}

	if err := a.DB.Create(&task).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create task", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, task)
}
