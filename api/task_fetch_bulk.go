package api

import (
	"net/http"
	"strconv"
	"strings"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Query fields accepted by sortBy, mapped to their column names
var taskSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"description": "description",
	"completed":   "completed",
}

// TaskFetchBulk lists the requester's tasks. Supports completed=, limit=,
// skip= and sortBy=field:asc|desc.
func (a *API) TaskFetchBulk(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	q := a.DB.Where("owner_id = ?", userID)

	if completedStr := c.Query("completed"); completedStr != "" {
		completed, err := strconv.ParseBool(completedStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Completed must be true or false",
				"requestID": requestID,
			})
			return
		}

		q = q.Where("completed = ?", completed)
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Limit must be a positive integer",
			"requestID": requestID,
		})
		return
	}

	if limit > 100 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Limit can't be bigger than 100",
			"requestID": requestID,
		})
		return
	}

	skipStr := c.DefaultQuery("skip", "0")
	skip, err := strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Skip can't be negative",
			"requestID": requestID,
		})
		return
	}

	order := "created_at desc"

	if sortBy := c.Query("sortBy"); sortBy != "" {
		field, dir, _ := strings.Cut(sortBy, ":")

		column, ok := taskSortColumns[field]
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid sorting option",
				"requestID": requestID,
			})
			return
		}

		switch dir {
		case "", "asc":
			order = column + " asc"
		case "desc":
			order = column + " desc"
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Sort direction must be asc or desc",
				"requestID": requestID,
			})
			return
		}
	}

	tasks := []model.Task{}

	err = q.
		Order(order).
		Offset(skip).
		Limit(limit).
		Find(&tasks).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list tasks", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, tasks)
}
