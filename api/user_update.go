package api

import (
	"net/http"
	"strings"

	"taskvault/task-api/model"
	"taskvault/task-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var allowedUserUpdates = []string{"name", "email", "password", "age"}

// UserUpdate applies a partial profile update. The whole body is rejected
// if any key falls outside the allow-list, no partial application.
func (a *API) UserUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if !validators.UpdateValidator(updates, allowedUserUpdates) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"Error": "Invalid Updates!",
		})
		return
	}

	for key, value := range updates {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok || strings.TrimSpace(name) == "" {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Name must be a non-empty string",
					"requestID": requestID,
				})
				return
			}
			user.Name = strings.TrimSpace(name)

		case "email":
			email, ok := value.(string)
			if !ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Email must be a string",
					"requestID": requestID,
				})
				return
			}
			if err := validators.EmailValidator(email); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     err.Error(),
					"requestID": requestID,
				})
				return
			}
			user.Email = email

		case "password":
			password, ok := value.(string)
			if !ok {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Password must be a string",
					"requestID": requestID,
				})
				return
			}
			if err := validators.PasswordValidator(password); err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     err.Error(),
					"requestID": requestID,
				})
				return
			}

			hash, err := a.Argon.GenerateFromPassword(password)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":     "Internal server error",
					"requestID": requestID,
				})

				zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
				return
			}
			user.PasswordHash = hash

		case "age":
			// JSON numbers decode as float64
			age, ok := value.(float64)
			if !ok || age < 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"error":     "Age must be a positive number",
					"requestID": requestID,
				})
				return
			}
			n := int(age)
			user.Age = &n
		}
	}

	if err := a.DB.Save(&user).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save user update", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
