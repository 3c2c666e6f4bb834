package api

import (
	"net/http"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLogin verifies credentials and hands out a fresh session token.
// Every failure is an empty 400 so callers can't probe which emails are
// registered.
func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if data.Email == "" || data.Password == "" {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var user model.User

	if err := a.DB.Where("email = ?", data.Email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		}

		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ok, err := a.Argon.VerifyPasswd(data.Password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("requestID", requestID))

		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if !ok {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		zap.L().Error("Failed to issue session token", zap.Error(err), zap.String("requestID", requestID))

		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}
