package api

import (
	"errors"
	"net/http"

	"taskvault/task-api/model"
	"taskvault/task-api/service"
	"taskvault/task-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvatarUpload accepts a single multipart file field named "avatar",
// normalizes it to a 250x250 PNG and stores it on the user row,
// overwriting whatever was there.
func (a *API) AvatarUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	user := c.MustGet("user").(model.User)

	fh, err := c.FormFile("avatar")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrNoAvatar.Error(),
			"requestID": requestID,
		})
		return
	}

	code, f, err := validators.AvatarValidator(fh)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate avatar", zap.Error(err), zap.String("requestID", requestID))

			err = errors.New("internal server error")
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	buf, err := service.NormalizeAvatar(f)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     validators.ErrAvatarNotAnImage.Error(),
			"requestID": requestID,
		})

		zap.L().Debug("Failed to normalize avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.DB.
		Model(&user).
		Update("avatar", buf).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	invalidateAvatarCache(user.ID)

	c.Status(http.StatusOK)
}
