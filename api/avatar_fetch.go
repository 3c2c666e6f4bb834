package api

import (
	"errors"
	"net/http"

	"taskvault/task-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AvatarFetch serves a user's avatar publicly. Missing user and missing
// avatar both come back as an empty 404 so the endpoint doesn't confirm
// which IDs exist.
func (a *API) AvatarFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID := c.Param("id")
	if userID == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	// Scanned through a struct so the blob maps onto one column. A bare
	// []byte dest would make gorm treat it as a row-per-element slice
	var row struct {
		Avatar []byte
	}

	err := a.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Select("avatar").
		First(&row).
		Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			zap.L().Error("Failed to fetch avatar", zap.Error(err), zap.String("requestID", requestID))
		}

		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if len(row.Avatar) == 0 {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	c.Data(http.StatusOK, "image/png", row.Avatar)
}
