// Package api contains all endpoints available
package api

import (
	"time"

	"taskvault/task-api/middleware"
	"taskvault/task-api/security"
	"taskvault/task-api/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Argon  *security.ArgonHash
}

func NewRouter(database *gorm.DB) (*API, error) {
	a := &API{
		DB:    database,
		Argon: security.New(),
	}

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	auth := middleware.NewAuthMiddleware(database)
	limiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: viper.GetInt("rate.requests_per_second"),
		Burst:             viper.GetInt("rate.burst"),
	})
	maxUploadSize := viper.GetInt64("upload.max_size")

	// HEAD /heartbeat 		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	users := router.Group("/users", middleware.BodySizeLimiter(2<<20))
	{
		// POST /users/signup 		-> Creates an account and returns the first session token
		users.POST("/signup", limiter, a.UserSignup)

		// POST /users/login 		-> Verifies credentials and returns a fresh session token
		users.POST("/login", limiter, a.UserLogin)

		// POST /users/logout 		-> Revokes the session token used for this request
		users.POST("/logout", auth, a.UserLogout)

		// POST /users/logoutAll 	-> Revokes every session token of the user
		users.POST("/logoutAll", auth, a.UserLogoutAll)

		// GET /users/me 		-> Returns the authenticated user
		users.GET("/me", auth, a.UserFetch)

		// PATCH /users/me 		-> Partially updates the authenticated user
		users.PATCH("/me", auth, a.UserUpdate)

		// DELETE /users/me 		-> Deletes the account and everything it owns
		users.DELETE("/me", auth, a.UserDelete)

		// POST /users/me/avatar 	-> Uploads and normalizes a profile picture
		users.POST("/me/avatar", auth, middleware.BodySizeLimiter(maxUploadSize*2), a.AvatarUpload)

		// DELETE /users/me/avatar 	-> Clears the profile picture
		users.DELETE("/me/avatar", auth, a.AvatarDelete)

		// GET /users/:id/avatar 	-> Serves a profile picture, no auth needed
		users.GET("/:id/avatar", cacheFor(30), a.AvatarFetch)
	}

	tasks := router.Group("/tasks", auth, middleware.BodySizeLimiter(1<<20))
	{
		// POST /tasks 			-> Creates a task owned by the requester
		tasks.POST("", a.TaskCreate)

		// GET /tasks 			-> Lists the requester's tasks with filtering and paging
		tasks.GET("", a.TaskFetchBulk)

		// GET /tasks/:id 		-> Returns a single owned task
		tasks.GET("/:id", a.TaskFetch)

		// PATCH /tasks/:id 		-> Partially updates an owned task
		tasks.PATCH("/:id", a.TaskUpdate)

		// DELETE /tasks/:id 		-> Deletes an owned task
		tasks.DELETE("/:id", a.TaskDelete)
	}

	service.TokenCleanup(time.Hour, database)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}

// invalidateAvatarCache drops the cached avatar response after the avatar
// (or the whole account) changes, so mutations show up immediately instead
// of after the cache TTL. The key matches CacheByRequestURI, which keys by
// the request URI.
func invalidateAvatarCache(userID string) {
	// A miss just means nobody fetched this avatar yet
	_ = store.Delete("/users/" + userID + "/avatar")
}
