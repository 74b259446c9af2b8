package api

import (
	"Gloom/internal/api/middleware"
	"Gloom/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/register", group.UserHandler.Register)
			userGroup.POST("/login", group.UserHandler.Login)

			profileGroup := userGroup.Group("")
			profileGroup.Use(middleware.AuthOptionalMiddleware())
			{
				profileGroup.GET("/:user_id/profile", group.UserHandler.GetProfile)
			}

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.POST("/avatar", group.UserHandler.UploadAvatar)
			}
		}

		videoGroup := apiGroup.Group("/videos")
		{
			videoGroup.GET("/feed", group.VideoHandler.Feed)
			videoGroup.GET("/list/:user_id", group.VideoHandler.ListByUser)

			authGroup := videoGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("", group.VideoHandler.Publish)
			}
		}

		followGroup := apiGroup.Group("/user-relation")
		{
			followGroup.Use(middleware.AuthMiddleware())
			{
				followGroup.POST("/follow/:target_id", group.FollowHandler.Toggle)
			}
		}
	}

	return r
}
