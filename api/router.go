package api

import (
	"github.com/SlpAus/fmk-game-backend/internal/game"
	"github.com/SlpAus/fmk-game-backend/internal/set"
	"github.com/SlpAus/fmk-game-backend/internal/upload"
	"github.com/SlpAus/fmk-game-backend/internal/user"
	"github.com/gin-gonic/gin"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 认证相关的路由组 /api/auth
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", user.Register)
			authRoutes.POST("/login", user.Login)
			authRoutes.POST("/google", user.GoogleLogin)
			authRoutes.GET("/profile", user.RequireAuth(), user.GetProfile)
			authRoutes.GET("/me", user.RequireAuth(), user.GetCurrentUser)
			authRoutes.POST("/verify", user.RequireAuth(), user.VerifyToken)
		}

		// 集合相关的路由组 /api/sets
		setRoutes := api.Group("/sets")
		{
			setRoutes.GET("", set.ListSets)
			setRoutes.POST("", user.RequireAuth(), set.CreateSet)
			setRoutes.GET("/my", user.RequireAuth(), set.ListMySets)
			setRoutes.GET("/:id", set.GetSet)
			setRoutes.PATCH("/:id", user.RequireAuth(), set.UpdateSet)
			setRoutes.DELETE("/:id", user.RequireAuth(), set.DeleteSet)
		}

		// 游戏相关的路由组 /api/game
		gameRoutes := api.Group("/game")
		{
			gameRoutes.POST("/save-results", user.OptionalAuth(), game.SaveGameResults)
			gameRoutes.GET("/history", user.RequireAuth(), game.GetUserGameHistory)
			gameRoutes.GET("/stats", user.RequireAuth(), game.GetGameStats)
			gameRoutes.GET("/characters-with-stats/:setId", game.GetCharactersWithStats)
		}

		// 上传相关的路由
		api.POST("/upload/set-cover", user.RequireAuth(), upload.UploadSetCover)
		api.POST("/characters/upload-image", user.RequireAuth(), upload.UploadCharacterImage)
	}
}
