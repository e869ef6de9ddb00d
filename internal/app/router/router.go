// Package router はアプリケーションのHTTPルーティングを構成します。
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	jwtmw "task_backend/internal/platform/jwt"
	platformhandler "task_backend/internal/platform/http/handler"
)

// NewRouter はすべてのエンドポイントを登録したGinエンジンを生成します。
// ルートは完全公開か完全認証必須のどちらかで、部分的な認証ルートは存在しません。
func NewRouter(authHandler *authhandler.AuthHandler, taskHandler *taskhandler.TaskHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザフロントエンドからのアクセスを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	users := r.Group("/api/users")
	// 新規ユーザー登録
	users.POST("/register", authHandler.Register)
	// ログイン（JWT 発行）
	users.POST("/login", authHandler.Login)

	// 認証必須のユーザールート
	usersAuth := users.Group("")
	usersAuth.Use(jwtmw.AuthRequired())
	{
		usersAuth.GET("/me", authHandler.Me)
		usersAuth.PUT("/profile", authHandler.UpdateProfile)
		usersAuth.PUT("/password", authHandler.ChangePassword)
	}

	// タスクルートはすべて認証必須
	tasks := r.Group("/api/tasks")
	tasks.Use(jwtmw.AuthRequired())
	{
		tasks.POST("", taskHandler.Create)
		tasks.GET("", taskHandler.List)
		// /stats は /:id より先に登録する（Ginは静的ルートを優先するが明示しておく）
		tasks.GET("/stats", taskHandler.Stats)
		tasks.GET("/:id", taskHandler.Get)
		tasks.PUT("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	// 未定義ルート
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.MessageResponse{Message: "Endpoint not found"})
	})

	return r
}
