package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/router"
	authadapters "task_backend/internal/feature/auth/adapters"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/cache"
	infradb "task_backend/internal/platform/db"
	jwtmw "task_backend/internal/platform/jwt"
	infraredis "task_backend/internal/platform/redis"
)

// loadDotenv は開発用の.envファイルがあれば読み込みます。
func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("[env] loaded", p)
			return
		}
	}
}

func main() {
	loadDotenv()

	// db
	db := infradb.OpenDB()

	// Redis（任意: 無ければキャッシュなしで動作）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without stats cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	taskRepo := taskadapters.NewTaskPostgres(db)

	// 統計集計をRedisキャッシュでラップ
	cachedTaskRepo := cache.NewCachingTaskRepository(rdb, 0, taskRepo, "taskstats")

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	jwtGen := jwtmw.NewGenerator(secret, jwtmw.TokenTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	taskUC := taskusecase.NewTaskUsecase(cachedTaskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)

	// ルータ生成
	r := router.NewRouter(authH, taskH)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
