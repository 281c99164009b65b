package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/imincognito/socialhub/internal/admin"
	"github.com/imincognito/socialhub/internal/auth"
	"github.com/imincognito/socialhub/internal/comment"
	"github.com/imincognito/socialhub/internal/config"
	"github.com/imincognito/socialhub/internal/database"
	"github.com/imincognito/socialhub/internal/like"
	"github.com/imincognito/socialhub/internal/middleware"
	"github.com/imincognito/socialhub/internal/post"
	"github.com/imincognito/socialhub/internal/profile"
	"github.com/imincognito/socialhub/internal/realtime"
	"github.com/imincognito/socialhub/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	if cfg.DBUrl == "" {
		panic("SUPABASE_DB_URL manquant")
	}

	database.Connect(cfg.DBUrl)
	if err := database.MigrationsUp(); err != nil {
		log.Fatalf("Erreur migrations: %v", err)
	}

	if err := storage.InitS3(); err != nil {
		log.Fatalf("Erreur init S3: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Erreur connexion Redis: %v", err)
	}

	hub := realtime.Init(rdb)
	go hub.Run(context.Background())

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/signup", auth.Signup)
	api.POST("/login", auth.Login)
	api.POST("/admin/login", auth.AdminLogin)
	api.POST("/logout", auth.Logout)

	// Statut de like consultable sans session
	api.GET("/posts/:id/likes", middleware.OptionalAuthMiddleware(), like.GetLikeStatus)
	api.GET("/posts/:id/comments", middleware.OptionalAuthMiddleware(), comment.GetByPostID)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/session", auth.GetSession)

		authed.GET("/me", profile.GetMe)
		authed.PATCH("/me", profile.UpdateMe)
		authed.POST("/me/avatar", profile.UploadAvatar)

		authed.GET("/feed", post.GetFeed)
		authed.POST("/posts", post.CreatePost)
		authed.DELETE("/posts/:id", post.DeletePost)
		authed.POST("/posts/:id/like", like.ToggleLike)
		authed.POST("/posts/:id/comments", comment.Create)
		authed.DELETE("/comments/:id", comment.Delete)

		authed.GET("/realtime/:table", realtime.Stream(hub))
	}

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminOnlyMiddleware())
	{
		adminGroup.GET("/stats", admin.GetDashboardStats)
		adminGroup.GET("/users", admin.GetUsers)
		adminGroup.GET("/posts", admin.GetAllPosts)
		adminGroup.DELETE("/posts/:id", admin.DeletePost)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Erreur serveur: %v", err)
	}
}
