package main

import (
	"os"
	"os/signal"
	"syscall"

	"newsguard/internal/auth"
	"newsguard/internal/config"
	"newsguard/internal/database"
	"newsguard/internal/handlers"
	"newsguard/internal/models"
	"newsguard/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var defaultCategories = []models.Category{
	{Name: "Technology", Slug: "technology", Description: "Latest tech news and innovations"},
	{Name: "Business", Slug: "business", Description: "Business news and market updates"},
	{Name: "Sports", Slug: "sports", Description: "Sports news and updates"},
	{Name: "Politics", Slug: "politics", Description: "Political news and government updates"},
	{Name: "Health", Slug: "health", Description: "Health and wellness news"},
	{Name: "Entertainment", Slug: "entertainment", Description: "Entertainment and celebrity news"},
	{Name: "Science", Slug: "science", Description: "Scientific discoveries and research"},
	{Name: "World", Slug: "world", Description: "International news and global events"},
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := store.NewCategories(db).SeedDefaults(defaultCategories); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default categories")
	}

	setupGracefulShutdown(db, log)
	runServer(db, cfg, log)
}

func setupGracefulShutdown(db *gorm.DB, log zerolog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("received shutdown signal, shutting down")
		database.Close(db)
		os.Exit(0)
	}()
}

func runServer(db *gorm.DB, cfg *config.Config, log zerolog.Logger) {
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(corsMiddleware())

	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenExpiryHours)
	authMiddleware := auth.NewMiddleware(tokens, store.NewUsers(db))

	publicHandler := handlers.NewPublicHandler(db, cfg, log)
	articlesHandler := handlers.NewArticlesHandler(db, log)
	categoriesHandler := handlers.NewCategoriesHandler(db, cfg, log)
	authHandler := handlers.NewAuthHandler(db, tokens, log)
	adminHandler := handlers.NewAdminHandler(db, cfg, log)

	r.GET("/", publicHandler.Root)
	r.GET("/health", publicHandler.Health)

	api := r.Group("/api")
	{
		api.GET("/articles", publicHandler.ListArticles)
		api.GET("/articles/:id", articlesHandler.Get)
		api.POST("/articles/:id/like", articlesHandler.Like)
		api.POST("/articles/:id/dislike", articlesHandler.Dislike)
		api.POST("/articles/:id/share", articlesHandler.Share)
		api.POST("/articles/:id/flag", articlesHandler.Flag)

		api.GET("/categories", categoriesHandler.List)
		api.GET("/categories/:slug", categoriesHandler.Get)
		api.GET("/category/:slug", categoriesHandler.Recent)
		api.GET("/category/:slug/articles", categoriesHandler.Articles)

		api.GET("/search", publicHandler.Search)
		api.GET("/trending", publicHandler.Trending)
		api.GET("/stats", publicHandler.Stats)
		api.POST("/newsletter", publicHandler.SubscribeNewsletter)
		api.DELETE("/newsletter", publicHandler.UnsubscribeNewsletter)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/signin", authHandler.Signin)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", authMiddleware.RequireUser(), authHandler.Me)
			authGroup.PUT("/profile", authMiddleware.RequireUser(), authHandler.UpdateProfile)
		}

		admin := api.Group("/admin", authMiddleware.RequireUser(), authMiddleware.RequireAdmin())
		{
			admin.GET("/categories", adminHandler.Categories)
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/articles", adminHandler.ListArticles)
			admin.POST("/articles", adminHandler.CreateArticle)
			admin.PUT("/articles/:id", adminHandler.UpdateArticle)
			admin.DELETE("/articles/:id", adminHandler.DeleteArticle)
			admin.GET("/moderation/flagged", adminHandler.Flagged)
			admin.POST("/moderation/:id/approve", adminHandler.ApproveFlag)
			admin.POST("/moderation/:id/reject", adminHandler.RejectFlag)
		}
	}

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("request")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
