package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nailit-app/backend/internal/handlers"
	"github.com/nailit-app/backend/internal/middleware"
	"github.com/nailit-app/backend/internal/models"
	"github.com/nailit-app/backend/internal/notify"
	"github.com/nailit-app/backend/internal/repositories"
	"github.com/nailit-app/backend/pkg/mailer"
	"github.com/nailit-app/backend/pkg/push"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error shape
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.HTTPErrorHandler = errorHandler
	log.Println("Global middleware configured.")
}

// errorHandler emits every error as {"error": string} with the right code
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if c.Response().Committed {
		return
	}
	if err := c.JSON(code, echo.Map{"error": message}); err != nil {
		log.Printf("Error writing error response: %v", err)
	}
}

// SetupRoutes configures all application routes and injects dependencies.
// jwtSecret signs tokens in the auth handler and verifies them in the
// middleware; it comes from config, never read from the environment here.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, registry *push.Registry, sender push.Sender, m mailer.Mailer, jwtSecret string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Goal{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	goalRepo := repositories.NewPostgresGoalRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	notifier := notify.New(notificationRepo, userRepo, registry, sender)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, m, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))

	authHandler.RegisterProtectedAuthRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	goalHandler := handlers.NewGoalHandler(goalRepo)
	goalHandler.RegisterGoalRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, goalRepo, userRepo)
	postHandler.RegisterPostRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifier)
	followHandler.RegisterFollowRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)

	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkRepo, postRepo, goalRepo, likeRepo, commentRepo, userRepo)
	bookmarkHandler.RegisterBookmarkRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, registry)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
