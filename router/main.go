package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/b-shhhh/university-finder-ai/database"
	"github.com/b-shhhh/university-finder-ai/handlers"
	admin_handlers "github.com/b-shhhh/university-finder-ai/handlers/admin"
	auth_handlers "github.com/b-shhhh/university-finder-ai/handlers/auth"
	course_handlers "github.com/b-shhhh/university-finder-ai/handlers/course"
	recommendation_handlers "github.com/b-shhhh/university-finder-ai/handlers/recommendation"
	saved_handlers "github.com/b-shhhh/university-finder-ai/handlers/saved"
	university_handlers "github.com/b-shhhh/university-finder-ai/handlers/university"
	"github.com/b-shhhh/university-finder-ai/services"
	"github.com/b-shhhh/university-finder-ai/utils/auth"
	"github.com/b-shhhh/university-finder-ai/utils/cache"
	"github.com/b-shhhh/university-finder-ai/utils/middleware"
)

// SetupRoutes wires services, middleware and handlers onto the app.
func SetupRoutes(app *fiber.App, store database.Storage, production bool) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "university-finder-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis is optional; without it login brute force protection is off.
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	identityService := services.NewIdentityService(db)
	universityService := services.NewUniversityService(db, identityService)
	savedService := services.NewSavedService(db, identityService)
	recommendationService := services.NewRecommendationService(universityService)
	emailService := services.NewEmailService()
	resetService := services.NewPasswordResetService(db, emailService, production)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, resetService, bruteForceProtection)
	universityHandler := university_handlers.NewUniversityHandler(universityService)
	courseHandler := course_handlers.NewCourseHandler(universityService)
	savedHandler := saved_handlers.NewSavedHandler(savedService)
	recommendationHandler := recommendation_handlers.NewRecommendationHandler(recommendationService)
	adminUniversityHandler := admin_handlers.NewUniversityAdminHandler(db, identityService)
	adminUserHandler := admin_handlers.NewUserAdminHandler(db)
	healthHandler := handlers.NewHealthHandler(store)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	api := app.Group("/api/v1")

	// Health check (public)
	api.Get("/health", healthHandler.Check)

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)
	authGroup.Get("/whoami", authMiddleware.Required(), authHandler.WhoAmI)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Put("/", authHandler.UpdateProfile)

	// Public university catalog
	universities := api.Group("/universities")
	universities.Get("/", universityHandler.ListUniversities)
	universities.Get("/countries", universityHandler.GetCountries)
	universities.Get("/country/:country", universityHandler.GetByCountry)
	universities.Get("/:id", universityHandler.GetUniversityDetail)

	// Public course catalog
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:name", courseHandler.GetCourse)

	// Saved universities (protected)
	savedGroup := api.Group("/saved", authMiddleware.Required())
	savedGroup.Get("/", savedHandler.ListSaved)
	savedGroup.Post("/", savedHandler.SaveUniversity)
	savedGroup.Delete("/:universityId", savedHandler.RemoveUniversity)

	// Recommendations (protected)
	api.Get("/recommendations", authMiddleware.Required(), recommendationHandler.GetRecommendations)

	// Admin panel
	admin := api.Group("/admin", authMiddleware.RequireAdmin())
	admin.Get("/stats", adminUserHandler.GetStats)

	admin.Get("/users", adminUserHandler.ListUsers)
	admin.Get("/users/:id", adminUserHandler.GetUser)
	admin.Put("/users/:id", adminUserHandler.UpdateUser)
	admin.Delete("/users/:id", adminUserHandler.DeleteUser)

	admin.Get("/universities", adminUniversityHandler.ListUniversities)
	admin.Post("/universities", adminUniversityHandler.CreateUniversity)
	admin.Get("/universities/:id", adminUniversityHandler.GetUniversity)
	admin.Put("/universities/:id", adminUniversityHandler.UpdateUniversity)
	admin.Delete("/universities/:id", adminUniversityHandler.DeleteUniversity)
}
