package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/coursebox/content-api/config"
	"github.com/coursebox/content-api/database"
	"github.com/coursebox/content-api/handlers"
	auth_handlers "github.com/coursebox/content-api/handlers/auth"
	course_handlers "github.com/coursebox/content-api/handlers/course"
	media_handlers "github.com/coursebox/content-api/handlers/media"
	progress_handlers "github.com/coursebox/content-api/handlers/progress"
	question_handlers "github.com/coursebox/content-api/handlers/question"
	unit_handlers "github.com/coursebox/content-api/handlers/unit"
	"github.com/coursebox/content-api/services/identity"
	"github.com/coursebox/content-api/services/storage"
	"github.com/coursebox/content-api/utils/auth"
	"github.com/coursebox/content-api/utils/cache"
	"github.com/coursebox/content-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	getEnv, err := config.Get()
	if err != nil {
		log.Fatal("Failed to read configuration")
	}

	if getEnv.AUTH_SECRET == "" {
		log.Fatal("AUTH_SECRET environment variable is not set")
	}

	issuer := getEnv.JWT_ISSUER
	if issuer == "" {
		issuer = "content-api"
	}

	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret: getEnv.AUTH_SECRET,
		Issuer: issuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis backs the brute force counters; without it logins still work
	var bruteForceProtection *middleware.BruteForceProtection
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
		} else {
			bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
		}
	}

	var googleOAuth *oauth2.Config
	if getEnv.GOOGLE_CLIENT_ID != "" && getEnv.GOOGLE_CLIENT_SECRET != "" {
		googleOAuth = &oauth2.Config{
			ClientID:     getEnv.GOOGLE_CLIENT_ID,
			ClientSecret: getEnv.GOOGLE_CLIENT_SECRET,
			RedirectURL:  getEnv.GOOGLE_REDIRECT_URL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		}
	}

	var spaces *storage.SpacesClient
	if getEnv.SPACES_ACCESS_KEY != "" && getEnv.SPACES_SECRET_KEY != "" {
		spaces, err = storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: Failed to create Spaces client: %v. Media uploads will be disabled.", err)
		}
	}

	resolver := identity.NewResolver(tokens)
	authMiddleware := middleware.NewAuthMiddleware(tokens, db)

	authHandler := auth_handlers.NewAuthHandler(db, resolver, bruteForceProtection, googleOAuth)
	courseHandler := course_handlers.NewCourseHandler(db)
	unitHandler := unit_handlers.NewUnitHandler(db)
	questionHandler := question_handlers.NewQuestionHandler(db)
	progressHandler := progress_handlers.NewProgressHandler(db)
	mediaHandler := media_handlers.NewMediaHandler(spaces)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Every request resolves its session cookie; browser navigations to
	// protected pages bounce to the login screen when anonymous
	app.Use(authMiddleware.Session())
	app.Use(authMiddleware.PageGuard("/dashboard", "/profile", "/Admin/dashboard"))

	// Health check endpoint (public)
	app.Get("/ping", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })

	api := app.Group("/api")

	// Unified login-or-register, throttled per IP when Redis is up
	if bruteForceProtection != nil {
		api.Post("/auth-unified", bruteForceProtection.CheckLockout(), authHandler.Unified)
		api.Post("/auth/admin", bruteForceProtection.CheckLockout(), authHandler.Admin)
	} else {
		api.Post("/auth-unified", authHandler.Unified)
		api.Post("/auth/admin", authHandler.Admin)
	}

	api.Post("/register", authHandler.Register)
	api.Get("/auth/me", authHandler.Me)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/signin/google", authHandler.GoogleSignIn)
	api.Get("/auth/callback/google", authHandler.GoogleCallback)

	// Courses: public reads, admin mutations
	api.Get("/courses", courseHandler.ListCourses)
	api.Get("/courses/:id", courseHandler.GetCourse)
	api.Post("/courses", authMiddleware.RequireAdmin(), courseHandler.CreateCourse)
	api.Put("/courses", authMiddleware.RequireAdmin(), courseHandler.UpdateCourse)
	api.Delete("/courses", authMiddleware.RequireAdmin(), courseHandler.DeleteCourse)

	// Units
	api.Get("/units", unitHandler.ListUnits)
	api.Get("/units/:id", unitHandler.GetUnit)
	api.Post("/units", authMiddleware.RequireAdmin(), unitHandler.CreateUnit)
	api.Put("/units", authMiddleware.RequireAdmin(), unitHandler.UpdateUnit)
	api.Delete("/units", authMiddleware.RequireAdmin(), unitHandler.DeleteUnit)

	// Questions
	api.Get("/questions", questionHandler.ListQuestions)
	api.Post("/questions", authMiddleware.RequireAdmin(), questionHandler.CreateQuestion)
	api.Put("/questions", authMiddleware.RequireAdmin(), questionHandler.UpdateQuestion)
	api.Delete("/questions", authMiddleware.RequireAdmin(), questionHandler.DeleteQuestion)

	// Progress (authenticated users)
	api.Get("/progress", authMiddleware.Required(), progressHandler.GetProgress)
	api.Post("/progress/enroll", authMiddleware.Required(), progressHandler.Enroll)
	api.Post("/progress/answer", authMiddleware.Required(), progressHandler.SubmitAnswer)

	// Media upload URLs (admin)
	api.Post("/media/upload-url", authMiddleware.RequireAdmin(), mediaHandler.CreateUploadURL)
}
