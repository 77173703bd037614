package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"pharmamart/internal/caching"
	"pharmamart/internal/handlers"
	"pharmamart/internal/jobs/background"
	"pharmamart/internal/middleware"
	"pharmamart/internal/models"
	"pharmamart/internal/repositories"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
	"pharmamart/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}
	pool, err := database.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; sessions will not survive restarts")
	}

	redisAddr := envOr("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, convErr := strconv.Atoi(dbStr); convErr == nil {
			redisDB = db
		}
	}
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	storageSvc, err := services.NewMinioStorageService(
		envOr("MINIO_ENDPOINT", "localhost:9000"),
		envOr("MINIO_ACCESS_KEY", "minioadmin"),
		envOr("MINIO_SECRET_KEY", "minioadmin"),
		os.Getenv("MINIO_USE_SSL") == "true",
	)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(ctx, services.ProfilePictureBucket); err != nil {
		log.Printf("WARN: ensuring profile picture bucket: %v", err)
	}

	// Repositories
	countryRepo := repositories.NewCountryRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)
	itemStatusRepo := repositories.NewItemStatusRepository(pool)
	pharmacyRepo := repositories.NewPharmacyRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)
	userRepo := repositories.NewUserRepository(pool)
	auditLogsRepo := repositories.NewAuditLogsRepository(pool)

	// Services
	identitySvc := services.NewIdentityService(userRepo, cacheSvc, jwtSecret)
	countrySvc := services.NewCountryService(countryRepo, cacheSvc)
	locationSvc := services.NewLocationService(locationRepo, countryRepo)
	itemStatusSvc := services.NewItemStatusService(itemStatusRepo, cacheSvc)
	pharmacySvc := services.NewPharmacyService(pharmacyRepo, locationRepo, identitySvc)
	itemSvc := services.NewItemService(itemRepo, itemStatusRepo, pharmacyRepo)
	auditSvc := services.NewAuditLogsService(auditLogsRepo)

	renderer, err := views.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Handlers
	homeHandlers := handlers.NewHomeHandlers()
	accountHandlers := handlers.NewAccountHandlers(identitySvc, storageSvc, auditSvc, renderer)
	countryHandlers := handlers.NewCountryHandlers(countrySvc, auditSvc, renderer)
	locationHandlers := handlers.NewLocationHandlers(locationSvc, countrySvc, auditSvc, renderer)
	itemStatusHandlers := handlers.NewItemStatusHandlers(itemStatusSvc, auditSvc, renderer)
	pharmacyHandlers := handlers.NewPharmacyHandlers(pharmacySvc, locationSvc, auditSvc, renderer)
	itemHandlers := handlers.NewItemHandlers(itemSvc, itemStatusSvc, pharmacySvc, auditSvc, renderer)
	auditHandlers := handlers.NewAuditLogsHandlers(auditSvc, renderer)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.CORS())
	e.Static("/static", "static")

	// Health probes stay outside authentication.
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)

	csrf := echoMiddleware.CSRFWithConfig(echoMiddleware.CSRFConfig{
		TokenLookup:    "form:_csrf,header:X-CSRF-Token",
		CookieName:     "pharmamart_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSameSite: http.SameSiteLaxMode,
	})

	session := middleware.SessionMiddleware(identitySvc)
	optionalSession := middleware.OptionalSession(identitySvc)
	audit := middleware.NewAuditMiddleware(auditSvc).AuditRequest()

	// Account routes: login/register/reset are public, the rest need a session.
	account := e.Group("/Account", csrf)
	account.GET("/Login", accountHandlers.LoginPage)
	account.POST("/Login", accountHandlers.Login)
	account.GET("/Register", accountHandlers.RegisterPage)
	account.POST("/Register", accountHandlers.Register)
	account.GET("/VerifyEmail", accountHandlers.VerifyEmailPage)
	account.POST("/VerifyEmail", accountHandlers.VerifyEmail)
	account.GET("/ChangePassword", accountHandlers.ChangePasswordPage, optionalSession)
	account.POST("/ChangePassword", accountHandlers.ChangePassword, optionalSession)
	account.POST("/Logout", accountHandlers.Logout, session)
	account.GET("/Profile", accountHandlers.ProfilePage, session)
	account.POST("/ProfilePicture", accountHandlers.ProfilePicture, session)

	e.GET("/", homeHandlers.Index, csrf, session)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	adminOrSuper := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	countries := e.Group("/Countries", csrf, session, adminOnly, audit)
	countries.GET("", countryHandlers.Index)
	countries.POST("/GetCountries", countryHandlers.GetCountries)
	countries.GET("/AddOrEdit", countryHandlers.AddOrEditForm)
	countries.GET("/AddOrEdit/:id", countryHandlers.AddOrEditForm)
	countries.POST("/AddOrEdit", countryHandlers.AddOrEdit)
	countries.POST("/AddOrEdit/:id", countryHandlers.AddOrEdit)
	countries.POST("/Delete", countryHandlers.Delete)
	countries.POST("/Delete/:id", countryHandlers.Delete)

	locations := e.Group("/Location", csrf, session, adminOnly, audit)
	locations.GET("", locationHandlers.Index)
	locations.POST("/GetLocations", locationHandlers.GetLocations)
	locations.GET("/AddOrEdit", locationHandlers.AddOrEditForm)
	locations.GET("/AddOrEdit/:id", locationHandlers.AddOrEditForm)
	locations.POST("/AddOrEdit", locationHandlers.AddOrEdit)
	locations.POST("/AddOrEdit/:id", locationHandlers.AddOrEdit)
	locations.POST("/Delete", locationHandlers.Delete)
	locations.POST("/Delete/:id", locationHandlers.Delete)

	itemStatuses := e.Group("/ItemStatuses", csrf, session, adminOrSuper, audit)
	itemStatuses.GET("", itemStatusHandlers.Index)
	itemStatuses.POST("/GetItemStatuses", itemStatusHandlers.GetItemStatuses)
	itemStatuses.GET("/AddOrEdit", itemStatusHandlers.AddOrEditForm)
	itemStatuses.GET("/AddOrEdit/:id", itemStatusHandlers.AddOrEditForm)
	itemStatuses.POST("/AddOrEdit", itemStatusHandlers.AddOrEdit)
	itemStatuses.POST("/AddOrEdit/:id", itemStatusHandlers.AddOrEdit)
	itemStatuses.POST("/Delete", itemStatusHandlers.Delete)
	itemStatuses.POST("/Delete/:id", itemStatusHandlers.Delete)

	pharmacies := e.Group("/Pharmacies", csrf, session, adminOnly, audit)
	pharmacies.GET("", pharmacyHandlers.Index)
	pharmacies.POST("/GetPharmacies", pharmacyHandlers.GetPharmacies)
	pharmacies.GET("/AddOrEdit", pharmacyHandlers.AddOrEditForm)
	pharmacies.GET("/AddOrEdit/:id", pharmacyHandlers.AddOrEditForm)
	pharmacies.POST("/AddOrEdit", pharmacyHandlers.AddOrEdit)
	pharmacies.POST("/AddOrEdit/:id", pharmacyHandlers.AddOrEdit)
	pharmacies.POST("/Delete", pharmacyHandlers.Delete)
	pharmacies.POST("/Delete/:id", pharmacyHandlers.Delete)

	items := e.Group("/Items", csrf, session, adminOrSuper, audit)
	items.GET("", itemHandlers.Index)
	items.POST("/GetAllItems", itemHandlers.GetAllItems)
	items.GET("/AddOrEdit", itemHandlers.AddOrEditForm)
	items.GET("/AddOrEdit/:id", itemHandlers.AddOrEditForm)
	items.POST("/AddOrEdit", itemHandlers.AddOrEdit)
	items.POST("/AddOrEdit/:id", itemHandlers.AddOrEdit)
	items.POST("/Delete", itemHandlers.Delete)
	items.POST("/Delete/:id", itemHandlers.Delete)

	auditGroup := e.Group("/Audit", csrf, session, superOnly)
	auditGroup.GET("", auditHandlers.Index)
	auditGroup.POST("/GetAuditLogs", auditHandlers.GetAuditLogs)

	scheduler, err := background.NewJobScheduler(cacheSvc, countryRepo, itemStatusRepo, itemRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("ERROR: stopping job scheduler: %v", err)
		}
	}()

	port := envOr("PORT", "8080")
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
