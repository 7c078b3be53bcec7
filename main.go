package main

import (
	"fmt"
	"log"
	"os"

	"dealflow/handler"
	"dealflow/middleware"
	"dealflow/repository"
	"dealflow/services"
	"dealflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"SESSION_DURATION",
		"REDIS_URL",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func initRedis() {
	redisURL := os.Getenv("REDIS_URL")

	blacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Fatalf("Failed to initialize token blacklist: %v", err)
	}
	services.TokenBlacklist = blacklist

	cache, err := services.NewSessionCache(redisURL)
	if err != nil {
		log.Fatalf("Failed to initialize session cache: %v", err)
	}
	services.GlobalSessionCache = cache
	cache.StartCleanupTask()
}

func setupRouter() *gin.Engine {
	router := gin.New()

	sessionRepo := repository.GetSessionRepo(utils.MongoClient)

	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestSizeLimiter(int64(utils.GetEnvAsInt("MAX_REQUEST_SIZE", 10<<20))))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/health", handler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/change-email", handler.ChangeEmailHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.POST("/logout", handler.LogoutHandler)
			user.DELETE("/delete", handler.DeleteUserHandler)

			twofa := user.Group("/2fa")
			{
				twofa.POST("/generate", handler.Generate2FASecretHandler)
				twofa.POST("/enable", handler.Enable2FAHandler)
				twofa.POST("/verify", handler.Verify2FAHandler)
				twofa.POST("/disable", handler.Disable2FAHandler)
				twofa.POST("/recovery", handler.UseRecoveryCodeHandler)
			}
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		leads := protected.Group("/leads")
		{
			leads.GET("/", handler.SearchLeadsHandler)
			leads.POST("/", handler.CreateLeadHandler)
			leads.GET("/:id", handler.GetLeadHandler)
			leads.PUT("/:id", handler.UpdateLeadHandler)
			leads.DELETE("/:id", handler.DeleteLeadHandler)
			leads.PUT("/:id/status", handler.ChangeLeadStatusHandler)
			leads.POST("/:id/follow-up", handler.ScheduleFollowUpHandler)
			leads.POST("/:id/convert", handler.ConvertLeadHandler)
		}

		deals := protected.Group("/deals")
		{
			deals.GET("/", handler.GetDealBoardHandler)
			deals.POST("/", handler.CreateDealHandler)
			deals.GET("/:id", handler.GetDealHandler)
			deals.PUT("/:id", handler.UpdateDealHandler)
			deals.DELETE("/:id", handler.DeleteDealHandler)
			deals.PUT("/:id/stage", handler.MoveDealStageHandler)
			deals.PUT("/:id/closing", handler.SetClosingStepHandler)
			deals.PUT("/:id/client-file", handler.SetClientFileHandler)
			deals.POST("/:id/revert", handler.RevertDealHandler)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("/", handler.ListTasksHandler)
			tasks.POST("/", handler.CreateTaskHandler)
			tasks.PUT("/:id", handler.UpdateTaskHandler)
			tasks.DELETE("/:id", handler.DeleteTaskHandler)
			tasks.POST("/:id/toggle", handler.ToggleTaskHandler)
		}

		contacts := protected.Group("/contacts")
		{
			contacts.GET("/", handler.SearchContactsHandler)
			contacts.POST("/", handler.CreateContactHandler)
			contacts.PUT("/:id", handler.UpdateContactHandler)
			contacts.DELETE("/:id", handler.DeleteContactHandler)
			contacts.POST("/:id/convert", handler.ConvertContactHandler)
		}

		shipments := protected.Group("/shipments")
		{
			shipments.GET("/", handler.ListShipmentsHandler)
			shipments.POST("/", handler.CreateShipmentHandler)
			shipments.PUT("/:id", handler.UpdateShipmentHandler)
			shipments.DELETE("/:id", handler.DeleteShipmentHandler)
		}

		protected.GET("/dashboard", handler.GetDashboardHandler)
	}

	return router
}

func main() {
	initRedis()

	db := utils.MongoClient.Database(os.Getenv("MONGO_DB"))
	if err := repository.SetupIndexes(db); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
