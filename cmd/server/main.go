package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/travelgo/tour-booking-backend/internal/config"
	"github.com/travelgo/tour-booking-backend/internal/database"
	"github.com/travelgo/tour-booking-backend/internal/handlers"
	"github.com/travelgo/tour-booking-backend/internal/middleware"
	"github.com/travelgo/tour-booking-backend/internal/services"
	"github.com/travelgo/tour-booking-backend/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting TravelGo Tour Booking Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize repositories
	bookingRepository := database.NewBookingRepository(db)
	tourRepository := database.NewTourRepository(db)
	userRepository := database.NewUserRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	bookingService := services.NewBookingService(bookingRepository, tourRepository, userRepository, logger)
	tourService := services.NewTourService(tourRepository, logger)
	authService := services.NewAuthService(userRepository, jwtService, cfg.Security.BcryptCost, logger)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	tourHandler := handlers.NewTourHandler(tourService, logger)
	authHandler := handlers.NewAuthHandler(authService, logger)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", healthCheckHandler(db))

	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Tour catalog: reads are public, writes are administrative
		tourRoutes := v1.Group("/tours")
		{
			tourRoutes.GET("", tourHandler.ListTours)
			tourRoutes.GET("/available", tourHandler.ListAvailableTours)
			tourRoutes.GET("/search", tourHandler.SearchTours)
			tourRoutes.GET("/:id", tourHandler.GetTour)

			tourAdmin := tourRoutes.Group("")
			tourAdmin.Use(middleware.AuthMiddleware(jwtService), middleware.RequireAdmin())
			{
				tourAdmin.POST("", tourHandler.CreateTour)
				tourAdmin.PUT("/:id", tourHandler.UpdateTour)
				tourAdmin.DELETE("/:id", tourHandler.DeleteTour)
			}
		}

		// Bookings: everything requires authentication
		bookingRoutes := v1.Group("/bookings")
		bookingRoutes.Use(middleware.AuthMiddleware(jwtService))
		{
			bookingRoutes.GET("/my-bookings", bookingHandler.GetMyBookings)
			bookingRoutes.POST("", bookingHandler.CreateBooking)
			bookingRoutes.GET("/:bookingId", bookingHandler.GetBookingDetails)
			bookingRoutes.DELETE("/:bookingId", bookingHandler.CancelBooking)

			bookingAdmin := bookingRoutes.Group("")
			bookingAdmin.Use(middleware.RequireAdmin())
			{
				bookingAdmin.GET("", bookingHandler.GetAllBookings)
				bookingAdmin.PATCH("/:bookingId/confirm", bookingHandler.ConfirmBooking)
				bookingAdmin.GET("/tour/:tourId", bookingHandler.GetTourBookings)
				bookingAdmin.GET("/tour/:tourId/revenue", bookingHandler.GetTourRevenue)
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
