package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rishisameer/portfolio-contact-api/config"
	"github.com/rishisameer/portfolio-contact-api/internal/handlers"
	"github.com/rishisameer/portfolio-contact-api/internal/middleware"
	"github.com/rishisameer/portfolio-contact-api/internal/ratelimit"
	"github.com/rishisameer/portfolio-contact-api/internal/services"
	"github.com/rishisameer/portfolio-contact-api/pkg/captcha"
	"github.com/rishisameer/portfolio-contact-api/pkg/httpclient"
	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/rishisameer/portfolio-contact-api/pkg/metrics"
	"github.com/rishisameer/portfolio-contact-api/pkg/profiling"
	"github.com/rishisameer/portfolio-contact-api/pkg/resend"
	"github.com/rishisameer/portfolio-contact-api/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting portfolio contact API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.Bool("email_configured", cfg.EmailConfigured()),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize the email provider client. When no API key is configured
	// the dispatcher simulates sends, so the client stays nil.
	var emailClient services.EmailClient
	if cfg.EmailConfigured() {
		emailClient = resend.NewClient(cfg.Contact.ResendAPIKey, httpclient.NewStandardClient())
	} else {
		logger.Warn("RESEND_API_KEY not set - running in development mode, emails will be simulated")
	}

	// Initialize services
	dispatcher := services.NewEmailDispatcher(cfg, emailClient)
	contactService := services.NewContactService(cfg, dispatcher)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(contactService)
	captchaHandler := handlers.NewCaptchaHandler(captcha.NewGenerator())
	healthHandler := handlers.NewHealthHandler(cfg.EmailConfigured)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - SECURITY: Only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://127.0.0.1:5173")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:              allowedOrigins,
		AllowMethods:              []string{"POST", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:             []string{"Content-Length"},
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	// Wrong method on a known route must answer 405 with the fixed message
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})

	// SECURITY: Rate limiters to prevent abuse and DoS attacks
	generalRateLimiter := middleware.NewRateLimiter(10, 20) // 10 req/sec, burst of 20

	// Fixed-window submission limiter with an injectable store so multi-
	// instance deployments can swap in a shared counter
	submissionLimiter := ratelimit.NewLimiter(
		ratelimit.NewCacheStore(),
		cfg.RateLimit.Window,
		cfg.RateLimit.MaxRequests,
	)
	submissionLimit := middleware.SubmissionLimitMiddleware(submissionLimiter)
	bodyLimit := middleware.BodySizeLimitMiddleware(100 * 1024)

	// API routes
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	// Un-versioned contact route kept for existing clients
	api.POST("/contact", submissionLimit, bodyLimit, contactHandler.SubmitContact)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.POST("/contact", submissionLimit, bodyLimit, contactHandler.SubmitContact)
	v1.GET("/captcha", generalRateLimiter.Middleware(), captchaHandler.IssueChallenge)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // SECURITY: 1 MB max header size
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
