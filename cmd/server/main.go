package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/billing"
	collectionapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/collection"
	partnerapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/partner"
	reconciliationapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/reconciliation"
	returnsapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/returns"
	statementapp "github.com/dinukasrimal/APPARELAGENCY-sub005/internal/application/statement"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/domain/shared"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/cache"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/config"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/logger"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/persistence"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/rendering"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/scheduler"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/storage"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/telemetry"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/interfaces/http/handler"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/interfaces/http/middleware"
	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/dinukasrimal/APPARELAGENCY-sub005/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Agency Receivables API
//	@version		1.0
//	@description	Apparel agency receivables backend - customer credit tracking, collections, sales returns, and monthly account statements
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/dinukasrimal/APPARELAGENCY-sub005
//	@contact.email	support@apparelagency.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	AgencyAuth
//	@in							header
//	@name						X-Agency-ID
//	@description				Agency scope header. Every request operates on a single agency's ledger.

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Agency Receivables",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Bridge zap output to the OTEL collector. The bridge tees onto the
	// existing core, so console/file output is unchanged.
	logsProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logs provider", zap.Error(err))
	}
	defer func() {
		if err := logsProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logs provider", zap.Error(err))
		}
	}()
	if logsProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: logsProvider,
			Level:          logger.ParseLevel(cfg.Log.Level),
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	}

	// Initialize telemetry providers (no-op when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Database query tracing (otelgorm)
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Error("Failed to register database tracing", zap.Error(err))
		}
	}

	// Database pool and query metrics (no-op when metrics are disabled)
	if _, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log); err != nil {
		log.Error("Failed to register database metrics", zap.Error(err))
	}

	// Continuous profiling (Pyroscope)
	if cfg.Telemetry.ProfilingEnabled {
		profiler, err := telemetry.NewProfiler(
			telemetry.DefaultProfilerConfig(cfg.App.Name, cfg.Telemetry.ProfilingServerAddr), log)
		if err != nil {
			log.Error("Failed to start profiler", zap.Error(err))
		} else {
			defer func() {
				if err := profiler.Stop(); err != nil {
					log.Error("Error stopping profiler", zap.Error(err))
				}
			}()
		}
	}

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	collectionRepo := persistence.NewGormCollectionRepository(db.DB)
	returnRepo := persistence.NewGormSalesReturnRepository(db.DB)
	statementRepo := persistence.NewGormStatementRepository(db.DB)

	// Business metrics over the receivables ledger
	var receivablesMetrics *telemetry.ReceivablesMetrics
	if cfg.Telemetry.Enabled {
		receivablesMetrics, err = telemetry.NewReceivablesMetrics(telemetry.ReceivablesMetricsConfig{
			Meter:               meterProvider.Meter("receivables"),
			Logger:              log,
			ReceivablesProvider: telemetry.NewGormReceivablesMetricsProvider(db.DB),
		})
		if err != nil {
			log.Fatal("Failed to initialize receivables metrics", zap.Error(err))
		}
		metricsCtx, cancelMetrics := context.WithCancel(context.Background())
		defer cancelMetrics()
		receivablesMetrics.StartPeriodicCollection(metricsCtx, telemetry.NewGormAgencyProvider(db.DB), 0)
	}

	// Idempotency store for collection submissions. Redis is tried first;
	// outside production a missing Redis falls back to an in-memory store.
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize application services
	customerService := partnerapp.NewCustomerService(customerRepo)
	customerService.SetInvoiceRepo(invoiceRepo)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, customerRepo)
	collectionService := collectionapp.NewCollectionService(
		collectionRepo, customerRepo, invoiceRepo,
		collectionapp.WithIdempotencyStore(idempotencyStore, shared.DefaultIdempotencyConfig()),
		collectionapp.WithMetrics(receivablesMetrics),
		collectionapp.WithLogger(log),
	)
	returnService := returnsapp.NewReturnService(returnRepo, customerRepo, invoiceRepo)
	summaryService := reconciliationapp.NewSummaryService(
		customerRepo, invoiceRepo, collectionRepo, returnRepo,
		reconciliationapp.WithMetrics(receivablesMetrics),
		reconciliationapp.WithLogger(log),
	)

	// Statement generation stack: HTML template -> headless Chrome -> object store.
	// Only assembled when statements are enabled, since the renderer holds a
	// browser process open.
	var statementService *statementapp.StatementService
	if cfg.Statement.Enabled {
		pdfRenderer, err := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
			DefaultTimeout: cfg.Statement.RenderTimeout,
			RemoteURL:      cfg.Statement.ChromeRemoteURL,
			Headless:       true,
			DisableGPU:     true,
			NoSandbox:      true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			if err := pdfRenderer.Close(); err != nil {
				log.Error("Error closing PDF renderer", zap.Error(err))
			}
		}()

		var statementStorage statementapp.ObjectStorageService
		if cfg.Storage.Bucket != "" {
			s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
				storage.WithLogger(log),
				storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
			)
			if err != nil {
				log.Fatal("Failed to initialize object storage", zap.Error(err))
			}
			if err := s3Storage.EnsureBucket(context.Background()); err != nil {
				log.Fatal("Failed to ensure statement bucket",
					zap.String("bucket", s3Storage.GetBucket()),
					zap.Error(err),
				)
			}
			statementStorage = s3Storage
		} else {
			log.Warn("No storage bucket configured, archiving statements in memory")
			statementStorage = storage.NewMemoryObjectStorage()
		}

		statementService = statementapp.NewStatementService(
			statementRepo, customerRepo, summaryService,
			rendering.NewTemplateEngine(), pdfRenderer, statementStorage,
			statementapp.WithConfig(statementapp.StatementServiceConfig{
				AgencyName:        cfg.Statement.AgencyName,
				RenderTimeout:     cfg.Statement.RenderTimeout,
				DownloadURLExpiry: cfg.Storage.PresignExpiration,
			}),
			statementapp.WithMetrics(receivablesMetrics),
			statementapp.WithLogger(log),
		)
		log.Info("Statement generation enabled",
			zap.String("agency_name", cfg.Statement.AgencyName),
			zap.Duration("render_timeout", cfg.Statement.RenderTimeout),
		)
	}

	// Monthly statement run: fires on the configured day for every active
	// agency with statements cut off at the end of the previous month.
	// Config validation guarantees statements are enabled when this is.
	if cfg.Scheduler.Enabled {
		runExecutor := statementapp.NewStatementRunExecutor(customerRepo, statementService,
			statementapp.WithRunLogger(log))
		statementScheduler := scheduler.NewScheduler(scheduler.SchedulerConfig{
			Enabled:           cfg.Scheduler.Enabled,
			MaxConcurrentJobs: cfg.Scheduler.MaxConcurrentJobs,
			JobTimeout:        cfg.Scheduler.JobTimeout,
			RetryAttempts:     cfg.Scheduler.RetryAttempts,
			RetryDelay:        cfg.Scheduler.RetryDelay,
		}, runExecutor, log)
		if err := statementScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start statement scheduler", zap.Error(err))
		}
		defer func() {
			if err := statementScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping statement scheduler", zap.Error(err))
			}
		}()

		cronTrigger := scheduler.NewCronTrigger(scheduler.CronTriggerConfig{
			RunDayOfMonth: cfg.Scheduler.RunDayOfMonth,
			RunHour:       cfg.Scheduler.RunHour,
			RunMinute:     cfg.Scheduler.RunMinute,
			CheckInterval: time.Minute,
		}, statementScheduler, telemetry.NewGormAgencyProvider(db.DB), log)
		if err := cronTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start statement run trigger", zap.Error(err))
		}
		defer func() {
			if err := cronTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping statement run trigger", zap.Error(err))
			}
		}()

		log.Info("Statement scheduler started",
			zap.Int("run_day_of_month", cfg.Scheduler.RunDayOfMonth),
			zap.Int("run_hour", cfg.Scheduler.RunHour),
			zap.Int("max_concurrent_jobs", cfg.Scheduler.MaxConcurrentJobs),
		)
	}

	// Initialize HTTP handlers
	customerHandler := handler.NewCustomerHandler(customerService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	collectionHandler := handler.NewCollectionHandler(collectionService)
	salesReturnHandler := handler.NewSalesReturnHandler(returnService)
	summaryHandler := handler.NewSummaryHandler(summaryService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Open a span per request
	// 4. Logger - Log requests
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. Metrics - Record request metrics
	// 9. Profiling - Label profiles by endpoint (if enabled)
	// 10. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// HTTP request metrics
	engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("http.server"), cfg.Telemetry.Enabled))

	// Profiling labels (if enabled)
	if cfg.Telemetry.ProfilingEnabled {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint, IP-restricted via config
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply agency scope middleware to API routes. Every receivables route
	// operates on one agency's ledger; only the ping/info endpoints are open.
	agencyConfig := middleware.AgencyMiddlewareConfig{
		HeaderName: middleware.AgencyHeaderKey,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Required: true,
		Logger:   log,
	}
	if cfg.App.Env != "production" {
		agencyConfig.DefaultAgencyID = cfg.App.DefaultAgencyID
	}
	r.Use(middleware.AgencyMiddlewareWithConfig(agencyConfig))

	// Partner domain (customers)
	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "partner service ready"})
	})
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/stats/by-status", customerHandler.CountByStatus)
	partnerRoutes.GET("/customers/code/:code", customerHandler.GetByCode)
	partnerRoutes.GET("/customers/route/:route", customerHandler.ListByRoute)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.DELETE("/customers/:id", customerHandler.Delete)
	partnerRoutes.POST("/customers/:id/activate", customerHandler.Activate)
	partnerRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)

	// Billing domain (invoices)
	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "billing service ready"})
	})
	billingRoutes.POST("/invoices", invoiceHandler.Create)
	billingRoutes.GET("/invoices", invoiceHandler.List)
	billingRoutes.GET("/invoices/number/:number", invoiceHandler.GetByNumber)
	billingRoutes.GET("/invoices/:id", invoiceHandler.GetByID)
	billingRoutes.GET("/customers/:customer_id/invoices", invoiceHandler.ListByCustomer)

	// Collection domain (payments, allocations, cheque lifecycle)
	collectionRoutes := router.NewDomainGroup("collections", "/collections")
	collectionRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "collections service ready"})
	})
	collectionRoutes.POST("", collectionHandler.Record)
	collectionRoutes.GET("", collectionHandler.List)
	collectionRoutes.GET("/number/:number", collectionHandler.GetByNumber)
	collectionRoutes.GET("/customers/:customer_id", collectionHandler.ListByCustomer)
	collectionRoutes.GET("/:id", collectionHandler.GetByID)
	collectionRoutes.POST("/:id/allocations", collectionHandler.Allocate)
	collectionRoutes.POST("/:id/auto-allocate", collectionHandler.AutoAllocate)
	collectionRoutes.POST("/:id/cheques/:cheque_id/clear", collectionHandler.ClearCheque)
	collectionRoutes.POST("/:id/cheques/:cheque_id/return", collectionHandler.ReturnCheque)

	// Returns domain (sales returns)
	returnsRoutes := router.NewDomainGroup("returns", "/returns")
	returnsRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "returns service ready"})
	})
	returnsRoutes.POST("", salesReturnHandler.Create)
	returnsRoutes.GET("", salesReturnHandler.List)
	returnsRoutes.GET("/number/:number", salesReturnHandler.GetByNumber)
	returnsRoutes.GET("/customers/:customer_id", salesReturnHandler.ListByCustomer)
	returnsRoutes.GET("/:id", salesReturnHandler.GetByID)
	returnsRoutes.POST("/:id/approve", salesReturnHandler.Approve)
	returnsRoutes.POST("/:id/reject", salesReturnHandler.Reject)
	returnsRoutes.POST("/:id/process", salesReturnHandler.Process)

	// Reconciliation domain (receivable summaries)
	reconciliationRoutes := router.NewDomainGroup("reconciliation", "/reconciliation")
	reconciliationRoutes.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "reconciliation service ready"})
	})
	reconciliationRoutes.GET("/customers/:customer_id/summary", summaryHandler.GetCustomerSummary)

	// Register all domain groups
	r.Register(partnerRoutes).
		Register(billingRoutes).
		Register(collectionRoutes).
		Register(returnsRoutes).
		Register(reconciliationRoutes)

	// Statement domain (account statement generation and download)
	if cfg.Statement.Enabled {
		statementHandler := handler.NewStatementHandler(statementService)
		statementRoutes := router.NewDomainGroup("statements", "/statements")
		statementRoutes.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "statements service ready"})
		})
		// Generation is rate limited separately because each request holds a
		// Chrome tab for the duration of the render
		if cfg.HTTP.StatementRateLimitEnabled {
			statementLimiter := middleware.NewRateLimiter(
				cfg.HTTP.StatementRateLimitRequests, cfg.HTTP.StatementRateLimitWindow)
			statementRoutes.POST("/customers/:customer_id",
				middleware.StatementRateLimit(statementLimiter), statementHandler.Generate)
			log.Info("Statement rate limiting enabled",
				zap.Int("requests", cfg.HTTP.StatementRateLimitRequests),
				zap.Duration("window", cfg.HTTP.StatementRateLimitWindow),
			)
		} else {
			statementRoutes.POST("/customers/:customer_id", statementHandler.Generate)
		}
		statementRoutes.GET("", statementHandler.List)
		statementRoutes.GET("/customers/:customer_id", statementHandler.ListByCustomer)
		statementRoutes.GET("/:id", statementHandler.GetByID)
		statementRoutes.GET("/:id/download", statementHandler.GetDownloadURL)
		r.Register(statementRoutes)
	}

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
