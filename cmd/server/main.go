package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	crmapp "github.com/OpianKyle/opianrer-sub001/internal/application/crm"
	financeapp "github.com/OpianKyle/opianrer-sub001/internal/application/finance"
	identityapp "github.com/OpianKyle/opianrer-sub001/internal/application/identity"
	kanbanapp "github.com/OpianKyle/opianrer-sub001/internal/application/kanban"
	"github.com/OpianKyle/opianrer-sub001/internal/application/notification"
	schedulingapp "github.com/OpianKyle/opianrer-sub001/internal/application/scheduling"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/auth"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/config"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/email"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/logger"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/persistence"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/printing"
	"github.com/OpianKyle/opianrer-sub001/internal/infrastructure/storage"
	"github.com/OpianKyle/opianrer-sub001/internal/interfaces/http/handler"
	"github.com/OpianKyle/opianrer-sub001/internal/interfaces/http/middleware"
	"github.com/OpianKyle/opianrer-sub001/internal/interfaces/http/router"
	"github.com/OpianKyle/opianrer-sub001/internal/interfaces/ws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.App.Env != "production" {
		// Production schemas are managed by cmd/migrate
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
	}

	// Token blacklist: Redis when reachable, otherwise in-memory.
	// The in-memory fallback loses revocations on restart, which is
	// acceptable for development.
	var blacklist auth.TokenBlacklist
	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	redisBlacklist, err := auth.NewRedisTokenBlacklist(redisAddr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected", zap.String("addr", redisAddr))
	}

	// Object storage for client documents
	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to configure object storage", zap.Error(err))
	}
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := objectStorage.EnsureBucket(ctx); err != nil {
			log.Warn("Object storage bucket not ready, uploads will fail until it is",
				zap.String("bucket", cfg.Storage.Bucket),
				zap.Error(err))
		}
		cancel()
	}

	// PDF rendering and mail for quotation delivery
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		NoSandbox: true,
		Logger:    log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	mailer := email.NewSMTPMailer(cfg.SMTP, log)

	// Presence hub doubles as the live notification publisher
	hub := ws.NewHub(cfg.Presence, log)
	defer hub.Close()
	notifier := notification.NewService(hub, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	appointmentRepo := persistence.NewGormAppointmentRepository(db.DB)
	boardRepo := persistence.NewGormBoardRepository(db.DB)
	columnRepo := persistence.NewGormColumnRepository(db.DB)
	cardRepo := persistence.NewGormCardRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	rateRepo := persistence.NewGormInterestRateRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo)
	clientService := crmapp.NewClientService(clientRepo)
	documentService := crmapp.NewDocumentService(documentRepo, clientRepo, objectStorage, log)
	availabilityService := schedulingapp.NewAvailabilityService(appointmentRepo)
	appointmentService := schedulingapp.NewAppointmentService(appointmentRepo, availabilityService, notifier, log)
	bookingService := schedulingapp.NewBookingService(appointmentRepo, availabilityService, notifier, log)
	boardService := kanbanapp.NewBoardService(boardRepo, columnRepo, cardRepo, taskRepo, notifier, log)
	quotationService := financeapp.NewQuotationService(quotationRepo, rateRepo, clientRepo, renderer, mailer, notifier, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/themes",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/ws",
		},
		Logger: log,
	}))

	// Presence websocket; it authenticates the token itself since
	// browsers cannot set headers on websocket dials
	engine.GET("/ws", gin.WrapH(ws.NewHandler(hub, jwtService, log)))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewThemeHandler()).
		Register(handler.NewAuthHandler(authService, cfg.Cookie)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewDocumentHandler(documentService)).
		Register(handler.NewAppointmentHandler(appointmentService, availabilityService)).
		Register(handler.NewBookingHandler(bookingService)).
		Register(handler.NewKanbanHandler(boardService)).
		Register(handler.NewQuotationHandler(quotationService)).
		Register(handler.NewNotificationHandler(notifier))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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
