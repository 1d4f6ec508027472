package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/solacehealth/solace/internal/auth"
	"github.com/solacehealth/solace/internal/config"
	"github.com/solacehealth/solace/internal/health"
	"github.com/solacehealth/solace/internal/pipeline"
	"github.com/solacehealth/solace/internal/respond"
	"github.com/solacehealth/solace/internal/safety"
	"github.com/solacehealth/solace/internal/session"
	"github.com/solacehealth/solace/internal/speech"
)

// AppState holds all application services
type AppState struct {
	Logger       *zap.Logger
	AuthService  *auth.Service
	SessionStore *session.Store
	Sessions     *session.Service
	HealthTrack  *health.Tracker
	Pipeline     *pipeline.Orchestrator

	startedAt time.Time
}

func main() {
	config.Load()

	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	as := newAppState(logger)

	// The sweeper is tied to the store's lifetime and cancelled on shutdown
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go as.SessionStore.RunSweeper(sweepCtx, config.Session().SweepInterval())

	router := setupRouter(as)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	done := setupSignalHandler(server, stopSweeper, logger)

	logger.Info("Starting Solace server", zap.String("address", addr))

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) *AppState {
	sessionStore := session.NewStore(config.Session().ExpiryWindow(), logger)
	sessions := session.NewService(sessionStore, logger)

	authService := auth.NewService(
		config.Auth().JWTSecret,
		config.Auth().TokenTTL(),
		auth.NewUserStore(),
		logger,
	)

	tracker := health.NewTracker(config.Health().DeviationBand, logger)

	orchestrator := pipeline.NewOrchestrator(
		sessions,
		safety.NewKeywordClassifier(),
		respond.NewTemplateGenerator(),
		speech.NewMockTranscriber(),
		speech.NewMockSynthesizer(),
		config.Pipeline().StageTimeout(),
		logger,
	)

	return &AppState{
		Logger:       logger,
		AuthService:  authService,
		SessionStore: sessionStore,
		Sessions:     sessions,
		HealthTrack:  tracker,
		Pipeline:     orchestrator,
		startedAt:    time.Now(),
	}
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var cfg zap.Config
	if logConfig.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch logConfig.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

// RequestLoggingMiddleware logs every request with its outcome
func RequestLoggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("Request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

func setupRouter(as *AppState) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(cors.Default())
	router.Use(RequestLoggingMiddleware(as.Logger))
	router.Use(gin.Recovery())

	// Liveness endpoint, no auth
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"uptime":    time.Since(as.startedAt).Seconds(),
		})
	})

	authHandlers := auth.NewHandlers(as.AuthService, as.Logger)
	sessionHandlers := session.NewHandlers(as.Sessions, as.Logger)
	healthHandlers := health.NewHandlers(as.HealthTrack, as.Logger)
	pipelineHandlers := pipeline.NewHandlers(as.Pipeline, config.Http().MaxRequestSize, as.Logger)

	authenticated := auth.Middleware(as.AuthService, as.Logger)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", authHandlers.Login)
		authGroup.GET("/me", authenticated, authHandlers.Me)
	}

	sessionGroup := router.Group("/session", authenticated)
	{
		sessionGroup.POST("/start", sessionHandlers.Start)
		sessionGroup.POST("/end", sessionHandlers.End)
	}

	aiGroup := router.Group("/ai", authenticated)
	{
		aiGroup.POST("/respond", pipelineHandlers.Respond)
	}

	voiceGroup := router.Group("/voice", authenticated)
	{
		voiceGroup.POST("/process", pipelineHandlers.Voice)
	}

	healthGroup := router.Group("/health", authenticated)
	{
		healthGroup.POST("/ingest", healthHandlers.Ingest)
	}

	return router
}

func setupSignalHandler(server *http.Server, stopSweeper context.CancelFunc, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		stopSweeper()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
