package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu_portal/internal/config"
	"edu_portal/internal/handler"
	"edu_portal/internal/repository"
	"edu_portal/internal/service"
	"edu_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := config.LoadEnv(); err != nil {
		logger.Warn("failed to load .env file, relying on environment variables", zap.Error(err))
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Fatal("failed to load DB config", zap.Error(err))
	}
	srvCfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Fatal("failed to load server config", zap.Error(err))
	}
	gin.SetMode(srvCfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, dbCfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	if err := config.AutoMigrate(ctx, dbPool); err != nil {
		logger.Fatal("failed to auto-migrate database", zap.Error(err))
	}

	// --- Wiring ---
	jwtUtil := utils.NewJWTUtil(srvCfg.JWTSecret, srvCfg.JWTExpirationHours)
	userRepo := repository.NewUserRepository(dbPool)

	router := handler.NewRouter(handler.Deps{
		AuthService: service.NewAuthService(userRepo, jwtUtil, logger),
		UserService: service.NewUserService(userRepo, logger),
		JWT:         jwtUtil,
		Logger:      logger,
		Ping:        dbPool.Ping,
	})

	srv := &http.Server{
		Addr:              ":" + srvCfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", srvCfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server exiting")
}
