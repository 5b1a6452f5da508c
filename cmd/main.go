package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/akimsavar/authwall/internal/api/http/request"
	"github.com/akimsavar/authwall/internal/api/http/router"
	"github.com/akimsavar/authwall/internal/config"
	"github.com/akimsavar/authwall/internal/logger"
	"github.com/akimsavar/authwall/internal/model"
	"github.com/akimsavar/authwall/internal/notifier"
	"github.com/akimsavar/authwall/internal/repository/postgres"
	redisrepo "github.com/akimsavar/authwall/internal/repository/redis"
	"github.com/akimsavar/authwall/internal/server"
	"github.com/akimsavar/authwall/internal/service"
	"github.com/akimsavar/authwall/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.QueryTimeout)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	clock := model.RealClock{}

	userRepo := postgres.NewUserRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	resetRepo := postgres.NewResetRepository(db)

	var revocations model.RevocationStore
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect to redis", "error", err)
		}
		revocations = redisrepo.NewRevocationStore(client, clock)
		logger.Info("revocation ledger backed by redis", "addr", cfg.Redis.Addr)
	} else {
		revocations = postgres.NewRevocationRepository(db)
	}

	tokenManager := token.NewJWT(token.Config{
		Secret:     cfg.Token.Secret,
		AccessTTL:  cfg.Token.AccessTTL,
		RefreshTTL: cfg.Token.RefreshTTL,
	}, clock)

	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, revocations, clock, logger, cfg.Token.RotateRefresh)
	authService := service.NewAuth(userRepo, tokenService, logger)

	var resetNotifier model.Notifier
	if cfg.SMTP.Host != "" {
		resetNotifier = notifier.NewSMTP(notifier.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.User,
			Password: cfg.SMTP.Pass,
			From:     cfg.SMTP.From,
		})
	} else {
		resetNotifier = notifier.NewLog(logger)
	}
	resetService := service.NewReset(userRepo, resetRepo, resetNotifier, clock, cfg.Reset.TTL, logger)

	ctxMgr := request.NewManager()

	r := router.New(authService, tokenService, resetService, ctxMgr, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
