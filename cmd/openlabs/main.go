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

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/OpenLabsEx/API/internal/api/http/request"
	"github.com/OpenLabsEx/API/internal/api/http/router"
	httpServer "github.com/OpenLabsEx/API/internal/api/http/server"
	"github.com/OpenLabsEx/API/internal/config"
	"github.com/OpenLabsEx/API/internal/logger"
	"github.com/OpenLabsEx/API/internal/model"
	"github.com/OpenLabsEx/API/internal/repository/postgres"
	"github.com/OpenLabsEx/API/internal/security"
	"github.com/OpenLabsEx/API/internal/service"
	storage "github.com/OpenLabsEx/API/internal/storage/minio"
	"github.com/OpenLabsEx/API/internal/token"
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

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	secretRepo := postgres.NewSecretRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	rangeRepo := postgres.NewRangeRepository(db)

	tokenManager, err := token.NewJWT(cfg.Auth.SecretKey, cfg.Auth.Algorithm, cfg.Auth.AccessTokenExpireMinutes)
	if err != nil {
		logger.Fatal("failed to create token manager", "error", err)
	}
	hasher := security.NewBcryptHasher()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	authService := service.NewAuth(userRepo, tokenManager, hasher, logger)
	userService := service.NewUser(userRepo, secretRepo, hasher, logger)
	templateService := service.NewTemplate(templateRepo, logger)
	rangeService := service.NewRange(templateRepo, rangeRepo, secretRepo, storageClient, service.NewDryRunDeployer(logger), logger)

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Fatal("failed to ensure admin account", "error", err)
	}

	contextManager := request.NewManager()
	apiRouter := router.New(cfg.HTTP.APIPrefix, authService, userService, templateService, rangeService, contextManager, logger)
	server := httpServer.NewHTTPServer(apiRouter.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = security.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = security.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("starting server", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(server)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", server.Address())
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
