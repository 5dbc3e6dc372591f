package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	tokenapi "github.com/rescuekit/tokend/api/echo"
	"github.com/rescuekit/tokend/cache"
	redicache "github.com/rescuekit/tokend/cache/redis"
	"github.com/rescuekit/tokend/config"
	"github.com/rescuekit/tokend/domain"
	"github.com/rescuekit/tokend/internal/keys"
	"github.com/rescuekit/tokend/internal/metrics"
	"github.com/rescuekit/tokend/internal/server"
	"github.com/rescuekit/tokend/log"
	"github.com/rescuekit/tokend/mongodb"
	"github.com/rescuekit/tokend/services"
	"github.com/rescuekit/tokend/tracing"
)

var (
	appLogger      log.Logger
	httpServer     *http.Server
	tracerProvider *sdktrace.TracerProvider
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logLevel, parseErr := zerolog.ParseLevel(cfg.LogLevel)
	if parseErr != nil {
		logLevel = zerolog.InfoLevel
	}
	// Leaf packages log through the zerolog global; keep it at the same level
	// as the wiring logger.
	zerolog.SetGlobalLevel(logLevel)
	appLogger = log.NewZerologAdapter(logLevel, cfg.LogPretty)

	ctx := context.Background()
	appLogger.Info(ctx, "Starting tokend...", map[string]interface{}{
		"http_port":  cfg.HTTPPort,
		"project_id": cfg.ParagonProjectID,
		"log_level":  cfg.LogLevel,
		"mongo":      cfg.MongoURI != "",
		"redis":      cfg.RedisAddr != "",
	})

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		appLogger.Fatal(ctx, "Failed to initialize TracerProvider", err, nil)
	}
	tracerProvider = tp

	// Credential repository: MongoDB-backed store behind a TTL cache, or the
	// static table loaded once from the credentials file.
	var (
		credRepo  domain.OrgCredentialRepository
		credCache cache.CredentialStore
		pinger    func(ctx context.Context) error
		mongoUsed bool
	)
	if cfg.MongoURI != "" {
		if initErr := mongodb.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName); initErr != nil {
			appLogger.Fatal(ctx, "Failed to initialize MongoDB connection", initErr, nil)
		}
		mongoUsed = true
		pinger = mongodb.Ping

		mongoRepo, repoErr := mongodb.NewOrgCredentialRepositoryMongo(mongodb.GetDB())
		if repoErr != nil {
			appLogger.Fatal(ctx, "Failed to initialize OrgCredentialRepository", repoErr, nil)
		}

		cacheTTL := time.Duration(cfg.CredentialCacheTTLSecs) * time.Second
		if cfg.RedisAddr != "" {
			redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
			credCache = redicache.NewCredentialStore(redisClient, cfg.OtelServiceName, cacheTTL)
		} else {
			credCache = cache.NewMemoryCredentialStore(cacheTTL)
		}
		credRepo = cache.NewCachedRepository(mongoRepo, credCache)
	} else {
		table, loadErr := config.LoadCredentials(cfg.CredentialsFile)
		if loadErr != nil {
			appLogger.Fatal(ctx, "Failed to load credential table", loadErr, nil)
		}
		appLogger.Info(ctx, fmt.Sprintf("Loaded %d organization credentials", len(table)), nil)
		credRepo = services.NewStaticCredentialRepository(table)
	}

	// Services
	resolver := keys.NewResolver(cfg.SigningKeyFile, cfg.SigningKey, config.DefaultSigningKeyPaths)
	tokenService := services.NewTokenService(
		services.NewTokenSigner(resolver),
		cfg.ParagonProjectID,
		cfg.AdminSubject,
	)
	credentialService := services.NewCredentialService(credRepo)

	metrics.Register(prometheus.DefaultRegisterer)

	tokenAPI := tokenapi.NewTokenAPI(tokenService, credentialService, pinger, cfg.DebugErrors)

	httpServer = server.NewHTTPServer(cfg, appLogger, tokenAPI)
	go func() {
		appLogger.Info(context.Background(), fmt.Sprintf("HTTP server listening on port %s", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(context.Background(), "Failed to start HTTP server", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit

	appLogger.Info(ctx, fmt.Sprintf("Received signal: %v. Shutting down...", receivedSignal))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "HTTP server shutdown error", err, nil)
		}
	}

	if credCache != nil {
		if err := credCache.Close(); err != nil {
			appLogger.Error(shutdownCtx, "Credential cache close error", err, nil)
		}
	}

	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "TracerProvider shutdown error", err, nil)
		}
	}

	if mongoUsed {
		mongodb.CloseMongoDB(shutdownCtx)
	}

	appLogger.Info(shutdownCtx, "Server gracefully stopped.")
}
