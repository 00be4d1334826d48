package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"promanager/internal/adapter/cache"
	dbadapter "promanager/internal/adapter/db"
	httpadapter "promanager/internal/adapter/http"
	"promanager/internal/adapter/http/handlers"
	httpmiddleware "promanager/internal/adapter/http/middleware"
	appservice "promanager/internal/app/service"
	"promanager/internal/auth"
	"promanager/internal/config"
	"promanager/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.LoadConfig()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logger.Fatal("invalid jwt configuration", zap.Error(err))
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}

	serviceOpts := []appservice.Option{}
	var summaryCache *cache.SummaryCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		summaryCache = cache.NewSummaryCache(client, cache.DefaultPrefix, cfg.SummaryCacheTTL)
		if err := summaryCache.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable at startup, summaries will be recomputed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		serviceOpts = append(serviceOpts, appservice.WithSummaryCache(summaryCache))
	} else {
		logger.Info("summary cache disabled")
	}

	taskService := appservice.NewTaskService(dbadapter.NewTaskRepository(db), serviceOpts...)

	var healthCache handlers.Pinger
	if summaryCache != nil {
		healthCache = summaryCache
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("trusted_proxies", cfg.TrustedProxies), zap.Error(err))
	}
	r.Use(gin.Recovery(), httpmiddleware.GinZapMiddleware(logger))
	httpadapter.RegisterRoutes(
		r,
		handlers.NewHealthHandler(db, healthCache),
		handlers.NewTaskHandler(taskService),
		tokens,
	)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("driver", db.DriverName()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	closers := []namedCloser{{name: "database", closer: db}}
	if summaryCache != nil {
		closers = append(closers, namedCloser{name: "redis", closer: summaryCache})
	}

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": drainThenClose(server, closers...),
		},
	)

	exitCode := <-wait
	logger.Info("server exited", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}
