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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/api/handlers"
	"github.com/abhaysingh-22/EcoTerra/internal/api/llm"
	"github.com/abhaysingh-22/EcoTerra/internal/api/middleware"
	"github.com/abhaysingh-22/EcoTerra/internal/budget"
	"github.com/abhaysingh-22/EcoTerra/internal/cache"
	"github.com/abhaysingh-22/EcoTerra/internal/config"
	"github.com/abhaysingh-22/EcoTerra/internal/content"
	"github.com/abhaysingh-22/EcoTerra/internal/mailer"
	"github.com/abhaysingh-22/EcoTerra/internal/repository"
	"github.com/abhaysingh-22/EcoTerra/internal/service"
	"github.com/abhaysingh-22/EcoTerra/pkg/ws"
)

const (
	limiterCleanupInterval = time.Minute
	limiterIdleTimeout     = 3 * time.Minute
	initDataTimeout        = 5 * time.Second
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runServer(cfg)
		},
	}
}

func runServer(cfg *config.Config) error {
	// 初始化日志
	logger := initLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting EcoTerra", zap.String("port", cfg.ServerPort))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 连接数据库
	db, err := repository.New(ctx, cfg.DatabaseURL, int32(cfg.DatabaseMaxConns))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	// 执行数据库迁移
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("Database migrated successfully")

	catalog, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	// 创建 Repository
	tripRepo := repository.NewTripRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// 推荐结果缓存
	var recCache cache.Cache = cache.NewMemory()
	if cfg.RedisEnabled() {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "ecoterra:")
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			defer func() { _ = rc.Close() }()
			recCache = rc
			logger.Info("Redis cache connected", zap.String("addr", cfg.RedisAddr))
		}
	}

	var recommender service.Recommender
	if cfg.LLMEnabled() {
		recommender = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	} else {
		logger.Warn("LLM_API_KEY not set, recommendations will use curated destinations")
	}

	var notifier service.Notifier
	if cfg.MailEnabled() {
		notifier = mailer.New(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
			To:       cfg.FeedbackTo,
		})
	}

	// 创建 WebSocket Hub
	wsHub := ws.NewHub(logger)
	go wsHub.Run()
	defer wsHub.Stop()

	// 预算状态变化推送给用户
	budgets := budget.NewManager(func(t budget.Transition) {
		logger.Info("Budget state changed",
			zap.String("user_id", t.Status.UserID),
			zap.String("from", t.From),
			zap.String("to", t.To),
			zap.Float64("used_kg", t.Status.UsedKg),
			zap.Float64("budget_kg", t.Status.BudgetKg),
		)
		go wsHub.SendToUser(t.Status.UserID, service.EventBudgetChanged, t)
	})

	tripService := service.NewTripService(tripRepo, profileRepo, budgets, wsHub, logger)
	svc := handlers.Services{
		Trips:     tripService,
		Profiles:  service.NewProfileService(profileRepo, tripService, logger),
		Feedback:  service.NewFeedbackService(feedbackRepo, notifier, logger),
		Recommend: service.NewRecommendService(recommender, recCache, cfg.CacheTTL, catalog.Destinations, logger),
	}

	// 新连接先收到汇总和预算状态
	wsHub.SetInitDataProvider(func(userID string) interface{} {
		ictx, icancel := context.WithTimeout(ctx, initDataTimeout)
		defer icancel()
		summary, err := tripService.Summary(ictx, userID)
		if err != nil {
			logger.Error("Failed to load init data", zap.String("user_id", userID), zap.Error(err))
			return nil
		}
		return summary
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	go cleanupLimiter(ctx, limiter)

	jwtService := middleware.NewJWT([]byte(cfg.JWTSecret), cfg.JWTIssuer)

	// 创建 HTTP 处理器
	handler := handlers.NewHandler(logger, svc, catalog, jwtService, limiter, wsHub, db.Ping)

	// 设置 Gin 模式
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// 注册路由
	handler.RegisterRoutes(router)

	// 启动 HTTP 服务器
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("Server started", zap.String("addr", server.Addr))

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	}

	logger.Info("Shutting down server...")
	cancel()

	// 优雅关闭
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
	return nil
}

// corsConfig 根据允许的来源生成 CORS 配置，"*" 表示允许所有来源
func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Authorization", "Content-Type", middleware.HeaderRequestID}
	config.ExposeHeaders = []string{middleware.HeaderRequestID, "X-RateLimit-Remaining", "X-RateLimit-Reset"}

	for _, o := range origins {
		if o == "*" {
			config.AllowAllOrigins = true
			return config
		}
	}
	config.AllowOrigins = origins
	return config
}

// cleanupLimiter 定期清理空闲的限流 key
func cleanupLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Cleanup(limiterIdleTimeout)
		}
	}
}
