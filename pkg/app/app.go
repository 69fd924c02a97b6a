// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/tenantvault/pkg/api"
	"github.com/yeisme/tenantvault/pkg/configs"
	"github.com/yeisme/tenantvault/pkg/internal/jobs"
	"github.com/yeisme/tenantvault/pkg/internal/router"
	"github.com/yeisme/tenantvault/pkg/internal/storage"
	"github.com/yeisme/tenantvault/pkg/log"
	"github.com/yeisme/tenantvault/pkg/metrics"
	"github.com/yeisme/tenantvault/pkg/middleware"
	"github.com/yeisme/tenantvault/pkg/scheduler"
	"github.com/yeisme/tenantvault/pkg/tracing"
)

type App struct {
	Engine    *gin.Engine
	Scheduler *scheduler.Scheduler

	config  *configs.AppConfig
	manager *storage.Manager
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// 初始化追踪
	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 调度器承载隔离区审计等后台任务
	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		fmt.Printf("Error registering cron jobs: %v\n", err)
		os.Exit(1)
	}

	sched.Start()

	// 认证依赖请求上下文里的 storage manager，StorageMiddleware 必须在 AuthMiddleware 之前
	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.RateLimitMiddleware(config.RateLimit),
		middleware.StorageMiddleware(manager),
		middleware.SchedulerMiddleware(sched),
		middleware.AuthMiddleware(config.Auth),
	)

	api.RegisterGroup(engine)
	router.RegisterSwaggerRoute(engine)

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	return &App{
		Engine:    engine,
		Scheduler: sched,
		config:    config,
		manager:   manager,
	}
}

func (a *App) Run() error {
	defer a.shutdown()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}

func (a *App) shutdown() {
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			log.Logger().Warn().Err(err).Msg("scheduler shutdown failed")
		}
	}

	if a.manager != nil {
		if err := a.manager.Close(); err != nil {
			log.Logger().Warn().Err(err).Msg("storage close failed")
		}
	}
}
