package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"meli_listing_v1/internal/apiclient"
	"meli_listing_v1/internal/backend"
	"meli_listing_v1/internal/config"
	"meli_listing_v1/internal/controller"
	"meli_listing_v1/internal/repository"
	"meli_listing_v1/internal/router"
	"meli_listing_v1/internal/service"
	"meli_listing_v1/internal/service/ai"
	"meli_listing_v1/internal/session"
	"meli_listing_v1/internal/task"
	"meli_listing_v1/pkg/database"
	"meli_listing_v1/pkg/kvstore"
	"meli_listing_v1/pkg/utils"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化日志
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	// 3. 初始化数据库
	db := database.InitDB(cfg.DatabaseDSN, &kvstore.Entry{})

	// 4. 初始化依赖
	deps := initDependencies(cfg, db, logger)

	// 5. 恢复会话（持久化的租户与设置）
	deps.Session.Initialize(context.Background())

	// 6. 启动定时任务
	initTasks(deps, logger)

	// 7. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers, cfg.JWTSecret)

	// 8. 启动服务
	startServer(r, cfg.ServerPort, logger)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Store       *kvstore.Store
	StateCache  *utils.StateCache
	Repos       *Repositories
	Services    *Services
	Backend     backend.Client
	Session     *session.TenantSession
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Client  repository.ClientRepository
	Listing repository.ListingRepository
	Audit   repository.AuditLogRepository
}

// Services 服务集合
type Services struct {
	Client  *service.ClientService
	Listing *service.ListingService
	MLAuth  *service.MLAuthService
}

// ==================== 初始化函数 ====================

// initLogger 初始化日志
func initLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	return logger
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, logger *zap.Logger) *Dependencies {
	// -------- 存储层 --------
	store := kvstore.New(db)
	stateCache := utils.NewStateCache()

	// -------- Repo 层 --------
	repos := &Repositories{
		Client:  repository.NewClientRepository(store),
		Listing: repository.NewListingRepository(store),
		Audit:   repository.NewAuditLogRepository(store),
	}

	// -------- AI 生成器 --------
	registry := ai.NewRegistry(
		ai.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel),
		ai.NewOpenAIGenerator(),
	)

	// -------- 业务服务 --------
	services := &Services{
		Client:  service.NewClientService(repos.Client),
		Listing: service.NewListingService(repos.Listing, repos.Audit, registry, logger),
		MLAuth: service.NewMLAuthService(&service.MLAuthConfig{
			AppID:       cfg.MLAppID,
			RedirectURI: cfg.MLRedirectURI,
		}, repos.Client, stateCache, logger),
	}

	// -------- 后端传输 --------
	// mock 模式直连本进程服务层，http 模式走真实远端
	var apiBackend backend.Client
	if cfg.BackendMode == "http" {
		apiBackend = backend.NewHTTPBackend(cfg.APIBaseURL)
	} else {
		apiBackend = backend.NewMockBackend(services.Client, services.Listing, services.MLAuth, logger)
	}

	// -------- 客户端会话 --------
	tenantSession := session.New(apiclient.New(apiBackend, store), store, logger)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Client:  controller.NewClientController(services.Client),
		Session: controller.NewSessionController(logger),
		Listing: controller.NewListingController(services.Listing, repos.Audit),
		MLAuth:  controller.NewMLAuthController(services.MLAuth),
	}

	return &Dependencies{
		DB:          db,
		Store:       store,
		StateCache:  stateCache,
		Repos:       repos,
		Services:    services,
		Backend:     apiBackend,
		Session:     tenantSession,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies, logger *zap.Logger) {
	sweepTask := task.NewStateSweepTask(deps.StateCache, logger)
	if err := sweepTask.Start(); err != nil {
		log.Fatalf("定时任务启动失败: %v", err)
	}

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.Info("服务启动", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	logger.Info("服务已退出")
}
