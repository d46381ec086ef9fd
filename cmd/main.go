package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"shirt_sh_v1_202608/internal/controller"
	"shirt_sh_v1_202608/internal/middleware"
	"shirt_sh_v1_202608/internal/model"
	"shirt_sh_v1_202608/internal/repository"
	"shirt_sh_v1_202608/internal/router"
	"shirt_sh_v1_202608/internal/service"
	"shirt_sh_v1_202608/internal/task"
	"shirt_sh_v1_202608/pkg/database"
)

// @title Shirt.sh API
// @version 1.0
// @description AI 设计生成 + Printify 履约下单服务
// @host localhost:8080
// @BasePath /
func main() {
	// 0. 加载本地环境变量（生产环境由部署平台注入，文件不存在不报错）
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	var paymentVerifier middleware.PaymentVerifier
	if token := getEnv("PAYMENT_TOKEN", ""); token != "" {
		paymentVerifier = &middleware.EnvTokenVerifier{Token: token}
	}
	r := router.SetupRouter(deps.ShirtCtl, router.Options{
		PaymentVerifier:   paymentVerifier,
		RateLimitInterval: getEnvDuration("ORDER_RATE_INTERVAL", 10*time.Second),
	})

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB       *gorm.DB
	Repos    *Repositories
	Services *Services
	ShirtCtl *controller.ShirtController
}

// Repositories 仓库集合
type Repositories struct {
	AiCallLog repository.AICallLogRepository
}

// Services 服务集合
type Services struct {
	Printify    *service.PrintifyClient
	Storage     *service.StorageService
	Design      *service.DesignService
	Resolver    *service.VariantResolver
	Fulfillment *service.FulfillmentService
	Workflow    *service.WorkflowService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	return database.InitDB(
		getEnv("DATABASE_DSN", ""),
		&model.AICallLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		AiCallLog: repository.NewAICallLogRepository(db),
	}

	// -------- 外部客户端 --------
	printifyClient := service.NewPrintifyClient(service.PrintifyConfig{
		APIKey: getEnv("PRINTIFY_API_KEY", ""),
		ShopID: getEnvInt64("PRINTIFY_SHOP_ID", 0),
	})

	// 启动时校验 Printify 凭证，失败只告警不中断启动
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := printifyClient.Ping(ctx); err != nil {
			log.Printf("警告: Printify 连通性检查失败: %v", err)
		} else {
			log.Println("Printify 连通性检查通过")
		}
	}()

	// -------- 存储 & AI 服务 --------
	storageSvc := initStorageService()
	designSvc := service.NewDesignService(&service.AIConfig{
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
	}, storageSvc, repos.AiCallLog)

	// -------- 业务服务 --------
	resolver := service.NewVariantResolver(printifyClient)
	fulfillmentSvc := service.NewFulfillmentService(printifyClient, resolver)
	workflowSvc := service.NewWorkflowService(service.WorkflowConfig{
		ImageProvider: service.ImageProvider(getEnv("IMAGE_PROVIDER", "google")),
		DirectMode:    getEnv("DIRECT_ORDER_MODE", "true") == "true",
	}, designSvc, fulfillmentSvc, resolver)

	services := &Services{
		Printify:    printifyClient,
		Storage:     storageSvc,
		Design:      designSvc,
		Resolver:    resolver,
		Fulfillment: fulfillmentSvc,
		Workflow:    workflowSvc,
	}

	return &Dependencies{
		DB:       db,
		Repos:    repos,
		Services: services,
		ShirtCtl: controller.NewShirtController(workflowSvc),
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "s3"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "shirt-sh"),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 目录变体快照预热
	catalogTask := task.NewCatalogTask(deps.Services.Resolver)
	catalogTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
