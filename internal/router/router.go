package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shirt_sh_v1_202608/internal/controller"
	"shirt_sh_v1_202608/internal/middleware"

	_ "shirt_sh_v1_202608/docs"
)

// Options 路由选项
type Options struct {
	PaymentVerifier   middleware.PaymentVerifier // nil 关闭支付门禁
	RateLimitInterval time.Duration              // <=0 关闭限流
}

// SetupRouter 创建引擎并注册全部路由
func SetupRouter(shirtCtl *controller.ShirtController, opts Options) *gin.Engine {
	r := gin.Default()
	InitRoutes(r, shirtCtl, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, shirtCtl *controller.ShirtController, opts Options) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// shirts 下单组：支付门禁 + 频率限制
		shirts := api.Group("/shirts",
			middleware.PaymentRequired(opts.PaymentVerifier),
			middleware.RateLimit(opts.RateLimitInterval),
		)
		{
			// POST /api/shirts
			shirts.POST("", shirtCtl.CreateShirt)

			// POST /api/shirts/from-image
			shirts.POST("/from-image", shirtCtl.CreateShirtFromImage)
		}
	}
}
