package router

import (
	"github.com/gin-gonic/gin"

	"meli_listing_v1/internal/controller"
	"meli_listing_v1/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Client  *controller.ClientController
	Session *controller.SessionController
	Listing *controller.ListingController
	MLAuth  *controller.MLAuthController
}

// InitRoutes 注册所有路由
// 租户范围的组挂 TenantRequired：缺 X-Tenant-Id 在进入处理器前就被拒绝
func InitRoutes(r *gin.Engine, ctrls *Controllers, jwtSecret string) {
	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(jwtSecret))
	{
		// clients 客户（租户目录，无需租户上下文）
		clients := api.Group("/clients")
		{
			// GET /api/clients
			clients.GET("", ctrls.Client.List)
			clients.GET("/:id", ctrls.Client.Get)
			clients.POST("", ctrls.Client.Create)
		}

		// session 会话
		api.POST("/session/switch-tenant", ctrls.Session.SwitchTenant)

		// ml 账号关联
		ml := api.Group("/ml")
		{
			// 两个路径指向同一处理器，前端两处调用各用其一
			ml.POST("/connect", ctrls.MLAuth.Connect)
			ml.POST("/auth/start", ctrls.MLAuth.Connect)
			ml.GET("/callback", ctrls.MLAuth.Callback)
			ml.GET("/status", middleware.TenantRequired(), ctrls.MLAuth.Status)
		}

		// listings 发布（整组租户范围）
		listings := api.Group("/listings", middleware.TenantRequired())
		{
			listings.GET("", ctrls.Listing.List)
			listings.POST("/generate", ctrls.Listing.Generate)
			listings.POST("/sync", ctrls.Listing.Sync)
		}

		// audit 审计读取口（服务端补充，模拟器不暴露）
		api.GET("/audit", middleware.TenantRequired(), ctrls.Listing.AuditLogs)
	}
}
