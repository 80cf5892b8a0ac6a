package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meli_listing_v1/internal/service"
)

// ==================== 租户上下文 ====================

// TenantHeader 租户标识头，所有租户范围调用必须携带
const TenantHeader = "X-Tenant-Id"

const tenantKey = "tenant_id"

// TenantRequired 行级安全闸门：缺租户头直接 403，后续处理器不会执行
// 这是硬前置条件，绝不回落到“全部租户”
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": service.ErrMissingTenant.Error()})
			return
		}
		c.Set(tenantKey, tenantID)
		c.Next()
	}
}

// GetTenantID 从请求上下文取租户 ID（仅在 TenantRequired 之后可用）
func GetTenantID(c *gin.Context) string {
	return c.GetString(tenantKey)
}
