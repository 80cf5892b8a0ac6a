package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meli_listing_v1/internal/api/dto"
)

type SessionController struct {
	log *zap.Logger
}

func NewSessionController(log *zap.Logger) *SessionController {
	return &SessionController{log: log}
}

// SwitchTenant 租户切换通知
// @Summary 租户切换通知
// @Description 纯审计侧信道：记录并确认，不做任何状态切换
// @Tags Session (会话)
// @Accept json
// @Produce json
// @Param body body dto.SwitchTenantReq true "目标租户"
// @Success 200 {object} dto.SwitchTenantResp
// @Router /api/session/switch-tenant [post]
func (c *SessionController) SwitchTenant(ctx *gin.Context) {
	var req dto.SwitchTenantReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	c.log.Info("session switch", zap.String("tenant", req.TenantID))
	ctx.JSON(http.StatusOK, dto.SwitchTenantResp{Success: true})
}
