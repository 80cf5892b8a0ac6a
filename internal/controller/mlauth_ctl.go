package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/middleware"
	"meli_listing_v1/internal/service"
)

type MLAuthController struct {
	mlAuthSvc *service.MLAuthService
}

func NewMLAuthController(mlAuthSvc *service.MLAuthService) *MLAuthController {
	return &MLAuthController{mlAuthSvc: mlAuthSvc}
}

// Connect 发起账号关联（PKCE）
// @Summary 发起账号关联
// @Description 生成 verifier/challenge/nonce，缓存 state 绑定，返回授权跳转地址
// @Tags MercadoLivre (账号关联)
// @Accept json
// @Produce json
// @Param body body dto.ConnectReq true "目标租户"
// @Success 200 {object} dto.ConnectResp
// @Router /api/ml/connect [post]
func (c *MLAuthController) Connect(ctx *gin.Context) {
	var req dto.ConnectReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	authURL, err := c.mlAuthSvc.StartAuth(ctx.Request.Context(), req.Target())
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ConnectResp{AuthURL: authURL})
}

// Callback 授权回调
// @Summary 授权回调
// @Description 校验 state（单次使用），标记租户已关联
// @Tags MercadoLivre (账号关联)
// @Produce json
// @Param code query string false "授权码"
// @Param state query string true "防重放 state"
// @Success 200 {object} model.Client
// @Failure 400 {object} map[string]string "state 无效或已过期"
// @Router /api/ml/callback [get]
func (c *MLAuthController) Callback(ctx *gin.Context) {
	client, err := c.mlAuthSvc.HandleCallback(ctx.Request.Context(), ctx.Query("code"), ctx.Query("state"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, client)
}

// Status 关联状态（租户范围）
// @Summary 关联状态
// @Tags MercadoLivre (账号关联)
// @Produce json
// @Success 200 {object} dto.ConnectionStatusResp
// @Failure 403 {object} map[string]string "缺租户上下文"
// @Router /api/ml/status [get]
func (c *MLAuthController) Status(ctx *gin.Context) {
	connected, err := c.mlAuthSvc.ConnectionStatus(ctx.Request.Context(), middleware.GetTenantID(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ConnectionStatusResp{Connected: connected})
}
