package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/middleware"
	"meli_listing_v1/internal/repository"
	"meli_listing_v1/internal/service"
	"meli_listing_v1/internal/service/ai"
)

type ListingController struct {
	listingSvc *service.ListingService
	auditRepo  repository.AuditLogRepository
}

func NewListingController(listingSvc *service.ListingService, auditRepo repository.AuditLogRepository) *ListingController {
	return &ListingController{
		listingSvc: listingSvc,
		auditRepo:  auditRepo,
	}
}

// List 发布记录列表（租户范围）
// @Summary 发布记录列表
// @Description 只返回 X-Tenant-Id 对应租户的记录，过滤不可绕过
// @Tags Listing (发布)
// @Produce json
// @Success 200 {array} model.ListingStatus
// @Failure 403 {object} map[string]string "缺租户上下文"
// @Router /api/listings [get]
func (c *ListingController) List(ctx *gin.Context) {
	listings, err := c.listingSvc.List(ctx.Request.Context(), middleware.GetTenantID(ctx))
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, listings)
}

// Generate 生成商品文案（租户范围）
// @Summary 生成商品文案
// @Description 剥离供应商字段、落审计日志后分发到所选 AI 供应商
// @Tags Listing (发布)
// @Accept json
// @Produce json
// @Param body body dto.GenerateListingReq true "产品数据 + 供应商选择"
// @Success 200 {object} dto.GeneratedContent
// @Failure 403 {object} map[string]string "缺租户上下文"
// @Failure 422 {object} map[string]string "生成失败"
// @Router /api/listings/generate [post]
func (c *ListingController) Generate(ctx *gin.Context) {
	var req dto.GenerateListingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	content, err := c.listingSvc.Generate(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, content)
}

// Sync 同步发布（租户范围）
// @Summary 同步发布
// @Description 生成新发布记录并落库；不校验外部账号关联状态
// @Tags Listing (发布)
// @Accept json
// @Produce json
// @Param body body dto.SyncListingReq true "发布内容"
// @Success 201 {object} model.ListingStatus
// @Failure 403 {object} map[string]string "缺租户上下文"
// @Router /api/listings/sync [post]
func (c *ListingController) Sync(ctx *gin.Context) {
	var req dto.SyncListingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	listing, err := c.listingSvc.Sync(ctx.Request.Context(), middleware.GetTenantID(ctx), req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, listing)
}

// AuditLogs 审计日志（租户范围，仅服务端可见）
// @Summary 审计日志
// @Tags Listing (发布)
// @Produce json
// @Success 200 {array} model.AuditLogEntry
// @Router /api/audit [get]
func (c *ListingController) AuditLogs(ctx *gin.Context) {
	logs, err := c.auditRepo.ListByTenant(middleware.GetTenantID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, logs)
}

// writeServiceError 按错误类别映射状态码，错误信息原样返回
func writeServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingTenant):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrClientNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ai.ErrMissingGeminiKey), errors.Is(err, ai.ErrMissingOpenAIKey):
		// 配置类错误：前端据此引导用户去设置页
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
