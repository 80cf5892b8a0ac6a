package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/model"
	"meli_listing_v1/internal/repository"
	"meli_listing_v1/internal/service/ai"
)

// ==================== 发布服务 ====================

// ListingService 商品文案生成与发布
type ListingService struct {
	listings repository.ListingRepository
	audits   repository.AuditLogRepository
	registry *ai.Registry
	log      *zap.Logger
}

// NewListingService 创建发布服务
func NewListingService(
	listings repository.ListingRepository,
	audits repository.AuditLogRepository,
	registry *ai.Registry,
	log *zap.Logger,
) *ListingService {
	return &ListingService{
		listings: listings,
		audits:   audits,
		registry: registry,
		log:      log,
	}
}

// List 按租户列出发布记录（行级安全模拟：过滤不可绕过）
func (s *ListingService) List(ctx context.Context, tenantID string) ([]model.ListingStatus, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}
	return s.listings.ListByTenant(tenantID)
}

// Generate 生成商品文案
// 流程：落审计日志 -> 按标签选生成器 -> 调用并原样返回
// 注意非原子：审计写入后生成失败，日志仍保留（这次尝试是真实发生的）
func (s *ListingService) Generate(ctx context.Context, tenantID string, req dto.GenerateListingReq) (*dto.GeneratedContent, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}

	provider := model.AIProvider(req.Provider)
	if provider == "" {
		provider = model.ProviderGemini
	}

	generator, err := s.registry.For(provider)
	if err != nil {
		return nil, err
	}

	if err := s.audits.Append(tenantID, model.AuditActionGenerateListing, map[string]interface{}{
		"product":  req.NomeDoProduto,
		"provider": string(provider),
	}); err != nil {
		return nil, fmt.Errorf("audit log write failed: %w", err)
	}

	s.log.Debug("dispatching generation",
		zap.String("tenant", tenantID),
		zap.String("provider", string(provider)),
		zap.String("product", req.NomeDoProduto))

	// 供应商字段已在 DTO 层与产品数据分离，生成器只见 ProductData
	content, err := generator.Generate(ctx, req.ProductData, req.OpenaiApiKey)
	if err != nil {
		// 原样向上传播，不重试、不吞错
		return nil, err
	}
	return content, nil
}

// Sync 将文案同步为一条发布记录
// 设计保留源行为：不校验租户是否已关联外部账号（界面负责禁用按钮）
func (s *ListingService) Sync(ctx context.Context, tenantID string, req dto.SyncListingReq) (*model.ListingStatus, error) {
	if tenantID == "" {
		return nil, ErrMissingTenant
	}

	listing := model.ListingStatus{
		ID:          fmt.Sprintf("MLB%d", rand.Intn(1_000_000_000)),
		Title:       req.Title,
		Price:       req.Price,
		Status:      model.ListingStatusSynced,
		LastUpdated: time.Now(),
		TenantID:    tenantID,
	}
	if err := s.listings.Append(listing); err != nil {
		return nil, err
	}
	return &listing, nil
}
