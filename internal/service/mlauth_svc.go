package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"meli_listing_v1/internal/model"
	"meli_listing_v1/internal/repository"
	"meli_listing_v1/pkg/utils"
)

// 业务常量
const (
	// MeliAuthURL Mercado Livre 授权页
	MeliAuthURL = "https://auth.mercadolivre.com.br/authorization"
)

// ==================== 账号关联服务 ====================

// MLAuthConfig Mercado Livre 应用配置
type MLAuthConfig struct {
	AppID       string
	RedirectURI string
}

// MLAuthService PKCE 授权式账号关联
type MLAuthService struct {
	Config  *MLAuthConfig
	clients repository.ClientRepository
	cache   *utils.StateCache
	log     *zap.Logger
}

// NewMLAuthService 创建账号关联服务
func NewMLAuthService(cfg *MLAuthConfig, clients repository.ClientRepository, cache *utils.StateCache, log *zap.Logger) *MLAuthService {
	return &MLAuthService{
		Config:  cfg,
		clients: clients,
		cache:   cache,
		log:     log,
	}
}

// StartAuth 为目标租户发起授权，返回跳转地址
// nonce 作为 state 携带，verifier 以 "verifier:tenant_id" 形式缓存待回调取用
func (s *MLAuthService) StartAuth(ctx context.Context, targetTenantID string) (string, error) {
	if targetTenantID == "" {
		return "", errors.New("target tenant id is required")
	}
	if _, err := s.clients.GetByID(targetTenantID); err != nil {
		return "", err
	}

	pair, err := utils.CreatePkcePair()
	if err != nil {
		return "", fmt.Errorf("pkce generation failed: %w", err)
	}

	s.cache.Set(pair.Nonce, pair.Verifier+":"+targetTenantID)

	authURL := fmt.Sprintf(
		"%s?response_type=code&client_id=%s&redirect_uri=%s&state=%s&code_challenge=%s&code_challenge_method=S256",
		MeliAuthURL, s.Config.AppID, url.QueryEscape(s.Config.RedirectURI), pair.Nonce, pair.Challenge,
	)

	s.log.Info("authorization started", zap.String("tenant", targetTenantID))
	return authURL, nil
}

// HandleCallback 处理授权回调：校验 state、用完即焚、标记租户已关联
// 真实实现会用 verifier 换 token；本范围内只模拟关联结果
func (s *MLAuthService) HandleCallback(ctx context.Context, code, state string) (*model.Client, error) {
	cachedVal, ok := s.cache.Get(state)
	if !ok {
		return nil, ErrInvalidState
	}
	// 单次使用，取到即删
	s.cache.Delete(state)

	parts := strings.SplitN(cachedVal, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("corrupt state cache entry: %s", cachedVal)
	}
	tenantID := parts[1]

	client, err := s.clients.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	client.IsConnected = true
	if err := s.clients.Update(*client); err != nil {
		return nil, err
	}

	s.log.Info("tenant connected", zap.String("tenant", tenantID))
	return client, nil
}

// ConnectionStatus 查询租户是否已关联外部账号（租户范围操作）
func (s *MLAuthService) ConnectionStatus(ctx context.Context, tenantID string) (bool, error) {
	if tenantID == "" {
		return false, ErrMissingTenant
	}
	client, err := s.clients.GetByID(tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return false, nil
		}
		return false, err
	}
	return client.IsConnected, nil
}
