package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/service"
)

// ==================== 模拟后端 ====================

// MockBackend 内存模拟器：复用真实服务层，模拟远端 API 的路由与租户隔离
// 写操作直接落本地键值库，无事务回滚（审计先行、生成后失败时日志保留）
type MockBackend struct {
	clientSvc  *service.ClientService
	listingSvc *service.ListingService
	mlAuthSvc  *service.MLAuthService
	log        *zap.Logger

	// Latency 模拟网络延迟，默认 0（测试友好）
	Latency time.Duration
}

var _ Client = (*MockBackend)(nil)

// NewMockBackend 创建模拟后端
func NewMockBackend(
	clientSvc *service.ClientService,
	listingSvc *service.ListingService,
	mlAuthSvc *service.MLAuthService,
	log *zap.Logger,
) *MockBackend {
	return &MockBackend{
		clientSvc:  clientSvc,
		listingSvc: listingSvc,
		mlAuthSvc:  mlAuthSvc,
		log:        log,
	}
}

// Do 路由一次逻辑调用
func (m *MockBackend) Do(ctx context.Context, method, endpoint string, body interface{}, rc RequestContext) (json.RawMessage, error) {
	m.log.Debug("[MockAPI]", zap.String("method", method), zap.String("endpoint", endpoint), zap.String("tenant", rc.TenantID))

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	result, err := m.route(ctx, method, endpoint, body, rc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// checkRLS 租户范围端点的硬前置条件：无租户立即失败，不触达存储
func (m *MockBackend) checkRLS(rc RequestContext) (string, error) {
	if rc.TenantID == "" {
		return "", service.ErrMissingTenant
	}
	return rc.TenantID, nil
}

func (m *MockBackend) route(ctx context.Context, method, endpoint string, body interface{}, rc RequestContext) (interface{}, error) {
	switch {
	case endpoint == "/clients" && method == http.MethodGet:
		return m.clientSvc.List(ctx)

	case strings.HasPrefix(endpoint, "/clients/") && method == http.MethodGet:
		id := strings.TrimPrefix(endpoint, "/clients/")
		return m.clientSvc.Get(ctx, id)

	case endpoint == "/clients" && method == http.MethodPost:
		var req dto.CreateClientReq
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return m.clientSvc.Create(ctx, req)

	case endpoint == "/session/switch-tenant" && method == http.MethodPost:
		// 纯审计侧信道：接受并确认
		return dto.SwitchTenantResp{Success: true}, nil

	case (endpoint == "/ml/connect" || endpoint == "/ml/auth/start") && method == http.MethodPost:
		var req dto.ConnectReq
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		authURL, err := m.mlAuthSvc.StartAuth(ctx, req.Target())
		if err != nil {
			return nil, err
		}
		return dto.ConnectResp{AuthURL: authURL}, nil

	case endpoint == "/ml/status" && method == http.MethodGet:
		tenantID, err := m.checkRLS(rc)
		if err != nil {
			return nil, err
		}
		connected, err := m.mlAuthSvc.ConnectionStatus(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		return dto.ConnectionStatusResp{Connected: connected}, nil

	case endpoint == "/listings" && method == http.MethodGet:
		tenantID, err := m.checkRLS(rc)
		if err != nil {
			return nil, err
		}
		return m.listingSvc.List(ctx, tenantID)

	case endpoint == "/listings/generate" && method == http.MethodPost:
		tenantID, err := m.checkRLS(rc)
		if err != nil {
			return nil, err
		}
		var req dto.GenerateListingReq
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return m.listingSvc.Generate(ctx, tenantID, req)

	case endpoint == "/listings/sync" && method == http.MethodPost:
		tenantID, err := m.checkRLS(rc)
		if err != nil {
			return nil, err
		}
		var req dto.SyncListingReq
		if err := decodeBody(body, &req); err != nil {
			return nil, err
		}
		return m.listingSvc.Sync(ctx, tenantID, req)
	}

	return nil, fmt.Errorf("%w: %s %s", ErrEndpointNotFound, method, endpoint)
}

// SimulateOAuthCallback 模拟授权回调（开发演示入口）
func (m *MockBackend) SimulateOAuthCallback(ctx context.Context, code, state string) error {
	_, err := m.mlAuthSvc.HandleCallback(ctx, code, state)
	return err
}

// decodeBody 将任意形态的 body 规整为目标 DTO
func decodeBody(body, out interface{}) error {
	if body == nil {
		return nil
	}
	raw, ok := body.(json.RawMessage)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	return nil
}
