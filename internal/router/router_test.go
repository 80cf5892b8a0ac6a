package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meli_listing_v1/internal/controller"
	"meli_listing_v1/internal/model"
	"meli_listing_v1/internal/repository"
	"meli_listing_v1/internal/service"
	"meli_listing_v1/internal/service/ai"
	"meli_listing_v1/pkg/kvstore"
	"meli_listing_v1/pkg/utils"
)

const testJWTSecret = "test-secret"

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&kvstore.Entry{})
	store := kvstore.New(db)

	clientRepo := repository.NewClientRepository(store)
	listingRepo := repository.NewListingRepository(store)
	auditRepo := repository.NewAuditLogRepository(store)

	log := zap.NewNop()
	// Gemini 无密钥：生成请求会以可预期的配置错误失败
	registry := ai.NewRegistry(ai.NewGeminiGenerator("", ""), ai.NewOpenAIGenerator())

	clientSvc := service.NewClientService(clientRepo)
	listingSvc := service.NewListingService(listingRepo, auditRepo, registry, log)
	mlAuthSvc := service.NewMLAuthService(&service.MLAuthConfig{
		AppID:       "test_app",
		RedirectURI: "http://localhost/callback",
	}, clientRepo, utils.NewStateCache(), log)

	r := gin.New()
	InitRoutes(r, &Controllers{
		Client:  controller.NewClientController(clientSvc),
		Session: controller.NewSessionController(log),
		Listing: controller.NewListingController(listingSvc, auditRepo),
		MLAuth:  controller.NewMLAuthController(mlAuthSvc),
	}, testJWTSecret)

	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_TenantScopedRoutesRequireHeader(t *testing.T) {
	r := setupRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/listings"},
		{http.MethodPost, "/api/listings/generate"},
		{http.MethodPost, "/api/listings/sync"},
		{http.MethodGet, "/api/ml/status"},
		{http.MethodGet, "/api/audit"},
	}
	for _, tc := range paths {
		w := doJSON(r, tc.method, tc.path, map[string]string{}, nil)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: code = %d, want 403", tc.method, tc.path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Security Violation: Missing Tenant Context (RLS)") {
			t.Errorf("%s %s: body = %s", tc.method, tc.path, w.Body.String())
		}
	}
}

func TestRouter_ClientsLifecycle(t *testing.T) {
	r := setupRouter(t)

	// 列表触发演示数据播种
	w := doJSON(r, http.MethodGet, "/api/clients", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list code = %d", w.Code)
	}
	var clients []model.Client
	json.Unmarshal(w.Body.Bytes(), &clients)
	if len(clients) != 2 {
		t.Fatalf("clients = %d, want 2", len(clients))
	}

	// 创建
	w = doJSON(r, http.MethodPost, "/api/clients", map[string]string{
		"name": "Loja Teste", "email": "t@t.com",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create code = %d: %s", w.Code, w.Body.String())
	}
	var created model.Client
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Status != model.ClientStatusActive {
		t.Errorf("status = %s", created.Status)
	}

	// 缺必填字段
	w = doJSON(r, http.MethodPost, "/api/clients", map[string]string{"name": "Sem Email"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺 email: code = %d", w.Code)
	}

	// 不存在的客户
	w = doJSON(r, http.MethodGet, "/api/clients/ghost", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("ghost: code = %d", w.Code)
	}
}

func TestRouter_SyncAndListScoped(t *testing.T) {
	r := setupRouter(t)
	tenant := map[string]string{"X-Tenant-Id": "cli_demo_1"}

	w := doJSON(r, http.MethodPost, "/api/listings/sync", map[string]interface{}{
		"title": "Garrafa Térmica", "price": 89.9,
	}, tenant)
	if w.Code != http.StatusCreated {
		t.Fatalf("sync code = %d: %s", w.Code, w.Body.String())
	}
	var listing model.ListingStatus
	json.Unmarshal(w.Body.Bytes(), &listing)
	if listing.Status != model.ListingStatusSynced || listing.TenantID != "cli_demo_1" {
		t.Errorf("listing = %+v", listing)
	}

	// 另一租户不可见
	w = doJSON(r, http.MethodGet, "/api/listings", nil, map[string]string{"X-Tenant-Id": "cli_demo_2"})
	var other []model.ListingStatus
	json.Unmarshal(w.Body.Bytes(), &other)
	if len(other) != 0 {
		t.Errorf("租户隔离失效: %+v", other)
	}
}

func TestRouter_GenerateWithoutKeyReturns422(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/listings/generate", map[string]string{
		"nome_do_produto": "Garrafa",
	}, map[string]string{"X-Tenant-Id": "cli_demo_1"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Gemini API Key not found") {
		t.Errorf("body = %s", w.Body.String())
	}

	// 审计先行：失败的尝试也留痕
	w = doJSON(r, http.MethodGet, "/api/audit", nil, map[string]string{"X-Tenant-Id": "cli_demo_1"})
	var logs []model.AuditLogEntry
	json.Unmarshal(w.Body.Bytes(), &logs)
	if len(logs) != 1 || logs[0].Action != model.AuditActionGenerateListing {
		t.Errorf("audit = %+v", logs)
	}
}

func TestRouter_OAuthFlowOverHTTP(t *testing.T) {
	r := setupRouter(t)

	// connect 与 auth/start 等价
	for _, path := range []string{"/api/ml/connect", "/api/ml/auth/start"} {
		w := doJSON(r, http.MethodPost, path, map[string]string{"clientId": "cli_demo_1"}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: code = %d: %s", path, w.Code, w.Body.String())
		}
		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)
		if !strings.Contains(resp["authUrl"], "code_challenge_method=S256") {
			t.Errorf("%s: authUrl = %s", path, resp["authUrl"])
		}
	}

	// 无效 state
	w := doJSON(r, http.MethodGet, "/api/ml/callback?code=x&state=forjado", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("forged state: code = %d", w.Code)
	}

	// 合法回调
	w = doJSON(r, http.MethodPost, "/api/ml/connect", map[string]string{"clientId": "cli_demo_1"}, nil)
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	state := extractQueryParam(t, resp["authUrl"], "state")

	w = doJSON(r, http.MethodGet, "/api/ml/callback?code=x&state="+state, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("callback code = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/ml/status", nil, map[string]string{"X-Tenant-Id": "cli_demo_1"})
	if !strings.Contains(w.Body.String(), `"connected":true`) {
		t.Errorf("status = %s", w.Body.String())
	}
}

func TestRouter_SwitchTenantAcknowledges(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/session/switch-tenant", map[string]string{"tenantId": "cli_demo_2"}, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"success":true`) {
		t.Errorf("code = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRouter_InvalidBearerRejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodGet, "/api/clients", nil, map[string]string{
		"Authorization": "Bearer token.invalido.aqui",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}

	// 无令牌照常放行
	w = doJSON(r, http.MethodGet, "/api/clients", nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("无令牌: code = %d", w.Code)
	}
}

func extractQueryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	idx := strings.Index(rawURL, key+"=")
	if idx < 0 {
		t.Fatalf("URL 缺 %s: %s", key, rawURL)
	}
	val := rawURL[idx+len(key)+1:]
	if amp := strings.Index(val, "&"); amp >= 0 {
		val = val[:amp]
	}
	return val
}
