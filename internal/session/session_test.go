package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"meli_listing_v1/internal/apiclient"
	"meli_listing_v1/internal/backend"
	"meli_listing_v1/internal/model"
	"meli_listing_v1/pkg/kvstore"
)

// scriptedBackend 按端点返回预置应答，记录通知调用
type scriptedBackend struct {
	clients       []model.Client
	clientsErr    error
	switchErr     error
	switchCalls   int
	lastSwitchRC  backend.RequestContext
	switchPayload map[string]string
}

func (s *scriptedBackend) Do(ctx context.Context, method, endpoint string, body interface{}, rc backend.RequestContext) (json.RawMessage, error) {
	switch endpoint {
	case "/clients":
		if s.clientsErr != nil {
			return nil, s.clientsErr
		}
		return json.Marshal(s.clients)
	case "/session/switch-tenant":
		s.switchCalls++
		s.lastSwitchRC = rc
		if m, ok := body.(map[string]string); ok {
			s.switchPayload = m
		}
		if s.switchErr != nil {
			return nil, s.switchErr
		}
		return json.RawMessage(`{"success":true}`), nil
	}
	return nil, errors.New("unexpected endpoint: " + endpoint)
}

func setupSession(t *testing.T, b backend.Client) (*TenantSession, *kvstore.Store) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	db.AutoMigrate(&kvstore.Entry{})
	store := kvstore.New(db)
	return New(apiclient.New(b, store), store, zap.NewNop()), store
}

func TestSession_InitializeFallsBackToFirstClient(t *testing.T) {
	b := &scriptedBackend{clients: []model.Client{
		{ID: "cli_1", Name: "Loja 1"},
		{ID: "cli_2", Name: "Loja 2"},
	}}
	s, store := setupSession(t, b)

	s.Initialize(context.Background())

	if s.CurrentTenant() == nil || s.CurrentTenant().ID != "cli_1" {
		t.Fatalf("current = %+v, want cli_1", s.CurrentTenant())
	}
	if id, ok, _ := store.GetString(kvstore.KeyTenantID); !ok || id != "cli_1" {
		t.Errorf("租户 ID 未持久化: %q", id)
	}
	if b.switchCalls != 1 || b.switchPayload["tenantId"] != "cli_1" {
		t.Errorf("后端未收到切换通知: calls=%d payload=%v", b.switchCalls, b.switchPayload)
	}
}

func TestSession_InitializeRestoresStoredTenant(t *testing.T) {
	b := &scriptedBackend{clients: []model.Client{
		{ID: "cli_1", Name: "Loja 1"},
		{ID: "cli_2", Name: "Loja 2"},
	}}
	s, store := setupSession(t, b)
	store.Put(kvstore.KeyTenantID, "cli_2")

	s.Initialize(context.Background())

	if s.CurrentTenant() == nil || s.CurrentTenant().ID != "cli_2" {
		t.Errorf("current = %+v, want cli_2", s.CurrentTenant())
	}
}

func TestSession_InitializeStaleTenantFallsBack(t *testing.T) {
	b := &scriptedBackend{clients: []model.Client{{ID: "cli_1", Name: "Loja 1"}}}
	s, store := setupSession(t, b)
	store.Put(kvstore.KeyTenantID, "cli_removido")

	s.Initialize(context.Background())

	if s.CurrentTenant() == nil || s.CurrentTenant().ID != "cli_1" {
		t.Errorf("失效租户应回落到第一个: %+v", s.CurrentTenant())
	}
}

func TestSession_InitializeListFailureLeavesUnselected(t *testing.T) {
	b := &scriptedBackend{clientsErr: errors.New("backend down")}
	s, _ := setupSession(t, b)

	s.Initialize(context.Background())

	if s.CurrentTenant() != nil {
		t.Errorf("列表失败不应选中租户: %+v", s.CurrentTenant())
	}
	// 设置仍是默认值
	if s.Settings().DefaultProvider != model.ProviderGemini {
		t.Errorf("settings = %+v", s.Settings())
	}
}

func TestSession_SwitchPersistsEvenWhenNotifyFails(t *testing.T) {
	b := &scriptedBackend{switchErr: errors.New("notify failed")}
	s, store := setupSession(t, b)

	err := s.SwitchTenant(context.Background(), model.Client{ID: "cli_9", Name: "Loja 9"})
	if err != nil {
		t.Fatalf("通知失败不应使切换失败: %v", err)
	}
	if s.CurrentTenant() == nil || s.CurrentTenant().ID != "cli_9" {
		t.Errorf("current = %+v", s.CurrentTenant())
	}
	if id, _, _ := store.GetString(kvstore.KeyTenantID); id != "cli_9" {
		t.Errorf("租户 ID 未持久化: %q", id)
	}
}

func TestSession_SwitchNotifySkipsTenantHeader(t *testing.T) {
	b := &scriptedBackend{}
	s, store := setupSession(t, b)
	store.Put(kvstore.KeyAuthToken, "tok_1")

	s.SwitchTenant(context.Background(), model.Client{ID: "cli_1"})

	// 通知走 skipTenant：带令牌、不带租户头
	if b.lastSwitchRC.AuthToken != "tok_1" {
		t.Errorf("通知未带令牌: %+v", b.lastSwitchRC)
	}
	if b.lastSwitchRC.TenantID != "" {
		t.Errorf("通知不应带租户: %+v", b.lastSwitchRC)
	}
}

func TestSession_SettingsMergeRoundtrip(t *testing.T) {
	b := &scriptedBackend{clients: []model.Client{{ID: "cli_1"}}}
	s, store := setupSession(t, b)

	key := "sk-user-key"
	merged, err := s.UpdateSettings(model.AppSettingsPatch{OpenaiApiKey: &key})
	if err != nil {
		t.Fatalf("UpdateSettings 失败: %v", err)
	}
	// 未打补丁的字段保持默认
	if merged.DefaultProvider != model.ProviderGemini || merged.OpenaiApiKey != key {
		t.Errorf("merged = %+v", merged)
	}

	// 新会话从同一存储恢复
	s2 := New(apiclient.New(b, store), store, zap.NewNop())
	s2.Initialize(context.Background())
	if s2.Settings().OpenaiApiKey != key {
		t.Errorf("持久化设置未恢复: %+v", s2.Settings())
	}
	if s2.Settings().DefaultProvider != model.ProviderGemini {
		t.Errorf("缺失键未保持默认: %+v", s2.Settings())
	}
}
