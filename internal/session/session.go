// Package session 持有进程级会话状态：当前租户与应用设置。
// 显式构造、显式传递，取代散落的全局可变状态；生命周期由启动方负责。
package session

import (
	"context"

	"go.uber.org/zap"

	"meli_listing_v1/internal/apiclient"
	"meli_listing_v1/internal/model"
	"meli_listing_v1/pkg/kvstore"
)

// ==================== 租户会话 ====================

// TenantSession 当前租户指针 + 设置对象，所有租户切换都经过这里
// 并发模型：单逻辑执行线；SwitchTenant 并发调用时以最后一次写入为准
type TenantSession struct {
	api   *apiclient.Client
	store *kvstore.Store
	log   *zap.Logger

	current  *model.Client
	settings model.AppSettings
}

// New 创建会话（设置先取默认值，Initialize 时再合并持久化内容）
func New(api *apiclient.Client, store *kvstore.Store, log *zap.Logger) *TenantSession {
	return &TenantSession{
		api:      api,
		store:    store,
		log:      log,
		settings: model.DefaultSettings(),
	}
}

// Initialize 启动恢复流程
// 1. 持久化设置合并到默认值上（缺失键保持默认）
// 2. 拉取可见客户列表
// 3. 命中已存租户则选中，否则回落到第一个客户，再没有则保持未选
// 任何一步失败只记日志，按“未选租户”处理，不中断启动
func (s *TenantSession) Initialize(ctx context.Context) {
	// json.Unmarshal 到默认值之上即是合并语义：未出现的键不被触碰
	stored := model.DefaultSettings()
	if ok, err := s.store.Get(kvstore.KeyAppSettings, &stored); err != nil {
		s.log.Warn("failed to load stored settings", zap.Error(err))
	} else if ok {
		s.settings = stored
	}

	var clients []model.Client
	if err := s.api.Get(ctx, "/clients", true, &clients); err != nil {
		s.log.Error("failed to initialize tenant session", zap.Error(err))
		return
	}

	var active *model.Client
	if storedID, ok, _ := s.store.GetString(kvstore.KeyTenantID); ok {
		for i := range clients {
			if clients[i].ID == storedID {
				active = &clients[i]
				break
			}
		}
	}
	if active == nil && len(clients) > 0 {
		active = &clients[0]
	}

	if active != nil {
		if err := s.SwitchTenant(ctx, *active); err != nil {
			s.log.Error("failed to select initial tenant", zap.Error(err))
		}
	}
}

// SwitchTenant 切换当前租户，这是“当前租户”在全系统的唯一语义
// 顺序：先同步持久化租户 ID（后续步骤失败也保证重载可见）
// -> 尽力通知后端（审计侧信道，失败记日志后吞掉）-> 更新内存指针
func (s *TenantSession) SwitchTenant(ctx context.Context, client model.Client) error {
	if err := s.store.Put(kvstore.KeyTenantID, client.ID); err != nil {
		return err
	}

	if err := s.api.Post(ctx, "/session/switch-tenant", map[string]string{"tenantId": client.ID}, true, nil); err != nil {
		// 唯一许可的吞错点
		s.log.Warn("backend switch-tenant notification failed", zap.Error(err))
	}

	s.current = &client
	return nil
}

// UpdateSettings 合并部分字段、立即持久化、同步返回合并结果
func (s *TenantSession) UpdateSettings(patch model.AppSettingsPatch) (model.AppSettings, error) {
	merged := patch.Apply(s.settings)
	if err := s.store.Put(kvstore.KeyAppSettings, merged); err != nil {
		return s.settings, err
	}
	s.settings = merged
	return merged, nil
}

// CurrentTenant 当前租户，未选中时为 nil
func (s *TenantSession) CurrentTenant() *model.Client {
	return s.current
}

// Settings 当前设置快照
func (s *TenantSession) Settings() model.AppSettings {
	return s.settings
}
