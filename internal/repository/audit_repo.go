package repository

import (
	"time"

	"github.com/google/uuid"

	"meli_listing_v1/internal/model"
	"meli_listing_v1/pkg/kvstore"
)

// ==================== 仓储接口 ====================

// AuditLogRepository 审计日志仓储接口，仅追加
type AuditLogRepository interface {
	Append(tenantID, action string, details map[string]interface{}) error
	ListByTenant(tenantID string) ([]model.AuditLogEntry, error)
}

// ==================== 仓储实现 ====================

type auditLogRepo struct {
	store *kvstore.Store
}

// NewAuditLogRepository 创建审计日志仓储
func NewAuditLogRepository(store *kvstore.Store) AuditLogRepository {
	return &auditLogRepo{store: store}
}

func (r *auditLogRepo) Append(tenantID, action string, details map[string]interface{}) error {
	var logs []model.AuditLogEntry
	if _, err := r.store.Get(kvstore.KeyAuditLogs, &logs); err != nil {
		return err
	}
	logs = append(logs, model.AuditLogEntry{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
	return r.store.Put(kvstore.KeyAuditLogs, logs)
}

func (r *auditLogRepo) ListByTenant(tenantID string) ([]model.AuditLogEntry, error) {
	var logs []model.AuditLogEntry
	if _, err := r.store.Get(kvstore.KeyAuditLogs, &logs); err != nil {
		return nil, err
	}
	filtered := make([]model.AuditLogEntry, 0, len(logs))
	for _, entry := range logs {
		if entry.TenantID == tenantID {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}
