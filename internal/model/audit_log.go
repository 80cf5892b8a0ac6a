package model

import "time"

// AuditLogEntry 审计日志条目
// 仅追加：敏感操作（AI 生成调用）落库后不再修改或删除
type AuditLogEntry struct {
	ID        string                 `json:"id"`
	TenantID  string                 `json:"tenantId"`
	Action    string                 `json:"action"`
	Details   map[string]interface{} `json:"details"`
	Timestamp time.Time              `json:"timestamp"`
}

// ==================== 动作常量 ====================

const (
	AuditActionGenerateListing = "GENERATE_LISTING"
)
