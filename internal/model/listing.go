package model

import "time"

// ListingStatus 商品发布记录
// TenantID 为租户外键，所有读写必须按其过滤（行级安全模拟）
type ListingStatus struct {
	ID          string    `json:"id"` // 平台分配或本地生成，如 MLB123456789
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"lastUpdated"`
	TenantID    string    `json:"tenantId"`
	MeliItemID  string    `json:"meliItemId,omitempty"`
}

// ==================== 状态常量 ====================

const (
	ListingStatusDraft  = "draft"
	ListingStatusSynced = "synced"
	ListingStatusError  = "error"
)
