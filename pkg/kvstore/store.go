package kvstore

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== 模型 ====================

// Entry 键值条目
// 本地键值库：以字符串为键、JSON 序列化存储，代替真实数据库
type Entry struct {
	Key       string         `gorm:"primaryKey;size:128" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Entry) TableName() string {
	return "kv_entries"
}

// ==================== 常用键 ====================

const (
	KeyTenantID    = "tenant_id"    // 当前选中租户
	KeyAppSettings = "app_settings" // 应用设置
	KeyAuthToken   = "auth_token"   // Bearer 令牌
	KeyClients     = "db_clients"   // 模拟表：客户
	KeyListings    = "db_listings"  // 模拟表：商品列表
	KeyAuditLogs   = "db_audit_logs"
)

// ==================== Store ====================

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get 读取键对应的 JSON 值并反序列化到 out
// 键不存在时返回 (false, nil)，out 保持零值
func (s *Store) Get(key string, out interface{}) (bool, error) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return true, err
	}
	return true, nil
}

// GetString 读取字符串值（tenant_id / auth_token 等偏好项）
func (s *Store) GetString(key string) (string, bool, error) {
	var val string
	ok, err := s.Get(key, &val)
	return val, ok, err
}

// Put 序列化 val 并写入，存在则覆盖
func (s *Store) Put(key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	entry := Entry{Key: key, Value: raw, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete 删除键，不存在时静默成功
func (s *Store) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}
