package model

import "time"

// Client 客户（租户）
// 所有商品与审计数据都以 Client.ID 作为租户边界
type Client struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Cnpj        string    `json:"cnpj"` // 巴西税号
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	IsConnected bool      `json:"isConnected"` // 是否已关联 Mercado Livre 账号
	CreatedAt   time.Time `json:"createdAt"`
}

// ==================== 状态常量 ====================

// 界面语言为巴西葡语，状态值与前端保持一致
const (
	ClientStatusActive   = "Ativo"
	ClientStatusInactive = "Inativo"
	ClientStatusPending  = "Pendente"
)
