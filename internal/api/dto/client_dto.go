package dto

// CreateClientReq 新建客户请求体
type CreateClientReq struct {
	Name  string `json:"name" binding:"required"`
	Cnpj  string `json:"cnpj"`
	Email string `json:"email" binding:"required"`
}

// SwitchTenantReq 切换租户通知（纯审计侧信道）
type SwitchTenantReq struct {
	TenantID string `json:"tenantId"`
}

// SwitchTenantResp 切换租户应答
type SwitchTenantResp struct {
	Success bool `json:"success"`
}

// ConnectReq 发起账号关联
// clientId 与 targetTenantId 为同义字段，前端两处调用各用其一
type ConnectReq struct {
	ClientID       string `json:"clientId,omitempty"`
	TargetTenantID string `json:"targetTenantId,omitempty"`
}

// Target 取两个同义字段中非空的那个
func (r ConnectReq) Target() string {
	if r.TargetTenantID != "" {
		return r.TargetTenantID
	}
	return r.ClientID
}

// ConnectResp 授权跳转地址
type ConnectResp struct {
	AuthURL string `json:"authUrl"`
}

// ConnectionStatusResp 当前租户的关联状态
type ConnectionStatusResp struct {
	Connected bool `json:"connected"`
}
