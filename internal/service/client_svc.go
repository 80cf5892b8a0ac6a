package service

import (
	"context"
	"errors"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/model"
	"meli_listing_v1/internal/repository"
)

// ==================== 客户服务 ====================

// ClientService 客户（租户）管理
type ClientService struct {
	clients repository.ClientRepository
}

// NewClientService 创建客户服务
func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// List 返回调用方可见的全部客户（本范围内不做用户级过滤）
// 这是唯一允许跳过租户上下文的读操作：它回答“有哪些租户可选”
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clients.List()
}

// Get 按 ID 查客户
func (s *ClientService) Get(ctx context.Context, id string) (*model.Client, error) {
	return s.clients.GetByID(id)
}

// Create 新建客户：状态默认 Ativo，未关联，创建时间由仓储填充
func (s *ClientService) Create(ctx context.Context, req dto.CreateClientReq) (*model.Client, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	return s.clients.Create(model.Client{
		Name:  req.Name,
		Cnpj:  req.Cnpj,
		Email: req.Email,
	})
}
