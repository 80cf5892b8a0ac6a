package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"meli_listing_v1/internal/model"
	"meli_listing_v1/pkg/kvstore"
)

// ErrClientNotFound 客户不存在
var ErrClientNotFound = errors.New("client not found")

// ==================== 仓储接口 ====================

// ClientRepository 客户仓储接口
type ClientRepository interface {
	// List 返回全部客户；首次读取为空时写入两条演示数据
	List() ([]model.Client, error)
	GetByID(id string) (*model.Client, error)
	// Create 分配 ID、填默认状态后追加
	Create(req model.Client) (*model.Client, error)
	// Update 按 ID 覆盖既有记录 (目前仅用于翻转 isConnected)
	Update(client model.Client) error
}

// ==================== 仓储实现 ====================

type clientRepo struct {
	store *kvstore.Store
}

// NewClientRepository 创建客户仓储
func NewClientRepository(store *kvstore.Store) ClientRepository {
	return &clientRepo{store: store}
}

func (r *clientRepo) List() ([]model.Client, error) {
	var clients []model.Client
	ok, err := r.store.Get(kvstore.KeyClients, &clients)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 首次访问：写入演示客户（一个已关联、一个未关联）
		clients = seedClients()
		if err := r.store.Put(kvstore.KeyClients, clients); err != nil {
			return nil, err
		}
	}
	return clients, nil
}

func (r *clientRepo) GetByID(id string) (*model.Client, error) {
	clients, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, ErrClientNotFound
}

func (r *clientRepo) Create(req model.Client) (*model.Client, error) {
	clients, err := r.List()
	if err != nil {
		return nil, err
	}

	req.ID = uuid.NewString()
	req.Status = model.ClientStatusActive
	req.IsConnected = false
	req.CreatedAt = time.Now()

	clients = append(clients, req)
	if err := r.store.Put(kvstore.KeyClients, clients); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *clientRepo) Update(client model.Client) error {
	clients, err := r.List()
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == client.ID {
			clients[i] = client
			return r.store.Put(kvstore.KeyClients, clients)
		}
	}
	return ErrClientNotFound
}

// seedClients 演示数据，与前端原型保持一致
func seedClients() []model.Client {
	now := time.Now()
	return []model.Client{
		{
			ID:          "cli_demo_1",
			Name:        "Loja Exemplo Ltda",
			Cnpj:        "12.345.678/0001-99",
			Email:       "contato@lojaexemplo.com.br",
			Status:      model.ClientStatusActive,
			IsConnected: false,
			CreatedAt:   now,
		},
		{
			ID:          "cli_demo_2",
			Name:        "Mega Varejo SA",
			Cnpj:        "98.765.432/0001-88",
			Email:       "sac@megavarejo.com",
			Status:      model.ClientStatusActive,
			IsConnected: true,
			CreatedAt:   now.Add(-24 * time.Hour),
		},
	}
}
