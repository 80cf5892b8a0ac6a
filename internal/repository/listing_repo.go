package repository

import (
	"meli_listing_v1/internal/model"
	"meli_listing_v1/pkg/kvstore"
)

// ==================== 仓储接口 ====================

// ListingRepository 商品发布记录仓储接口
// 读取一律按租户过滤，这里是行级安全模拟的落点之一
type ListingRepository interface {
	ListByTenant(tenantID string) ([]model.ListingStatus, error)
	Append(listing model.ListingStatus) error
}

// ==================== 仓储实现 ====================

type listingRepo struct {
	store *kvstore.Store
}

// NewListingRepository 创建发布记录仓储
func NewListingRepository(store *kvstore.Store) ListingRepository {
	return &listingRepo{store: store}
}

func (r *listingRepo) ListByTenant(tenantID string) ([]model.ListingStatus, error) {
	var all []model.ListingStatus
	if _, err := r.store.Get(kvstore.KeyListings, &all); err != nil {
		return nil, err
	}

	filtered := make([]model.ListingStatus, 0, len(all))
	for _, l := range all {
		if l.TenantID == tenantID {
			filtered = append(filtered, l)
		}
	}
	return filtered, nil
}

func (r *listingRepo) Append(listing model.ListingStatus) error {
	var all []model.ListingStatus
	if _, err := r.store.Get(kvstore.KeyListings, &all); err != nil {
		return err
	}
	all = append(all, listing)
	return r.store.Put(kvstore.KeyListings, all)
}
