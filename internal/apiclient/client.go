// Package apiclient 是界面侧的出站请求入口：
// 组装请求上下文（令牌、租户）、委托给配置的后端实现、规整应答中的日期。
package apiclient

import (
	"context"
	"encoding/json"

	"meli_listing_v1/internal/backend"
	"meli_listing_v1/pkg/kvstore"
)

// ==================== API 客户端 ====================

type Client struct {
	backend backend.Client
	store   *kvstore.Store
}

// New 创建 API 客户端；backend 由启动配置决定是模拟器还是真实传输
func New(b backend.Client, store *kvstore.Store) *Client {
	return &Client{backend: b, store: store}
}

// requestContext 每次调用构造一次：令牌按有即带，租户可按需跳过
func (c *Client) requestContext(skipTenant bool) backend.RequestContext {
	rc := backend.RequestContext{}
	if token, ok, _ := c.store.GetString(kvstore.KeyAuthToken); ok {
		rc.AuthToken = token
	}
	if !skipTenant {
		if tenantID, ok, _ := c.store.GetString(kvstore.KeyTenantID); ok {
			rc.TenantID = tenantID
		}
	}
	return rc
}

// Get 发起读调用并解码到 out（可为 nil）
func (c *Client) Get(ctx context.Context, endpoint string, skipTenant bool, out interface{}) error {
	return c.request(ctx, "GET", endpoint, nil, skipTenant, out)
}

// Post 发起写调用并解码到 out（可为 nil）
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, skipTenant bool, out interface{}) error {
	return c.request(ctx, "POST", endpoint, body, skipTenant, out)
}

func (c *Client) request(ctx context.Context, method, endpoint string, body interface{}, skipTenant bool, out interface{}) error {
	raw, err := c.backend.Do(ctx, method, endpoint, body, c.requestContext(skipTenant))
	if err != nil {
		// 后端与生成器的错误原样向上传播
		return err
	}
	return decode(raw, out)
}

// decode 解码应答；动态结构（map/slice）额外做递归日期规整
func decode(raw json.RawMessage, out interface{}) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}

	switch v := out.(type) {
	case *map[string]interface{}:
		*v = NormalizeDates(*v).(map[string]interface{})
	case *[]interface{}:
		*v = NormalizeDates(*v).([]interface{})
	case *interface{}:
		*v = NormalizeDates(*v)
	}
	return nil
}
