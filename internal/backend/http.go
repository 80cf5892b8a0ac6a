package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 真实传输 ====================

// HTTPBackend 真实后端的 HTTP 客户端
// 约定与模拟器一致：Bearer 令牌按有即带，X-Tenant-Id 只在租户范围调用时附加
type HTTPBackend struct {
	baseURL string
	client  *resty.Client
}

var _ Client = (*HTTPBackend)(nil)

// NewHTTPBackend 创建 HTTP 传输客户端
func NewHTTPBackend(baseURL string) *HTTPBackend {
	client := resty.New().
		SetTimeout(20 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPBackend{
		baseURL: baseURL,
		client:  client,
	}
}

// Do 转发一次逻辑调用到远端
func (h *HTTPBackend) Do(ctx context.Context, method, endpoint string, body interface{}, rc RequestContext) (json.RawMessage, error) {
	req := h.client.R().SetContext(ctx)

	if rc.AuthToken != "" {
		req.SetAuthToken(rc.AuthToken)
	}
	if rc.TenantID != "" {
		req.SetHeader("X-Tenant-Id", rc.TenantID)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, h.baseURL+endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return nil, fmt.Errorf("Auth Error")
	case resp.StatusCode() == http.StatusNoContent:
		return json.RawMessage(`{}`), nil
	case resp.IsError():
		return nil, fmt.Errorf("API Error %d: %s", resp.StatusCode(), resp.String())
	}

	return json.RawMessage(resp.Body()), nil
}
