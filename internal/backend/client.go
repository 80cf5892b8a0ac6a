// Package backend 定义前端与后端之间的传输能力接口。
// 两个实现：内存模拟器（开发演示）与真实 HTTP 客户端，启动时按配置二选一。
package backend

import (
	"context"
	"encoding/json"
	"errors"
)

// ==================== 请求上下文 ====================

// RequestContext 每次调用构造一次的类型化请求上下文
// 取代松散的 header 字典：租户检查因此成为显式前置条件
type RequestContext struct {
	TenantID  string // 为空表示未选租户
	AuthToken string // 为空时允许匿名调用
}

// ==================== 能力接口 ====================

// Client 后端传输能力
type Client interface {
	// Do 发起一次逻辑调用，body 可为 nil；应答为原始 JSON
	Do(ctx context.Context, method, endpoint string, body interface{}, rc RequestContext) (json.RawMessage, error)
}

// ErrEndpointNotFound 未匹配到端点/方法组合
var ErrEndpointNotFound = errors.New("endpoint not found")
