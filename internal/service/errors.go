package service

import "errors"

// ErrMissingTenant 租户上下文缺失
// 任何租户范围的操作都必须先解析到租户，绝不允许静默退化为“全部租户”
var ErrMissingTenant = errors.New("Security Violation: Missing Tenant Context (RLS)")

// ErrInvalidState 授权回调携带的 state 无效或已过期
var ErrInvalidState = errors.New("authorization state is invalid or expired")
