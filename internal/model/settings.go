package model

// ==================== AI 供应商 ====================

// AIProvider 文案生成供应商标签
type AIProvider string

const (
	ProviderGemini AIProvider = "gemini"
	ProviderOpenAI AIProvider = "openai"
)

// Valid 是否为已知供应商
func (p AIProvider) Valid() bool {
	return p == ProviderGemini || p == ProviderOpenAI
}

// ==================== 应用设置 ====================

// AppSettings 进程级设置，整个浏览器档案一份（非按租户）
type AppSettings struct {
	DefaultProvider AIProvider `json:"defaultProvider"`
	OpenaiApiKey    string     `json:"openaiApiKey,omitempty"`
	// Mercado Livre 应用配置
	MlAppId       string `json:"mlAppId,omitempty"`
	MlRedirectUri string `json:"mlRedirectUri,omitempty"`
}

// DefaultSettings 首次加载的默认值
func DefaultSettings() AppSettings {
	return AppSettings{
		DefaultProvider: ProviderGemini,
	}
}

// AppSettingsPatch 部分更新：nil 字段保持原值
type AppSettingsPatch struct {
	DefaultProvider *AIProvider `json:"defaultProvider,omitempty"`
	OpenaiApiKey    *string     `json:"openaiApiKey,omitempty"`
	MlAppId         *string     `json:"mlAppId,omitempty"`
	MlRedirectUri   *string     `json:"mlRedirectUri,omitempty"`
}

// Apply 将补丁合并到 s 上，返回合并结果
func (p AppSettingsPatch) Apply(s AppSettings) AppSettings {
	if p.DefaultProvider != nil {
		s.DefaultProvider = *p.DefaultProvider
	}
	if p.OpenaiApiKey != nil {
		s.OpenaiApiKey = *p.OpenaiApiKey
	}
	if p.MlAppId != nil {
		s.MlAppId = *p.MlAppId
	}
	if p.MlRedirectUri != nil {
		s.MlRedirectUri = *p.MlRedirectUri
	}
	return s
}
