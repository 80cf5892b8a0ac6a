package dto

// ==================== 生成请求 ====================

// ProductData AI 生成的输入：七个必填自由文本字段
// 字段名与提示词模板的占位符一一对应
type ProductData struct {
	NomeDoProduto      string `json:"nome_do_produto"`
	Categoria          string `json:"categoria"`
	Caracteristicas    string `json:"caracteristicas"`
	PublicoAlvo        string `json:"publico_alvo"`
	DiferencialProduto string `json:"diferencial_produto"`
	Concorrentes       string `json:"concorrentes"`
	PalavrasChaveBase  string `json:"palavras_chave_base"`
}

// GenerateListingReq 生成接口请求体 = 产品数据 + 供应商选择
// 供应商字段在进入生成适配器前会被剥离
type GenerateListingReq struct {
	ProductData
	Provider     string `json:"provider,omitempty"`
	OpenaiApiKey string `json:"openaiApiKey,omitempty"`
}

// ==================== 生成结果 ====================

// GeneratedFAQ 问答对，question 与 answer 均不可为空
type GeneratedFAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GeneratedDescription 结构化描述
type GeneratedDescription struct {
	Introduction string         `json:"introduction"`
	Benefits     []string       `json:"benefits"`
	Specs        string         `json:"specs"`
	Faq          []GeneratedFAQ `json:"faq"`
	Tips         string         `json:"tips"`
	Conclusion   string         `json:"conclusion"`
}

// GeneratedContent AI 返回的完整文案，所有字段必填，不接受部分结果
type GeneratedContent struct {
	Keywords     []string             `json:"keywords"`
	Titles       []string             `json:"titles"`
	Description  GeneratedDescription `json:"description"`
	Tags         []string             `json:"tags"`
	ImagePrompts []string             `json:"imagePrompts"`
}

// ==================== 同步 ====================

// SyncListingReq 同步到 Mercado Livre 的请求体
type SyncListingReq struct {
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description interface{} `json:"description,omitempty"`
	Attributes  string      `json:"attributes,omitempty"`
	Images      []string    `json:"images,omitempty"`
}
