package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"meli_listing_v1/internal/api/dto"
)

// ==================== OpenAI 实现 ====================

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAIGenerator 供应商 B：凭证由调用方（设置页）提供
type OpenAIGenerator struct {
	BaseURL string // 可覆盖，测试用
	Model   string
	client  *resty.Client
}

// NewOpenAIGenerator 创建 OpenAI 生成器
func NewOpenAIGenerator() *OpenAIGenerator {
	return &OpenAIGenerator{
		BaseURL: defaultOpenAIBaseURL,
		Model:   "gpt-4-turbo",
		client:  resty.New().SetTimeout(60 * time.Second),
	}
}

var _ Generator = (*OpenAIGenerator)(nil)

// chat/completions 应答结构
type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate 调用 OpenAI chat/completions 生成结构化文案
func (g *OpenAIGenerator) Generate(ctx context.Context, data dto.ProductData, credential string) (*dto.GeneratedContent, error) {
	// 凭证检查必须发生在任何网络调用之前
	if credential == "" {
		return nil, ErrMissingOpenAIKey
	}

	reqBody := map[string]interface{}{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemInstruction + " You are a helpful assistant designed to output JSON."},
			{"role": "user", "content": RenderPrompt(data)},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     temperature,
	}

	var result openAIResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(credential).
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		SetResult(&result).
		SetError(&result).
		Post(g.BaseURL + "/v1/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("OpenAI request failed: %v", err)
	}

	if resp.IsError() {
		if result.Error != nil && result.Error.Message != "" {
			return nil, fmt.Errorf("OpenAI API Error: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("OpenAI API Error: %s", resp.Status())
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty response from AI")
	}

	return parseContent(result.Choices[0].Message.Content)
}
