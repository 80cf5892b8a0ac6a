package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"meli_listing_v1/internal/api/dto"
)

// ==================== Gemini 实现 ====================

// GeminiGenerator 供应商 A：凭证来自环境配置，调用方凭证参数被忽略
type GeminiGenerator struct {
	ApiKey       string
	ModelVersion string
}

// NewGeminiGenerator 创建 Gemini 生成器
func NewGeminiGenerator(apiKey, modelVersion string) *GeminiGenerator {
	if modelVersion == "" {
		modelVersion = "gemini-2.5-flash"
	}
	return &GeminiGenerator{
		ApiKey:       apiKey,
		ModelVersion: modelVersion,
	}
}

var _ Generator = (*GeminiGenerator)(nil)

// responseSchema 要求 Gemini 按 GeneratedContent 的形状输出结构化 JSON
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"keywords": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "25 palavras-chave relevantes para SEO e expansão semântica.",
		},
		"titles": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "40 títulos otimizados (máx 60 chars), variando intenção de busca.",
		},
		"description": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"introduction": {Type: genai.TypeString, Description: "Apresentar o produto como solução."},
				"benefits": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "6 itens persuasivos.",
				},
				"specs": {Type: genai.TypeString, Description: "Atributos técnicos convertidos em vantagens."},
				"faq": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"question": {Type: genai.TypeString},
							"answer":   {Type: genai.TypeString},
						},
					},
					Description: "5 perguntas reais e respostas.",
				},
				"tips":       {Type: genai.TypeString, Description: "Dicas de uso práticas."},
				"conclusion": {Type: genai.TypeString, Description: "Conclusão com CTA."},
			},
		},
		"tags": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "20 tags curtas para SEO (1-3 palavras).",
		},
		"imagePrompts": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "3 prompts detalhados para gerar imagens do produto usando AI.",
		},
	},
	Required: []string{"keywords", "titles", "description", "tags", "imagePrompts"},
}

// Generate 调用 Gemini 生成结构化文案
func (g *GeminiGenerator) Generate(ctx context.Context, data dto.ProductData, _ string) (*dto.GeneratedContent, error) {
	// 凭证检查必须发生在任何网络调用之前
	if g.ApiKey == "" {
		return nil, ErrMissingGeminiKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(g.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("Gemini 初始化失败: %v", err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(g.ModelVersion)
	modelAI.ResponseMIMEType = "application/json"
	modelAI.ResponseSchema = responseSchema
	modelAI.SetTemperature(temperature)
	modelAI.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	resp, err := modelAI.GenerateContent(ctx, genai.Text(RenderPrompt(data)))
	if err != nil {
		return nil, fmt.Errorf("Gemini generation failed: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from AI")
	}

	// Gemini 返回 Parts，取第一个文本段
	var rawJSON string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok && txt != "" {
			rawJSON = string(txt)
			break
		}
	}
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response from AI")
	}

	return parseContent(rawJSON)
}
