// Package ai 把两个可互换的文案生成供应商抽象为同一能力接口。
// 路由层按标签选择实现，不在调用点做字符串分支。
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"meli_listing_v1/internal/api/dto"
	"meli_listing_v1/internal/model"
)

// ==================== 错误 ====================

// 两个供应商的缺失凭证错误必须可区分，前端据此引导用户去设置页或环境配置
var (
	ErrMissingGeminiKey = errors.New("Gemini API Key not found. Please check your environment configuration.")
	ErrMissingOpenAIKey = errors.New("OpenAI API Key is required. Please configure it in Settings.")
)

// ==================== 能力接口 ====================

// Generator 文案生成能力接口
// credential 为调用方提供的凭证（OpenAI 用），Gemini 实现忽略该参数
type Generator interface {
	Generate(ctx context.Context, data dto.ProductData, credential string) (*dto.GeneratedContent, error)
}

// ==================== 供应商注册表 ====================

// Registry 按供应商标签持有生成器
type Registry struct {
	generators map[model.AIProvider]Generator
}

func NewRegistry(gemini, openai Generator) *Registry {
	return &Registry{
		generators: map[model.AIProvider]Generator{
			model.ProviderGemini: gemini,
			model.ProviderOpenAI: openai,
		},
	}
}

// For 取指定供应商的生成器；空值回落到 Gemini（与前端默认一致）
func (r *Registry) For(provider model.AIProvider) (Generator, error) {
	if provider == "" {
		provider = model.ProviderGemini
	}
	g, ok := r.generators[provider]
	if !ok {
		return nil, fmt.Errorf("unknown AI provider: %s", provider)
	}
	return g, nil
}

// ==================== 提示词 ====================

// 固定创造力参数，两个供应商一致，当前范围内不可配置
const temperature = 0.7

const systemInstruction = "Você é um especialista em E-commerce e SEO para Mercado Livre (Brasil). Gere todo o conteúdo em Português do Brasil."

// promptTemplate 核心提示词模板，七个占位符对应 ProductData 的七个字段
const promptTemplate = `
⚙️ CONTEXTO DO SISTEMA

Você atua como um gerador profissional de anúncios para Mercado Livre, especializado em:
SEO aplicado a marketplaces
geração em escala
múltiplas variações de títulos
expansão semântica de palavras-chave
copywriting orientado por intenção de busca
Objetivo: transformar um único produto em dezenas de anúncios otimizados, limpos e prontos para publicação.

📥 INPUT
Produto: {{nome_do_produto}}
Categoria: {{categoria}}
Características: {{caracteristicas}}
Público-alvo: {{publico_alvo}}
Diferencial: {{diferencial_produto}}
Concorrentes: {{concorrentes}}
Palavras-chave base: {{palavras_chave_base}}

🏆 TAREFA PRINCIPAL
Processar os dados acima e gerar a saída completa.
`

// RenderPrompt 将产品数据代入模板，空字段统一替换为 N/A
func RenderPrompt(data dto.ProductData) string {
	fields := map[string]string{
		"nome_do_produto":     data.NomeDoProduto,
		"categoria":           data.Categoria,
		"caracteristicas":     data.Caracteristicas,
		"publico_alvo":        data.PublicoAlvo,
		"diferencial_produto": data.DiferencialProduto,
		"concorrentes":        data.Concorrentes,
		"palavras_chave_base": data.PalavrasChaveBase,
	}

	prompt := promptTemplate
	for key, value := range fields {
		if value == "" {
			value = "N/A"
		}
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return prompt
}

// ==================== 结果校验 ====================

// ValidateContent 严格校验生成结果：所有字段必填，不返回部分结果
func ValidateContent(c *dto.GeneratedContent) error {
	if c == nil {
		return errors.New("empty generation result")
	}
	if len(c.Keywords) == 0 {
		return errors.New("generated content missing keywords")
	}
	if len(c.Titles) == 0 {
		return errors.New("generated content missing titles")
	}
	if len(c.Tags) == 0 {
		return errors.New("generated content missing tags")
	}
	if len(c.ImagePrompts) == 0 {
		return errors.New("generated content missing imagePrompts")
	}

	d := c.Description
	if d.Introduction == "" || d.Specs == "" || d.Tips == "" || d.Conclusion == "" {
		return errors.New("generated description is incomplete")
	}
	if len(d.Benefits) == 0 {
		return errors.New("generated description missing benefits")
	}
	if len(d.Faq) == 0 {
		return errors.New("generated description missing faq")
	}
	for i, faq := range d.Faq {
		if faq.Question == "" || faq.Answer == "" {
			return fmt.Errorf("faq entry %d missing question or answer", i)
		}
	}
	return nil
}

// parseContent 反序列化并校验生成的 JSON 文本
func parseContent(raw string) (*dto.GeneratedContent, error) {
	// 清洗可能存在的 markdown 符号 (```json ... ```)
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var content dto.GeneratedContent
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("failed to parse generated content: %v | raw: %s", err, truncate(raw, 200))
	}
	if err := ValidateContent(&content); err != nil {
		return nil, err
	}
	return &content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
