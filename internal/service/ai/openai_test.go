package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meli_listing_v1/internal/api/dto"
)

func newOpenAIWithServer(t *testing.T, handler http.HandlerFunc) (*OpenAIGenerator, *httptest.Server) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewOpenAIGenerator()
	g.BaseURL = srv.URL
	return g, srv
}

func TestOpenAI_MissingKeyFailsWithoutTransport(t *testing.T) {
	called := false
	g, _ := newOpenAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := g.Generate(context.Background(), sampleProduct(), "")
	if err != ErrMissingOpenAIKey {
		t.Errorf("err = %v, want ErrMissingOpenAIKey", err)
	}
	if called {
		t.Error("缺凭证时不应发起网络请求")
	}
}

func TestOpenAI_GenerateSuccess(t *testing.T) {
	content := validContent()
	inner, _ := json.Marshal(content)

	g, _ := newOpenAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("auth 头 = %s", r.Header.Get("Authorization"))
		}

		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		if body["model"] != "gpt-4-turbo" {
			t.Errorf("model = %v", body["model"])
		}
		if body["temperature"] != 0.7 {
			t.Errorf("temperature = %v", body["temperature"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": string(inner)}},
			},
		})
	})

	got, err := g.Generate(context.Background(), sampleProduct(), "sk-test")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}
	if got.Titles[0] != content.Titles[0] {
		t.Errorf("titles = %v", got.Titles)
	}
}

func TestOpenAI_UpstreamErrorSurfaced(t *testing.T) {
	g, _ := newOpenAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Incorrect API key provided"},
		})
	})

	_, err := g.Generate(context.Background(), sampleProduct(), "sk-bad")
	if err == nil {
		t.Fatal("上游错误应向上传播")
	}
	if got := err.Error(); got != "OpenAI API Error: Incorrect API key provided" {
		t.Errorf("错误信息未带上游细节: %s", got)
	}
}

func TestOpenAI_PartialContentRejected(t *testing.T) {
	g, _ := newOpenAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": `{"keywords": ["só isso"]}`}},
			},
		})
	})

	if _, err := g.Generate(context.Background(), sampleProduct(), "sk-test"); err == nil {
		t.Error("部分结果不应通过校验")
	}
}

func TestOpenAI_EmptyChoicesRejected(t *testing.T) {
	g, _ := newOpenAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	})

	if _, err := g.Generate(context.Background(), sampleProduct(), "sk-test"); err == nil {
		t.Error("空应答不应通过")
	}
}

// 保证空字段也会进入提示词 (N/A)，而不是被序列化丢弃
func TestOpenAI_PromptCarriesNA(t *testing.T) {
	var gotPrompt string
	content := validContent()
	inner, _ := json.Marshal(content)

	g, _ := newOpenAIWithServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		for _, m := range body.Messages {
			if m.Role == "user" {
				gotPrompt = m.Content
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": string(inner)}},
			},
		})
	})

	_, err := g.Generate(context.Background(), dto.ProductData{NomeDoProduto: "Produto X"}, "sk-test")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}
	if want := "Categoria: N/A"; !strings.Contains(gotPrompt, want) {
		t.Errorf("提示词缺少 %q", want)
	}
}
