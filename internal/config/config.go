package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config 应用配置，全部来自环境变量
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	// 本地存储：postgres DSN 或 sqlite 文件路径（空值用默认文件）
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:""`

	// 后端模式：mock = 内存模拟器，http = 真实传输
	BackendMode string `env:"BACKEND_MODE" envDefault:"mock"`
	APIBaseURL  string `env:"API_BASE_URL" envDefault:"http://localhost:3000/api"`

	// AI 供应商
	GeminiAPIKey string `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Mercado Livre 应用
	MLAppID       string `env:"ML_APP_ID" envDefault:""`
	MLRedirectURI string `env:"ML_REDIRECT_URI" envDefault:"http://localhost:8080/api/ml/callback"`

	// 会话令牌校验密钥
	JWTSecret string `env:"JWT_SECRET" envDefault:"meli-listing-secret-change-in-production"`
}

// Load 读取配置；本地开发时顺带加载 .env
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
