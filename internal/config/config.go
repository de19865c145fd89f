package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Backend strategy names accepted in CHAT_BACKEND.
const (
	BackendMock   = "mock"
	BackendOpenAI = "openai"
	BackendProxy  = "proxy"
)

type Config struct {
	AppPort       int     `mapstructure:"APP_PORT"`
	AppName       string  `mapstructure:"PUBLIC_APP_NAME"`
	AppVersion    string  `mapstructure:"PUBLIC_APP_VERSION"`
	ChatBackend   string  `mapstructure:"CHAT_BACKEND"`
	BackendURL    string  `mapstructure:"BACKEND_URL"`
	OpenAIKey     string  `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string  `mapstructure:"OPENAI_BASE_URL"`
	MainModel     string  `mapstructure:"MAIN_MODEL"`
	Temperature   float64 `mapstructure:"TEMPERATURE"`
	MaxTokens     int     `mapstructure:"MAX_TOKENS"`
	LogLevel      string  `mapstructure:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 3000)
	viper.SetDefault("PUBLIC_APP_NAME", "AI Chatbot RAG")
	viper.SetDefault("PUBLIC_APP_VERSION", "1.0.0")
	viper.SetDefault("CHAT_BACKEND", BackendMock)
	viper.SetDefault("BACKEND_URL", "http://localhost:8000")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("MAIN_MODEL", "gpt-3.5-turbo")
	viper.SetDefault("TEMPERATURE", 0.7)
	viper.SetDefault("MAX_TOKENS", 1000)
	viper.SetDefault("LOG_LEVEL", "INFO")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
