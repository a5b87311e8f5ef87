package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DefaultTimeZone 是 BOT_TZ 未设置时的默认时区，也是日期格式化的兜底时区。
const DefaultTimeZone = "America/Costa_Rica"

// Config 聚合整个服务的配置项。
type Config struct {
	Server ServerConfig
	Bot    BotConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	bot, err := loadBotConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Bot: bot}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	SandboxEnabled bool
}

type serverEnv struct {
	Port           string `env:"PORT" envDefault:"3000"`
	SandboxEnabled bool   `env:"SANDBOX_ENABLED" envDefault:"false"`
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	var raw serverEnv
	if err := env.Parse(&raw); err != nil {
		return ServerConfig{}, fmt.Errorf("parse server env: %w", err)
	}

	port := strings.TrimSpace(raw.Port)
	if port == "" {
		port = "3000"
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	addr := port
	if !strings.Contains(port, ":") {
		addr = ":" + port
	}

	return ServerConfig{Addr: addr, SandboxEnabled: raw.SandboxEnabled}, nil
}

// BotConfig 描述机器人命令路由相关配置。
type BotConfig struct {
	TimeZone string `env:"BOT_TZ" envDefault:"America/Costa_Rica"`
	MaxMedia int    `env:"MAX_MEDIA" envDefault:"10"`
}

func loadBotConfig() (BotConfig, error) {
	var cfg BotConfig
	if err := env.Parse(&cfg); err != nil {
		return BotConfig{}, fmt.Errorf("parse bot env: %w", err)
	}

	cfg.TimeZone = strings.TrimSpace(cfg.TimeZone)
	if cfg.TimeZone == "" {
		cfg.TimeZone = DefaultTimeZone
	}
	if cfg.MaxMedia < 1 {
		return BotConfig{}, fmt.Errorf("invalid MAX_MEDIA value %d: must be >= 1", cfg.MaxMedia)
	}

	return cfg, nil
}
