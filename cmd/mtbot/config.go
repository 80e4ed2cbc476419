package main

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"ex-mtbot/internal/session"
	"ex-mtbot/pkg/botapi"
)

const (
	envConfigFile         = "MTBOT_CONFIG"
	defaultConfigFilePath = "config/mtbot.yaml"
)

//go:embed default.yaml
var defaultConfig []byte

type appConfig struct {
	LogLevel string         `yaml:"log_level" env:"MTBOT_LOG_LEVEL"`
	Telegram telegramConfig `yaml:"telegram"`
	Session  session.Config `yaml:"session"`
	Client   clientConfig   `yaml:"client"`
	Polling  pollingConfig  `yaml:"polling"`
	Metrics  metricsConfig  `yaml:"metrics"`
}

type telegramConfig struct {
	AppID         int    `yaml:"app_id" env:"MTBOT_APP_ID"`
	AppHash       string `yaml:"app_hash" env:"MTBOT_APP_HASH"`
	BotToken      string `yaml:"bot_token" env:"MTBOT_BOT_TOKEN"`
	TestDC        bool   `yaml:"test_dc" env:"MTBOT_TEST_DC"`
	ServerAddress string `yaml:"server_address" env:"MTBOT_SERVER_ADDRESS"`
}

type clientConfig struct {
	RPCTimeout       string `yaml:"rpc_timeout" env:"MTBOT_RPC_TIMEOUT"`
	StickerCacheSize int    `yaml:"sticker_cache_size" env:"MTBOT_STICKER_CACHE_SIZE"`
	UpdateBuffer     int    `yaml:"update_buffer" env:"MTBOT_UPDATE_BUFFER"`
	ResolveReplies   bool   `yaml:"resolve_replies" env:"MTBOT_RESOLVE_REPLIES"`
}

type pollingConfig struct {
	// Timeout is the long-poll wait in seconds.
	Timeout        int      `yaml:"timeout" env:"MTBOT_POLL_TIMEOUT"`
	Limit          int      `yaml:"limit" env:"MTBOT_POLL_LIMIT"`
	AllowedUpdates []string `yaml:"allowed_updates" env:"MTBOT_ALLOWED_UPDATES"`
}

type metricsConfig struct {
	Listen string `yaml:"listen" env:"MTBOT_METRICS_LISTEN"`
}

// loadConfig layers the embedded defaults, the config file at path and
// MTBOT_* environment variables, in that order.
func loadConfig(path string) (appConfig, error) {
	var cfg appConfig
	if err := yaml.Unmarshal(defaultConfig, &cfg); err != nil {
		return appConfig{}, fmt.Errorf("parse embedded config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Warn("config file not found, using defaults", "path", path)
		case err != nil:
			return appConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return appConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("read env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return appConfig{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func resolveConfigFilePath() string {
	if configFile := strings.TrimSpace(os.Getenv(envConfigFile)); configFile != "" {
		return configFile
	}

	return defaultConfigFilePath
}

func (c appConfig) validate() error {
	var errs []error
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Telegram.AppID <= 0 {
		errs = append(errs, errors.New("telegram.app_id is required"))
	}
	if strings.TrimSpace(c.Telegram.AppHash) == "" {
		errs = append(errs, errors.New("telegram.app_hash is required"))
	}
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		errs = append(errs, errors.New("telegram.bot_token is required"))
	}
	if err := c.Session.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.rpcTimeout(); err != nil {
		errs = append(errs, err)
	}
	if c.Polling.Timeout < 0 {
		errs = append(errs, fmt.Errorf("polling.timeout must be >= 0, got %d", c.Polling.Timeout))
	}
	if c.Polling.Limit < 1 || c.Polling.Limit > 100 {
		errs = append(errs, fmt.Errorf("polling.limit must be between 1 and 100, got %d", c.Polling.Limit))
	}
	for _, kind := range c.Polling.AllowedUpdates {
		if !knownUpdateKind(botapi.UpdateKind(kind)) {
			errs = append(errs, fmt.Errorf("polling.allowed_updates: unknown kind %q", kind))
		}
	}

	return errors.Join(errs...)
}

func (c appConfig) rpcTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Client.RPCTimeout)
	if raw == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("client.rpc_timeout: %w", err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("client.rpc_timeout: must be >= 0")
	}

	return timeout, nil
}

func (c appConfig) allowedUpdates() []botapi.UpdateKind {
	kinds := make([]botapi.UpdateKind, 0, len(c.Polling.AllowedUpdates))
	for _, kind := range c.Polling.AllowedUpdates {
		kinds = append(kinds, botapi.UpdateKind(kind))
	}

	return kinds
}

func knownUpdateKind(kind botapi.UpdateKind) bool {
	switch kind {
	case botapi.UpdateKindMessage,
		botapi.UpdateKindEditedMessage,
		botapi.UpdateKindChannelPost,
		botapi.UpdateKindEditedChannelPost,
		botapi.UpdateKindMessageReaction,
		botapi.UpdateKindMessageReactionCount,
		botapi.UpdateKindInlineQuery,
		botapi.UpdateKindChosenInlineResult,
		botapi.UpdateKindCallbackQuery,
		botapi.UpdateKindShippingQuery,
		botapi.UpdateKindPreCheckoutQuery,
		botapi.UpdateKindPoll,
		botapi.UpdateKindPollAnswer,
		botapi.UpdateKindMyChatMember,
		botapi.UpdateKindChatMember,
		botapi.UpdateKindChatJoinRequest:
		return true
	default:
		return false
	}
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported level %q", raw)
	}
}
