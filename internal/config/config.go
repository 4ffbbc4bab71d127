package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/bizkeeper/internal/models"
)

const (
	defaultClientConfigPath = "~/.config/bizkeeper/client.toml"
	defaultServerConfigPath = "~/.config/bizkeeper/server.toml"
	defaultClientDBPath     = "~/.local/share/bizkeeper/client.db"
	defaultServerDBPath     = "~/.local/share/bizkeeper/server.db"

	defaultListen            = ":8080"
	defaultRequestTimeout    = 30 * time.Second
	defaultOperationTimeout  = 10 * time.Second
	defaultReconnectAttempts = 5
	defaultReconnectBackoff  = 2 * time.Second
	defaultAccessTokenTTL    = 15 * time.Minute
	defaultRefreshTokenTTL   = 30 * 24 * time.Hour

	// JWTSecretEnv переопределяет jwt_secret из файла
	JWTSecretEnv = "BIZKEEPER_JWT_SECRET"
)

// Client конфигурация клиентского процесса.
// Сетевые настройки (режим, адрес authority, autosync) хранятся в локальной БД, а не здесь.
type Client struct {
	DBPath            string
	LogLevel          string
	LogFormat         string
	Collections       []string
	RequestTimeout    time.Duration
	OperationTimeout  time.Duration
	ReconnectBackoff  time.Duration
	ReconnectAttempts int
}

// Server конфигурация authority
type Server struct {
	Listen          string
	DBPath          string
	JWTSecret       string
	LogLevel        string
	LogFormat       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type rawClient struct {
	DBPath            string   `toml:"db_path" yaml:"db_path"`
	LogLevel          string   `toml:"log_level" yaml:"log_level"`
	LogFormat         string   `toml:"log_format" yaml:"log_format"`
	RequestTimeout    string   `toml:"request_timeout" yaml:"request_timeout"`
	OperationTimeout  string   `toml:"operation_timeout" yaml:"operation_timeout"`
	ReconnectBackoff  string   `toml:"reconnect_backoff" yaml:"reconnect_backoff"`
	Collections       []string `toml:"collections" yaml:"collections"`
	ReconnectAttempts int      `toml:"reconnect_attempts" yaml:"reconnect_attempts"`
}

type rawServer struct {
	Listen          string `toml:"listen" yaml:"listen"`
	DBPath          string `toml:"db_path" yaml:"db_path"`
	JWTSecret       string `toml:"jwt_secret" yaml:"jwt_secret"`
	LogLevel        string `toml:"log_level" yaml:"log_level"`
	LogFormat       string `toml:"log_format" yaml:"log_format"`
	AccessTokenTTL  string `toml:"access_token_ttl" yaml:"access_token_ttl"`
	RefreshTokenTTL string `toml:"refresh_token_ttl" yaml:"refresh_token_ttl"`
}

// DefaultClient возвращает конфигурацию клиента по умолчанию
func DefaultClient() Client {
	return Client{
		DBPath:            mustExpand(defaultClientDBPath),
		LogLevel:          "info",
		LogFormat:         "text",
		Collections:       models.AllCollections(),
		RequestTimeout:    defaultRequestTimeout,
		OperationTimeout:  defaultOperationTimeout,
		ReconnectAttempts: defaultReconnectAttempts,
		ReconnectBackoff:  defaultReconnectBackoff,
	}
}

// DefaultServer возвращает конфигурацию authority по умолчанию
func DefaultServer() Server {
	return Server{
		Listen:          defaultListen,
		DBPath:          mustExpand(defaultServerDBPath),
		LogLevel:        "info",
		LogFormat:       "text",
		AccessTokenTTL:  defaultAccessTokenTTL,
		RefreshTokenTTL: defaultRefreshTokenTTL,
	}
}

// LoadClient читает конфигурацию клиента. Отсутствующий файл означает значения по умолчанию.
func LoadClient(path string) (Client, error) {
	cfg := DefaultClient()

	var raw rawClient
	found, err := load(path, defaultClientConfigPath, &raw)
	if err != nil || !found {
		return cfg, err
	}

	if v := strings.TrimSpace(raw.DBPath); v != "" {
		cfg.DBPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = v
	}
	if len(raw.Collections) > 0 {
		for _, c := range raw.Collections {
			if !models.IsKnownCollection(c) {
				return Client{}, fmt.Errorf("parse config: unknown collection %q", c)
			}
		}
		cfg.Collections = raw.Collections
	}
	if raw.ReconnectAttempts < 0 {
		return Client{}, fmt.Errorf("parse config: reconnect_attempts must be positive")
	}
	if raw.ReconnectAttempts > 0 {
		cfg.ReconnectAttempts = raw.ReconnectAttempts
	}

	durations := []struct {
		dst  *time.Duration
		name string
		raw  string
	}{
		{dst: &cfg.RequestTimeout, name: "request_timeout", raw: raw.RequestTimeout},
		{dst: &cfg.OperationTimeout, name: "operation_timeout", raw: raw.OperationTimeout},
		{dst: &cfg.ReconnectBackoff, name: "reconnect_backoff", raw: raw.ReconnectBackoff},
	}
	for _, d := range durations {
		if err := parseDuration(d.name, d.raw, d.dst); err != nil {
			return Client{}, err
		}
	}

	return cfg, nil
}

// LoadServer читает конфигурацию authority.
// Переменная окружения BIZKEEPER_JWT_SECRET имеет приоритет над файлом.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	var raw rawServer
	found, err := load(path, defaultServerConfigPath, &raw)
	if err != nil {
		return Server{}, err
	}

	if found {
		if v := strings.TrimSpace(raw.Listen); v != "" {
			cfg.Listen = v
		}
		if v := strings.TrimSpace(raw.DBPath); v != "" {
			cfg.DBPath = mustExpand(v)
		}
		if v := strings.TrimSpace(raw.LogLevel); v != "" {
			cfg.LogLevel = v
		}
		if v := strings.TrimSpace(raw.LogFormat); v != "" {
			cfg.LogFormat = v
		}
		cfg.JWTSecret = strings.TrimSpace(raw.JWTSecret)

		if err := parseDuration("access_token_ttl", raw.AccessTokenTTL, &cfg.AccessTokenTTL); err != nil {
			return Server{}, err
		}
		if err := parseDuration("refresh_token_ttl", raw.RefreshTokenTTL, &cfg.RefreshTokenTTL); err != nil {
			return Server{}, err
		}
	}

	if secret := strings.TrimSpace(os.Getenv(JWTSecretEnv)); secret != "" {
		cfg.JWTSecret = secret
	}

	return cfg, nil
}

// load читает файл и разбирает его по расширению (.toml, .yaml, .yml).
// found=false, если файл по умолчанию отсутствует.
func load(path, defaultPath string, dst any) (bool, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultPath
	}

	resolved, err := expandPath(path)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return false, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("config file %s not found", resolved)
		}
		return false, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(resolved)); ext {
	case ".toml":
		err = toml.Unmarshal(data, dst)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, dst)
	default:
		return false, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return false, fmt.Errorf("parse config: %w", err)
	}

	return true, nil
}

func parseDuration(name, raw string, dst *time.Duration) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", name, err)
	}
	if d <= 0 {
		return fmt.Errorf("parse config: %s must be positive", name)
	}
	*dst = d
	return nil
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
