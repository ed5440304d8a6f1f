package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/skalibog/benzboard/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// EnvAPIURL переменная окружения, переопределяющая адрес бэкенда
const EnvAPIURL = "BENZBOARD_API_URL"

// Config представляет полную конфигурацию приложения
type Config struct {
	API     APIConfig     `yaml:"api"`
	Polling PollingConfig `yaml:"polling"`
	UI      UIConfig      `yaml:"ui"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig настройки подключения к бэкенду
type APIConfig struct {
	BaseURL          string `yaml:"base_url"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`
}

// PollingConfig настройки опроса /api/status
type PollingConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

// UIConfig настройки пользовательского интерфейса
type UIConfig struct {
	Title string `yaml:"title"`
	// PauseOnBlur останавливает опрос, когда терминал теряет фокус
	PauseOnBlur bool `yaml:"pause_on_blur"`
	AltScreen   bool `yaml:"alt_screen"`
}

// ExportConfig настройки выгрузки CSV
type ExportConfig struct {
	Dir             string `yaml:"dir"`
	HistoryPageSize int    `yaml:"history_page_size"`
}

// LogConfig настройки логирования
type LogConfig struct {
	Level    string `yaml:"level"`
	File     string `yaml:"file"`
	JSONFile string `yaml:"json_file"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:          "http://127.0.0.1:8001",
			RequestTimeoutMs: 10000,
		},
		Polling: PollingConfig{
			IntervalMs: 2000,
		},
		UI: UIConfig{
			Title:       "奔驰宝马分析系统",
			PauseOnBlur: true,
			AltScreen:   true,
		},
		Export: ExportConfig{
			Dir:             ".",
			HistoryPageSize: 100,
		},
		Log: LogConfig{
			Level:    "debug",
			File:     logger.DefaultReadablePath,
			JSONFile: logger.DefaultJSONPath,
		},
	}
}

// Load загружает конфигурацию из файла. Отсутствующие ключи берутся из Default.
// Если файла нет, используются значения по умолчанию; .env и переменные окружения
// применяются в обоих случаях.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		logger.Warn("Файл конфигурации не найден, используются значения по умолчанию", zap.String("path", path))
	case err != nil:
		return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора файла конфигурации: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Загружена конфигурация", zap.String("path", path), zap.Any("config", cfg))
	logger.Info("Загружена конфигурация", zap.String("api", cfg.API.BaseURL))
	return cfg, nil
}

// applyEnv подтягивает .env (если есть) и переменные окружения
func (c *Config) applyEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env не найден, используются переменные окружения")
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
}

// Validate проверяет и нормализует значения
func (c *Config) Validate() error {
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		return fmt.Errorf("не задан api.base_url")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url должен начинаться с http:// или https://: %q", c.API.BaseURL)
	}
	if c.API.RequestTimeoutMs <= 0 {
		c.API.RequestTimeoutMs = 10000
	}
	if c.Polling.IntervalMs <= 0 {
		c.Polling.IntervalMs = 2000
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Export.HistoryPageSize <= 0 || c.Export.HistoryPageSize > 200 {
		c.Export.HistoryPageSize = 100
	}
	return nil
}

// RequestTimeout таймаут одного HTTP-запроса
func (c APIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

// Interval интервал между циклами опроса
func (c PollingConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}
