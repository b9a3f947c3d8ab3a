package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// 環境変数名
const (
	EnvConfigFile = "CONFIG_FILE"
	EnvHost       = "APP_HOST"
	EnvPort       = "PORT"
	EnvDebug      = "DEBUG"
	EnvVersion    = "APP_VERSION"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	App         AppConfig         `yaml:"app"`
	Server      ServerConfig      `yaml:"server"`
	Debug       bool              `yaml:"debug"` // 開発モード（詳細ログ、エラー時のスタックトレース）
	Metrics     MetricsConfig     `yaml:"metrics"`
	Compression CompressionConfig `yaml:"compression"`
}

// AppConfig はアプリケーション情報
type AppConfig struct {
	Name    string `yaml:"name"`    // / で返すメッセージに使う名前
	Version string `yaml:"version"` // / で返すバージョン
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // グレースフルシャットダウンの待ち時間
}

// MetricsConfig はPrometheusメトリクスの設定
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// CompressionConfig はレスポンス圧縮の設定
type CompressionConfig struct {
	Enabled bool `yaml:"enabled"`
	MinSize int  `yaml:"min_size"` // これより小さいボディは圧縮しない（バイト）
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:    "SBOM Example Application",
			Version: "1.0.0",
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Debug: false,
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Compression: CompressionConfig{
			Enabled: true,
		},
	}
}

// Load は設定を読み込む
//
// 読み込み順:
//  1. カレントディレクトリの .env（存在しなければ無視、既存の環境変数は上書きしない）
//  2. デフォルト値
//  3. CONFIG_FILE で指定されたYAMLファイル
//  4. 環境変数 APP_HOST, PORT, DEBUG, APP_VERSION
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, ".envの読み込みに失敗")
	}

	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "設定の検証に失敗")
	}

	return cfg, nil
}

// LoadFile はYAMLファイルの内容で設定を上書きする
// ファイルに書かれていない項目は現在の値のまま残る
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "設定ファイルの読み込みに失敗: %s", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "設定ファイルの解析に失敗: %s", path)
	}

	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() error {
	c.Server.Host = getEnvOrDefault(EnvHost, c.Server.Host)
	c.App.Version = getEnvOrDefault(EnvVersion, c.App.Version)

	port, err := getEnvAsIntOrDefault(EnvPort, c.Server.Port)
	if err != nil {
		return err
	}
	c.Server.Port = port

	if value, ok := os.LookupEnv(EnvDebug); ok {
		c.Debug = strings.EqualFold(strings.TrimSpace(value), "true")
	}

	return nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Newf("無効なポート番号: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("タイムアウトに負の値は指定できません")
	}

	if c.Compression.MinSize < 0 {
		return errors.Newf("圧縮の最小サイズに負の値は指定できません: %d", c.Compression.MinSize)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.Newf("メトリクスのパスは / で始まる必要があります: %q", c.Metrics.Path)
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	intVal, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Wrapf(err, "環境変数 %s が整数ではありません: %q", key, value)
	}
	return intVal, nil
}
