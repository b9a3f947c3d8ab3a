package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv はテスト中に関係する環境変数を未設定にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigFile, EnvHost, EnvPort, EnvDebug, EnvVersion, "HOST"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// TestConfigLoad はデフォルト設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Compression.Enabled)
}

// TestEnvironmentVariables は環境変数の処理をテストする
// 注意: このテストは環境変数を変更するため、parallelは使わない
func TestEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvHost, "127.0.0.1")
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvDebug, "True")
	t.Setenv(EnvVersion, "2.0.0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "2.0.0", cfg.App.Version)
}

// TestBareHostIgnored は接頭辞なしのHOSTではバインド先が変わらないことをテストする
func TestBareHostIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOST", "my-laptop.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:5000", cfg.ServerAddress())
}

func TestDebugFlag(t *testing.T) {
	testCases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"false", false},
		{"False", false},
		{"1", false},
		{"yes", false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvDebug, tc.value)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Debug)
		})
	}
}

func TestInvalidPort(t *testing.T) {
	testCases := []struct {
		name  string
		value string
	}{
		{"整数ではない", "abc"},
		{"範囲外", "70000"},
		{"ゼロ", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvPort, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// TestConfigFile はYAML設定ファイルと環境変数の優先順位をテストする
func TestConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  version: "3.1.4"
server:
  port: 8088
  read_timeout: 3s
debug: true
metrics:
  enabled: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvPort, "7000")

	cfg, err := Load()
	require.NoError(t, err)

	// ファイルの値
	assert.Equal(t, "3.1.4", cfg.App.Version)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Metrics.Enabled)

	// 環境変数が優先される
	assert.Equal(t, 7000, cfg.Server.Port)

	// ファイルにない項目はデフォルトのまま
	assert.Equal(t, "SBOM Example Application", cfg.App.Name)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

// TestConfigValidation は設定の検証をテストする
func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{
			name:      "正常な設定",
			modify:    func(c *Config) {},
			expectErr: false,
		},
		{
			name:      "無効なポート番号",
			modify:    func(c *Config) { c.Server.Port = 99999 },
			expectErr: true,
		},
		{
			name:      "負のタイムアウト",
			modify:    func(c *Config) { c.Server.ShutdownTimeout = -time.Second },
			expectErr: true,
		},
		{
			name:      "圧縮の最小サイズが負",
			modify:    func(c *Config) { c.Compression.MinSize = -1 },
			expectErr: true,
		},
		{
			name:      "メトリクスのパスが不正",
			modify:    func(c *Config) { c.Metrics.Path = "metrics" },
			expectErr: true,
		},
		{
			name: "メトリクス無効ならパスは検証しない",
			modify: func(c *Config) {
				c.Metrics.Enabled = false
				c.Metrics.Path = ""
			},
			expectErr: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)

			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	assert.Equal(t, "192.168.1.100:9090", cfg.ServerAddress())
}
