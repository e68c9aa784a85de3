package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveToLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := &Config{
		ServiceURL: "https://screening.example.com",
		LogLevel:   "debug",
	}
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.ServiceURL, loaded.ServiceURL)
	assert.Equal(t, cfg.LogLevel, loaded.LogLevel)
}

func TestLoadFrom_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "Valid", cfg: Config{ServiceURL: "http://127.0.0.1:8000"}, wantErr: false},
		{name: "Empty URL", cfg: Config{}, wantErr: true},
		{name: "Not a URL", cfg: Config{ServiceURL: "not a url"}, wantErr: true},
		{name: "Missing downloads dir", cfg: Config{ServiceURL: "http://x.test", DownloadsDir: "/definitely/not/here"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCREENDESK_SERVICE_URL", "http://override.test")
	t.Setenv("SCREENDESK_LOG_LEVEL", "trace")

	cfg := DefaultConfig()
	cfg.applyEnv()

	assert.Equal(t, "http://override.test", cfg.ServiceURL)
	assert.Equal(t, "trace", cfg.LogLevel)
}
