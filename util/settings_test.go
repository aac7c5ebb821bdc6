package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaultsWhenFileMissing(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5001", settings.Port)
	assert.Equal(t, 60, settings.CacheTTLMinutes)
	assert.Equal(t, "hazard-alerts", settings.KafkaAlertTopic)
}

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
port: "8080"
nasa_base_url: "http://localhost:9999/neo/rest/v1"
nasa_api_key: "FILE_KEY"
cache_ttl_minutes: 15
kafka_brokers:
  - broker-1:9092
  - broker-2:9092
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", settings.Port)
	assert.Equal(t, "http://localhost:9999/neo/rest/v1", settings.NasaBaseURL)
	assert.Equal(t, "FILE_KEY", settings.NasaAPIKey)
	assert.Equal(t, 15, settings.CacheTTLMinutes)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, settings.KafkaBrokers)
}

func TestLoadSettingsEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`nasa_api_key: "FILE_KEY"`), 0o600))

	t.Setenv("NASA_API_KEY", "ENV_KEY")
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL_MINUTES", "5")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "ENV_KEY", settings.NasaAPIKey)
	assert.Equal(t, "9090", settings.Port)
	assert.Equal(t, 5, settings.CacheTTLMinutes)
	assert.Equal(t, []string{"a:9092", "b:9092"}, settings.KafkaBrokers)
}

func TestLoadSettingsRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestLoadSettingsIgnoresBadTTLOverride(t *testing.T) {
	t.Setenv("CACHE_TTL_MINUTES", "not-a-number")

	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 60, settings.CacheTTLMinutes)
}
