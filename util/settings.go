// Package util holds shared configuration helpers.
package util

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cosmicwatch/neo-backend/database"
)

// Settings is the backend configuration, loaded from an optional YAML file
// with environment variable overrides on top.
type Settings struct {
	Port            string   `yaml:"port"`
	NasaBaseURL     string   `yaml:"nasa_base_url"`
	NasaAPIKey      string   `yaml:"nasa_api_key"`
	CacheTTLMinutes int      `yaml:"cache_ttl_minutes"`
	KafkaBrokers    []string `yaml:"kafka_brokers"`
	KafkaAlertTopic string   `yaml:"kafka_alert_topic"`
	OpenAIAPIKey    string   `yaml:"openai_api_key"`
}

// DefaultSettingsFile is the conventional settings location, overridable via
// the SETTINGS_FILE env var.
const DefaultSettingsFile = "settings.yaml"

func defaultSettings() Settings {
	return Settings{
		Port:            "5001",
		CacheTTLMinutes: 60,
		KafkaAlertTopic: "hazard-alerts",
	}
}

// LoadSettings reads the settings file when present and applies env
// overrides. A missing file is not an error; the defaults plus env apply.
func LoadSettings(path string) (Settings, error) {
	settings := defaultSettings()

	if path == "" {
		path = database.GetEnvDefault("SETTINGS_FILE", DefaultSettingsFile)
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, err
		}
	} else if !os.IsNotExist(err) {
		return settings, err
	}

	applyEnvOverrides(&settings)
	return settings, nil
}

// applyEnvOverrides lets the environment win over the file for every
// setting, matching how the container deployments are configured.
func applyEnvOverrides(settings *Settings) {
	if v := os.Getenv("PORT"); v != "" {
		settings.Port = v
	}
	if v := os.Getenv("NASA_BASE_URL"); v != "" {
		settings.NasaBaseURL = v
	}
	if v := os.Getenv("NASA_API_KEY"); v != "" {
		settings.NasaAPIKey = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			settings.CacheTTLMinutes = minutes
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		settings.KafkaBrokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_ALERT_TOPIC"); v != "" {
		settings.KafkaAlertTopic = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		settings.OpenAIAPIKey = v
	}
}
