package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "BRICKSET_"

type LogSettings struct {
	Level string `koanf:"level"` // debug|info|warn|error
	JSON  bool   `koanf:"json"`
}

type MetricsSettings struct {
	Textfile string `koanf:"textfile"` // empty = no export
}

// KafkaSettings enables the kafka mirror sink when Brokers is non-empty.
type KafkaSettings struct {
	Brokers      []string `koanf:"brokers"`
	TopicPrefix  string   `koanf:"topic_prefix"`
	RequiredAcks int16    `koanf:"required_acks"` // 1 or -1; 0 means 1
	Version      string   `koanf:"version"`
}

// Settings are runtime knobs only. Job paths are not part of them.
type Settings struct {
	Log     LogSettings     `koanf:"log"`
	Metrics MetricsSettings `koanf:"metrics"`
	Kafka   KafkaSettings   `koanf:"kafka"`
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadSettings merges YAML (if present) with env-vars
// (prefix `BRICKSET_`, `__` between nesting levels, e.g. BRICKSET_LOG__LEVEL).
func LoadSettings(path string) (Settings, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("settings %s: %w", path, err)
		}
	}
	sv := k.String("schema_version")
	if sv != "" && sv != SupportedSchema {
		return Settings{}, fmt.Errorf("settings schema_version %q not supported (want %s)", sv, SupportedSchema)
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return Settings{}, fmt.Errorf("settings env: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return s, fmt.Errorf("settings: %w", err)
	}
	applyDefaults(&s)
	return s, nil
}

func envValue(k, v string) (string, any) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "__", ".")
	if key == "kafka.brokers" {
		return key, strings.Split(v, ",")
	}
	return key, v
}

// ---------------------------------------------------------------------------
// defaults
// ---------------------------------------------------------------------------

func applyDefaults(s *Settings) {
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Kafka.TopicPrefix == "" {
		s.Kafka.TopicPrefix = "brickset."
	}
	if s.Kafka.RequiredAcks == 0 {
		s.Kafka.RequiredAcks = 1
	}
	if s.Kafka.Version == "" {
		s.Kafka.Version = "2.1.0"
	}
}
