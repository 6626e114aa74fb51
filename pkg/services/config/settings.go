package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ServerSettings configures the report submission API.
type ServerSettings struct {
	ArchivePath string `mapstructure:"archive_path"`
	Profile     string `mapstructure:"profile"`
}

// DocgenSettings configures the stand-in document generation service.
type DocgenSettings struct {
	OutputDir       string `mapstructure:"output_dir"`
	BaseURL         string `mapstructure:"base_url"`
	TokenTTLMinutes int    `mapstructure:"token_ttl_minutes"`
}

// LoadServerSettings reads config.yaml from configPath, falling back to
// defaults and REPORTDESK_* environment overrides.
func LoadServerSettings(configPath string) (ServerSettings, error) {
	v := newViper(configPath)
	v.SetDefault("archive_path", "report-desk.db")
	v.SetDefault("profile", "default")

	if err := readOptional(v); err != nil {
		return ServerSettings{}, err
	}

	var settings ServerSettings
	if err := v.Unmarshal(&settings); err != nil {
		return ServerSettings{}, fmt.Errorf("failed to parse server settings: %w", err)
	}
	return settings, nil
}

// LoadDocgenSettings reads the document service section the same way.
func LoadDocgenSettings(configPath string) (DocgenSettings, error) {
	v := newViper(configPath)
	v.SetDefault("output_dir", "")
	v.SetDefault("base_url", "http://localhost:8090")
	v.SetDefault("token_ttl_minutes", 15)

	if err := readOptional(v); err != nil {
		return DocgenSettings{}, err
	}

	var settings DocgenSettings
	if err := v.Unmarshal(&settings); err != nil {
		return DocgenSettings{}, fmt.Errorf("failed to parse docgen settings: %w", err)
	}
	return settings, nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("REPORTDESK")
	v.AutomaticEnv()
	return v
}

func readOptional(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine: defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
