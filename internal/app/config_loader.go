package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// LoadConfig loads configuration from file and environment. Precedence
// is environment over file over defaults; a missing config file is not
// an error.
func LoadConfig(configPath string) (*domain.Config, error) {
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	// Register every key so AutomaticEnv can bind overrides even when the
	// config file omits them.
	v.SetDefault("server.host", config.Server.Host)
	v.SetDefault("server.port", config.Server.Port)
	v.SetDefault("providers.pixabay.api_key", "")
	v.SetDefault("providers.pexels.api_key", "")
	v.SetDefault("download.image_quality", string(config.Download.ImageQuality))
	v.SetDefault("download.video_quality", string(config.Download.VideoQuality))
	v.SetDefault("download.output_dir", config.Download.OutputDir)
	v.SetDefault("download.use_original_names", config.Download.UseOriginalNames)
	v.SetDefault("download.max_concurrent", config.Download.MaxConcurrent)
	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)
	v.SetDefault("logging.output_path", config.Logging.OutputPath)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.fusion-media")
		v.AddConfigPath("/etc/fusion-media")
	}

	v.SetEnvPrefix("FUSION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.OutputDir = expandPath(config.Download.OutputDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return path
}

// validateConfig validates the configuration. Out-of-range concurrency
// degrades to serial rather than failing startup.
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Download.OutputDir == "" {
		return fmt.Errorf("download output directory not configured")
	}

	if config.Download.MaxConcurrent < 1 {
		config.Download.MaxConcurrent = 1
	}

	if config.Download.ImageQuality != "" {
		if _, err := domain.ParseImageQuality(string(config.Download.ImageQuality)); err != nil {
			return fmt.Errorf("invalid image quality: %w", err)
		}
	}

	if config.Download.VideoQuality != "" {
		if _, err := domain.ParseVideoQuality(string(config.Download.VideoQuality)); err != nil {
			return fmt.Errorf("invalid video quality: %w", err)
		}
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
