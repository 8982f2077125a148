package domain

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Download  DownloadConfig  `mapstructure:"download"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// ProvidersConfig contains per-provider API keys. A provider with an
// empty key is simply not registered.
type ProvidersConfig struct {
	Pixabay ProviderConfig `mapstructure:"pixabay"`
	Pexels  ProviderConfig `mapstructure:"pexels"`
}

// ProviderConfig contains the configuration for one provider
type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DownloadConfig contains download-related configuration. It is read
// once at construction and never mutated while downloads are in flight.
type DownloadConfig struct {
	ImageQuality     ImageQuality `mapstructure:"image_quality"`
	VideoQuality     VideoQuality `mapstructure:"video_quality"`
	OutputDir        string       `mapstructure:"output_dir"`
	UseOriginalNames bool         `mapstructure:"use_original_names"`
	MaxConcurrent    int          `mapstructure:"max_concurrent"`

	// Progress receives per-item progress events when set. Runtime only,
	// never loaded from file.
	Progress ProgressFunc `mapstructure:"-"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			ImageQuality:     ImageQualityLarge,
			VideoQuality:     VideoQualityLarge,
			OutputDir:        "./downloads",
			UseOriginalNames: false,
			MaxConcurrent:    5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
