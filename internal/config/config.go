// Package config loads bloc's settings from defaults, an optional yaml file,
// a .env file and BLOC_ environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dori/bloc/internal/model"
	"github.com/dori/bloc/internal/query"
	"github.com/dori/bloc/internal/storage"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BLOC_LOG_LEVEL.
const EnvPrefix = "BLOC"

// Config is the complete bloc configuration
type Config struct {
	// DataDir holds the database, the lock file and the log.
	DataDir string `mapstructure:"data_dir"`
	// DBPath defaults to <data_dir>/bloc.db.
	DBPath string       `mapstructure:"db_path"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
	Notify NotifyConfig `mapstructure:"notify"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `mapstructure:"level"`
	// File defaults to <data_dir>/bloc.log.
	File string `mapstructure:"file"`
}

// UIConfig holds the defaults used until the user changes them in the UI.
type UIConfig struct {
	Theme string `mapstructure:"theme"`
	View  string `mapstructure:"view"`
	Sort  string `mapstructure:"sort"`
}

// NotifyConfig controls desktop notifications
type NotifyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: storage.DefaultDataDir(),
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme: string(model.ThemeLight),
			View:  string(model.ViewKanban),
			Sort:  string(query.SortManual),
		},
		Notify: NotifyConfig{
			Enabled: true,
		},
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.view", d.UI.View)
	v.SetDefault("ui.sort", d.UI.Sort)
	v.SetDefault("notify.enabled", d.Notify.Enabled)
}

// Dir returns the directory holding config.yaml
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bloc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bloc"
	}
	return filepath.Join(home, ".config", "bloc")
}

// File returns the default config file path
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads configuration into v and returns the result. cfgFile, when
// set, must exist; otherwise a missing config.yaml is fine.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fillPaths() {
	if c.DataDir == "" {
		c.DataDir = storage.DefaultDataDir()
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "bloc.db")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.DataDir, "bloc.log")
	}
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := model.ParseTheme(c.UI.Theme); err != nil {
		errs = append(errs, fmt.Errorf("ui.theme: %w", err))
	}
	if _, err := model.ParseViewMode(c.UI.View); err != nil {
		errs = append(errs, fmt.Errorf("ui.view: %w", err))
	}
	if _, err := query.ParseSortKey(c.UI.Sort); err != nil {
		errs = append(errs, fmt.Errorf("ui.sort: %w", err))
	}
	return errors.Join(errs...)
}

// Theme returns the configured theme; Validate has already checked it.
func (c *Config) Theme() model.Theme {
	return model.Theme(c.UI.Theme)
}

// View returns the configured view mode
func (c *Config) View() model.ViewMode {
	return model.ViewMode(c.UI.View)
}

// Sort returns the configured list order
func (c *Config) Sort() query.SortKey {
	return query.SortKey(c.UI.Sort)
}
