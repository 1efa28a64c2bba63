// Config loading for the scholar CLI.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/scholar/internal/paths"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataset   = "dataset"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"

	envLogLevel = "SCHOLAR_LOG_LEVEL"
)

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config.yaml is not an error; defaults apply. The
// --log-level flag overrides SCHOLAR_LOG_LEVEL, which overrides the file.
func loadConfig(flags *rootFlags) (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendMemory)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyLogFormat, types.LogFormatText)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return types.Config{}, sysError(fmt.Errorf("bind env: %w", err))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read %s: %w", filepath.Join(configDir, configFileExt), err)
		}
	}

	cfg := types.Config{
		Backend:   v.GetString(cfgKeyBackend),
		Dataset:   v.GetString(cfgKeyDataset),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		LogFormat: v.GetString(cfgKeyLogFormat),
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	dataset, err := paths.ResolveDataset(flags.dataset, cfg.Dataset)
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve dataset: %w", err))
	}
	cfg.Dataset = dataset

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
