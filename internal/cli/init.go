package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/scholar/internal/paths"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize scholar configuration",
		Long: "Create the configuration directory with a default config.yaml and\n" +
			"the directory that will hold the dataset.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, flags.dataset); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Dataset), 0o755); err != nil {
		return sysError(fmt.Errorf("create dataset directory: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scholar initialized\nconfig:  %s\ndataset: %s\n", configPath, cfg.Dataset)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil (idempotent).
func writeConfigIfMissing(path, dataset string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := types.Config{
		Backend:   types.BackendMemory,
		LogLevel:  "warn",
		LogFormat: types.LogFormatText,
	}
	if dataset != "" {
		abs, err := filepath.Abs(dataset)
		if err != nil {
			return fmt.Errorf("resolve dataset: %w", err)
		}
		cfg.Dataset = abs
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
