package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/scholar/internal/memory"
	"github.com/mesh-intelligence/scholar/internal/metrics"
	"github.com/mesh-intelligence/scholar/pkg/types"
)

// session is the state one command runs against: the resolved config, a
// store loaded from the dataset, and the registry its metrics report to.
type session struct {
	cfg      types.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	store    *memory.Store
	report   *memory.LoadReport
	json     bool
}

// openSession loads config and the dataset. Rejected dataset records are
// logged at warn level and do not fail the command.
func openSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	registry := prometheus.NewRegistry()
	store := memory.NewStore(
		memory.WithLogger(logger),
		memory.WithMetrics(metrics.New(registry)),
	)

	report, err := loadDataset(cfg.Dataset, store)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("dataset %s not found (run scholar generate to create one)", cfg.Dataset)
		}
		return nil, sysError(err)
	}

	if report.Skipped > 0 {
		logger.Warn("skipped malformed dataset lines", "dataset", cfg.Dataset, "count", report.Skipped)
	}
	for _, r := range report.Rejected {
		logger.Warn("dataset record rejected", "line", r.Line, "kind", r.Kind, "error", r.Err)
	}
	logger.Info("dataset loaded", "dataset", cfg.Dataset, "records", report.AppliedTotal())

	return &session{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		store:    store,
		report:   report,
		json:     flags.jsonMode,
	}, nil
}

// runWithSession adapts a session-based handler into a cobra RunE.
func runWithSession(flags *rootFlags, fn func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, flags)
		if err != nil {
			return err
		}
		return fn(cmd, s, args)
	}
}
