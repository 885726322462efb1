// Package app wires the analyzer pipeline together: load the simulation
// log, run the aggregation engine, write the report and chart data, then
// optionally archive the samples and serve the results.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/agriscan/agriview/internal/controllers/reportserver"
	"github.com/agriscan/agriview/internal/engine"
	"github.com/agriscan/agriview/internal/loader"
	"github.com/agriscan/agriview/internal/report"
	"github.com/agriscan/agriview/internal/storage/sqlite"
	"github.com/agriscan/agriview/internal/types"
	"github.com/agriscan/agriview/pkg/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// App represents the analyzer application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{cfg: cfg, logger: logger}
}

// Run executes one analyzer run. When a server is configured Run blocks
// until shutdown; otherwise it returns after the outputs are written.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	records, err := loader.Load(a.cfg.Input.File, a.logger)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	eng := engine.New(a.soilParams(), a.categoryRules(), a.logger)
	results := eng.Run(records)

	if err := a.writeOutputs(results, runID); err != nil {
		return err
	}

	if a.cfg.Archive != nil {
		if err := a.archive(runID, records); err != nil {
			return err
		}
	}

	if a.cfg.Server == nil {
		return nil
	}
	return a.serve(ctx, cancel, results, runID)
}

func (a *App) writeOutputs(results *engine.Results, runID string) error {
	if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	reportPath := filepath.Join(a.cfg.Output.Dir, a.cfg.Output.ReportFile)
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.WriteSummary(f, results.Summary, runID); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	a.logger.Infof("wrote summary report to %s", reportPath)

	if err := report.ExportChartData(a.cfg.Output.Dir, results); err != nil {
		return err
	}
	a.logger.Infof("wrote chart data to %s", a.cfg.Output.Dir)
	return nil
}

func (a *App) archive(runID string, records []types.TelemetryRecord) error {
	arch, err := sqlite.New(a.cfg.Archive.Path, a.logger)
	if err != nil {
		return err
	}
	defer arch.Close()

	if _, err := arch.ArchiveRun(runID, a.cfg.Input.File, records); err != nil {
		return err
	}

	if days := a.cfg.Archive.RetentionDays; days > 0 {
		removed, err := arch.DeleteOlderThan(days)
		if err != nil {
			return err
		}
		if removed > 0 {
			a.logger.Infof("retention sweep removed %d archived runs", removed)
		}
	}
	return nil
}

func (a *App) serve(ctx context.Context, cancel context.CancelFunc, results *engine.Results, runID string) error {
	var wg sync.WaitGroup

	ctrl, err := reportserver.NewController(ctx, &wg, *a.cfg.Server, results, runID, a.logger)
	if err != nil {
		return err
	}
	if err := ctrl.StartController(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		a.logger.Info("shutdown signal received, stopping report server")
	case <-ctx.Done():
		a.logger.Info("context cancelled, stopping report server")
	}

	cancel()
	wg.Wait()
	return nil
}

func (a *App) soilParams() engine.SoilParams {
	return engine.SoilParams{
		ThetaFC:  a.cfg.Soil.ThetaFC,
		ThetaPWP: a.cfg.Soil.ThetaPWP,
	}
}

// categoryRules converts configured phase rules; nil means engine defaults.
func (a *App) categoryRules() []engine.CategoryRule {
	if len(a.cfg.Phases) == 0 {
		return nil
	}
	rules := make([]engine.CategoryRule, 0, len(a.cfg.Phases))
	for _, r := range a.cfg.Phases {
		rules = append(rules, engine.CategoryRule{
			Substrings: r.Substrings,
			Category:   r.Category,
			Color:      r.Color,
		})
	}
	return rules
}
