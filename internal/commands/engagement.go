package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/regnskap/internal/config"
	"github.com/cleared-dev/regnskap/internal/gitops"
	"github.com/cleared-dev/regnskap/internal/importer"
	"github.com/cleared-dev/regnskap/internal/kpi"
	"github.com/cleared-dev/regnskap/internal/lines"
	"github.com/cleared-dev/regnskap/internal/logger"
	"github.com/cleared-dev/regnskap/internal/mapping"
	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/overrides"
	"github.com/cleared-dev/regnskap/internal/statement"
)

// engagement is one client year: its config and every input file, loaded.
type engagement struct {
	root      string
	cfg       *config.Config // paths resolved against root
	lines     *lines.Service
	intervals []model.IntervalRule
	kpis      []model.KpiDefinition
	overrides *overrides.Set
	balances  []model.Balance
}

// loadConfig reads regnskap.yaml from root and resolves its paths.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(root), nil
}

// loadEngagement reads the config and every input it names. Blank paths for
// lines, intervals and KPIs fall back to the built-in defaults.
func loadEngagement(root string, log zerolog.Logger) (*engagement, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	e := &engagement{root: root, cfg: cfg}

	if cfg.Sources.Lines == "" {
		e.lines = lines.NewService(lines.DefaultDefinitions())
	} else if e.lines, err = lines.Load(cfg.Sources.Lines, log); err != nil {
		return nil, err
	}
	for _, verr := range lines.Validate(e.lines.All()) {
		log.Warn().Int("line", verr.Line).Int("rule", verr.Rule).Msg(verr.Description)
	}

	if cfg.Sources.Intervals == "" {
		e.intervals = mapping.DefaultIntervals()
	} else if e.intervals, err = mapping.Load(cfg.Sources.Intervals); err != nil {
		return nil, err
	}

	if cfg.Sources.KPIs == "" {
		e.kpis = kpi.DefaultDefinitions()
	} else if e.kpis, err = kpi.Load(cfg.Sources.KPIs); err != nil {
		return nil, err
	}

	if cfg.Sources.Overrides == "" {
		e.overrides = overrides.NewSet(nil)
	} else if e.overrides, err = overrides.Load(cfg.Sources.Overrides); err != nil {
		return nil, err
	}

	if cfg.Sources.TrialBalance == "" {
		return nil, fmt.Errorf("no trial balance configured in %s", config.FileName)
	}
	e.balances, err = importer.DefaultRegistry(log).ParseFile(cfg.Sources.TrialBalance, cfg.Sources.Format)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("trial_balance", cfg.Sources.TrialBalance).
		Int("balances", len(e.balances)).
		Int("lines", len(e.lines.All())).
		Int("intervals", len(e.intervals)).
		Int("overrides", e.overrides.Len()).
		Msg("engagement loaded")
	return e, nil
}

func (e *engagement) input() statement.Input {
	return statement.Input{
		Balances:  e.balances,
		Lines:     e.lines.All(),
		Intervals: e.intervals,
		Overrides: e.overrides.Map(),
		KPIs:      e.kpis,
	}
}

func (e *engagement) options() statement.Options {
	return statement.Options{
		Strict:          e.cfg.Build.Strict,
		ApplyResultSign: e.cfg.Build.ApplyResultSign,
	}
}

// engagementLogger returns the logger for commands working on an
// engagement: log flags win, then regnskap.yaml.
func engagementLogger(cmd *cobra.Command, root string) (zerolog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if level != "" && format != "" {
		return logger.FromContext(cmd.Context()), nil
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return zerolog.Nop(), err
	}
	if level == "" {
		level = cfg.Log.Level
	}
	if format == "" {
		format = cfg.Log.Format
	}
	log, err := logger.New(level, format)
	if err != nil {
		return zerolog.Nop(), err
	}
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	return log, nil
}

// commitChange commits root when the engagement is versioned with git.
func commitChange(root string, cfg *config.Config, message string) (string, error) {
	if !cfg.Git.AutoCommit || !gitops.IsRepo(root) {
		return "", nil
	}
	return gitops.CommitAll(root, message, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
}

func absRepo(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
