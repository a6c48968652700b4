package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/regnskap/internal/config"
	"github.com/cleared-dev/regnskap/internal/gitops"
	"github.com/cleared-dev/regnskap/internal/kpi"
	"github.com/cleared-dev/regnskap/internal/lines"
	"github.com/cleared-dev/regnskap/internal/logger"
	"github.com/cleared-dev/regnskap/internal/mapping"
	"github.com/cleared-dev/regnskap/internal/overrides"
)

func newInitCommand() *cobra.Command {
	var name string
	var year int
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new engagement directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := absRepo(dir)
			if err != nil {
				return err
			}

			hash, err := runInit(absDir, name, year, useGit)
			if err != nil {
				return err
			}
			log := logger.FromContext(cmd.Context())
			log.Debug().Str("dir", absDir).Msg("engagement initialized")
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized engagement for %s %d at %s (%s)\n", name, year, absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized engagement for %s %d at %s\n", name, year, absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "client name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().IntVar(&year, "year", time.Now().Year()-1, "fiscal year")
	cmd.Flags().BoolVar(&useGit, "git", false, "initialize a git repository and commit changes")

	return cmd
}

// runInit scaffolds dir and returns the initial commit hash when useGit is set.
func runInit(dir, name string, year int, useGit bool) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	cfg := config.Default(name, year)
	cfg.Git.AutoCommit = useGit
	for _, d := range []string{".", cfg.Output.Dir} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write regnskap.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	// Write default line definitions, interval mapping and key figures.
	if err := lines.NewService(lines.DefaultDefinitions()).Save(filepath.Join(dir, cfg.Sources.Lines)); err != nil {
		return "", fmt.Errorf("writing line definitions: %w", err)
	}
	if err := mapping.Save(filepath.Join(dir, cfg.Sources.Intervals), mapping.DefaultIntervals()); err != nil {
		return "", err
	}
	if err := kpi.Save(filepath.Join(dir, cfg.Sources.KPIs), kpi.DefaultDefinitions()); err != nil {
		return "", err
	}

	// Write empty overrides.
	if err := overrides.NewSet(nil).Save(filepath.Join(dir, cfg.Sources.Overrides)); err != nil {
		return "", fmt.Errorf("writing overrides: %w", err)
	}

	if !useGit {
		return "", nil
	}

	// Write .gitignore.
	gitignore := cfg.Output.Dir + "/\n*.tmp\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return "", err
	}
	hash, err := gitops.CommitAll(dir, fmt.Sprintf("init: %s %d", name, year), cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
