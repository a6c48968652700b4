package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/regnskap/internal/lines"
	"github.com/cleared-dev/regnskap/internal/overrides"
)

func newOverrideCommand() *cobra.Command {
	overrideCmd := &cobra.Command{
		Use:   "override",
		Short: "Maintain per-account line overrides",
	}
	overrideCmd.AddCommand(newOverrideSetCommand())
	overrideCmd.AddCommand(newOverrideRemoveCommand())
	overrideCmd.AddCommand(newOverrideListCommand())
	return overrideCmd
}

func newOverrideSetCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "set <account> <line>",
		Short: "Force an account onto a line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid account %q: %w", args[0], err)
			}
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid line %q: %w", args[1], err)
			}
			absDir, err := absRepo(repoDir)
			if err != nil {
				return err
			}
			return runOverrideSet(cmd, absDir, account, line)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "engagement directory")
	return cmd
}

func runOverrideSet(cmd *cobra.Command, root string, account, line int) error {
	log, err := engagementLogger(cmd, root)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.Sources.Overrides == "" {
		return fmt.Errorf("no overrides file configured in regnskap.yaml")
	}

	if cfg.Sources.Lines != "" {
		svc, err := lines.Load(cfg.Sources.Lines, log)
		if err != nil {
			return err
		}
		if !svc.Exists(line) {
			log.Warn().Int("line", line).Msg("line is not defined in the line definitions")
		}
	}

	set, err := overrides.Load(cfg.Sources.Overrides)
	if err != nil {
		return err
	}
	set.Set(account, line, time.Now().UTC().Truncate(time.Second))
	if err := set.Save(cfg.Sources.Overrides); err != nil {
		return err
	}
	hash, err := commitChange(root, cfg, fmt.Sprintf("override: %d -> %d", account, line))
	if err != nil {
		return err
	}
	if hash != "" {
		log.Debug().Str("commit", hash).Msg("override committed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Account %d -> line %d\n", account, line)
	return nil
}

func newOverrideRemoveCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:     "rm <account>",
		Aliases: []string{"remove"},
		Short:   "Remove an account override",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid account %q: %w", args[0], err)
			}
			absDir, err := absRepo(repoDir)
			if err != nil {
				return err
			}
			return runOverrideRemove(cmd, absDir, account)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "engagement directory")
	return cmd
}

func runOverrideRemove(cmd *cobra.Command, root string, account int) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.Sources.Overrides == "" {
		return fmt.Errorf("no overrides file configured in regnskap.yaml")
	}

	set, err := overrides.Load(cfg.Sources.Overrides)
	if err != nil {
		return err
	}
	if !set.Remove(account) {
		return fmt.Errorf("no override for account %d", account)
	}
	if err := set.Save(cfg.Sources.Overrides); err != nil {
		return err
	}
	if _, err := commitChange(root, cfg, fmt.Sprintf("override: remove %d", account)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed override for account %d\n", account)
	return nil
}

func newOverrideListCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List account overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := absRepo(repoDir)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(absDir)
			if err != nil {
				return err
			}
			set := overrides.NewSet(nil)
			if cfg.Sources.Overrides != "" {
				if set, err = overrides.Load(cfg.Sources.Overrides); err != nil {
					return err
				}
			}
			for _, o := range set.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%d\n", o.Account, o.Line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "engagement directory")
	return cmd
}
