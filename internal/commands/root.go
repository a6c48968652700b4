package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/regnskap/internal/buildinfo"
	"github.com/cleared-dev/regnskap/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:     "regnskap",
		Short:   "Financial statements from a trial balance",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logLevel, logFormat)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides regnskap.yaml")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json); overrides regnskap.yaml")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newMapCommand())
	rootCmd.AddCommand(newOverrideCommand())

	return rootCmd
}
