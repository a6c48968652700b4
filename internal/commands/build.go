package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/regnskap/internal/export"
	"github.com/cleared-dev/regnskap/internal/statement"
)

func newBuildCommand() *cobra.Command {
	var repoDir string
	var outDir string
	var strict bool
	var formats []string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the statement and write it to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := absRepo(repoDir)
			if err != nil {
				return err
			}
			return runBuild(cmd, absDir, outDir, strict, formats)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "engagement directory")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from regnskap.yaml)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any account is unmapped")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "output formats: csv, xlsx (default from regnskap.yaml)")

	return cmd
}

func runBuild(cmd *cobra.Command, root, outDir string, strict bool, formats []string) error {
	log, err := engagementLogger(cmd, root)
	if err != nil {
		return err
	}
	eng, err := loadEngagement(root, log)
	if err != nil {
		return err
	}

	opts := eng.options()
	opts.Strict = opts.Strict || strict
	res, err := statement.NewBuilder(log, opts).Build(eng.input())
	if err != nil {
		return err
	}

	if outDir == "" {
		outDir = eng.cfg.Output.Dir
	}
	if len(formats) == 0 {
		formats = eng.cfg.Output.Formats
	}
	written, err := export.WriteFiles(outDir, res, formats)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	d := res.Diagnostics
	fmt.Fprintf(out, "Built statement for %s %d: %d lines, %d of %d accounts mapped, %d warning(s)\n",
		eng.cfg.Client.Name, eng.cfg.Year, len(res.Lines), d.MappedAccounts, d.SourceAccounts, len(d.Warnings))
	for _, path := range written {
		fmt.Fprintf(out, "  wrote %s\n", path)
	}
	return nil
}
