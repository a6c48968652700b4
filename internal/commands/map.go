package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/regnskap/internal/statement"
)

func newMapCommand() *cobra.Command {
	var repoDir string
	var unmappedOnly bool

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show which line each trial balance account maps to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := absRepo(repoDir)
			if err != nil {
				return err
			}
			return runMap(cmd, absDir, unmappedOnly)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "engagement directory")
	cmd.Flags().BoolVar(&unmappedOnly, "unmapped", false, "list unmapped accounts only")

	return cmd
}

func runMap(cmd *cobra.Command, root string, unmappedOnly bool) error {
	log, err := engagementLogger(cmd, root)
	if err != nil {
		return err
	}
	eng, err := loadEngagement(root, log)
	if err != nil {
		return err
	}

	opts := eng.options()
	opts.Strict = false
	res, err := statement.NewBuilder(log, opts).Build(eng.input())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if !unmappedOnly {
		fmt.Fprintln(tw, "KONTO\tKONTONAVN\tREGNR\tREGNSKAPSLINJE\tKILDE")
		for _, a := range res.Accounts {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", a.Account, a.Name, a.Line, eng.lines.Name(a.Line), eng.source(a.Account))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	unmapped := res.UnmappedAccounts()
	fmt.Fprintf(cmd.OutOrStdout(), "%d unmapped account(s)\n", len(unmapped))
	for _, b := range res.Unmapped {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", b.Account, b.Name, b.Amounts.Closing.StringFixed(2))
	}
	return tw.Flush()
}

// source names where an account's line came from.
func (e *engagement) source(account int) string {
	if _, ok := e.overrides.Get(account); ok {
		return "overstyring"
	}
	for _, b := range e.balances {
		if b.Line != 0 {
			return "regnr"
		}
	}
	return "intervall"
}
