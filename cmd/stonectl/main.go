package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stonectl",
		Short:         "GemLedger inventory tools",
		Long:          "stonectl imports diamond inventory spreadsheets and manages the inventory database from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newImportCmd())
	root.AddCommand(newTemplateCmd())
	root.AddCommand(newMigrateCmd())
	return root
}
