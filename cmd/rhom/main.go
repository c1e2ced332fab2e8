package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davesims/rhom-sti/internal/cli"
	"github.com/davesims/rhom-sti/internal/db"
	"github.com/davesims/rhom-sti/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "rhom",
		Short:   "rhom - single-table inheritance over a property-bag store",
		Version: version.String(),
		Long: `rhom stores objects as property bags in SQLite. Child models share a
base model's storage and are told apart by a "type" attribute.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ModelsCmd())

	// Model operations
	rootCmd.AddCommand(cli.FindCmd())
	rootCmd.AddCommand(cli.CreateCmd())
	rootCmd.AddCommand(cli.NewCmd())

	err := rootCmd.Execute()
	db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
