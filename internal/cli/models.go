package cli

import (
	"github.com/spf13/cobra"

	"github.com/davesims/rhom-sti/internal/wire"
)

// ModelsCmd returns the models command
func ModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List declared models",
		Long:  "List base and child models declared in the models file, with the storage each one routes to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ModelAdapter().Models()
		},
	}
}
