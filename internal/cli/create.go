package cli

import (
	"github.com/spf13/cobra"

	"github.com/davesims/rhom-sti/internal/wire"
)

// CreateCmd returns the create command
func CreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [model] [key=value...]",
		Short: "Create an object through a model",
		Long:  "Create and persist an object. Child models set their discriminator on the new object.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			return wire.ModelAdapter().Create(cmd.Context(), args[0], attrs)
		},
	}
}

// NewCmd returns the new command
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [model] [key=value...]",
		Short: "Build an object through a model",
		Long:  "Build an object without persisting it, unless --save is given.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			save, _ := cmd.Flags().GetBool("save")
			return wire.ModelAdapter().New(cmd.Context(), args[0], attrs, save)
		},
	}

	cmd.Flags().Bool("save", false, "Persist the built object")

	return cmd
}
