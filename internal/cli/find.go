package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davesims/rhom-sti/internal/ports/primary"
	"github.com/davesims/rhom-sti/internal/wire"
)

// FindCmd returns the find command
func FindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [model] [all|first|id]",
		Short: "Find objects through a model",
		Long: `Find objects through a model.

Child models only return objects carrying their discriminator. Conditions are
given either as repeated --where key=value pairs or as one --sql predicate.`,
		Example: `  rhom find Customer
  rhom find Customer first --where name=Acme
  rhom find Vendor --sql "name LIKE 'A%'" --order name --desc`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := primary.ScopeAll
			if len(args) == 2 {
				scope = args[1]
			}

			opts, err := findOptionsFromFlags(cmd)
			if err != nil {
				return err
			}

			return wire.ModelAdapter().Find(cmd.Context(), args[0], scope, opts)
		},
	}

	cmd.Flags().StringArray("where", nil, "Condition as key=value (repeatable)")
	cmd.Flags().String("sql", "", "Condition as a SQL predicate")
	cmd.Flags().String("order", "", "Attribute to order by")
	cmd.Flags().Bool("desc", false, "Order descending")
	cmd.Flags().Int("per-page", 0, "Maximum number of objects")
	cmd.Flags().Int("offset", 0, "Number of objects to skip")
	cmd.Flags().StringSlice("select", nil, "Attributes to return")

	return cmd
}

// findOptionsFromFlags builds find options from the find command flags.
// Returns nil options when no flag was given.
func findOptionsFromFlags(cmd *cobra.Command) (*primary.FindOptions, error) {
	where, _ := cmd.Flags().GetStringArray("where")
	sql, _ := cmd.Flags().GetString("sql")
	order, _ := cmd.Flags().GetString("order")
	desc, _ := cmd.Flags().GetBool("desc")
	perPage, _ := cmd.Flags().GetInt("per-page")
	offset, _ := cmd.Flags().GetInt("offset")
	selected, _ := cmd.Flags().GetStringSlice("select")

	if len(where) > 0 && sql != "" {
		return nil, fmt.Errorf("--where and --sql cannot be combined")
	}

	if len(where) == 0 && sql == "" && order == "" && perPage == 0 && offset == 0 && len(selected) == 0 {
		return nil, nil
	}

	opts := &primary.FindOptions{
		Order:   order,
		PerPage: perPage,
		Offset:  offset,
		Select:  selected,
	}
	if desc {
		opts.OrderDir = "DESC"
	}

	switch {
	case sql != "":
		opts.Conditions = sql
	case len(where) > 0:
		conditions, err := parseAssignments(where)
		if err != nil {
			return nil, err
		}
		opts.Conditions = map[string]any(conditions)
	}

	return opts, nil
}
