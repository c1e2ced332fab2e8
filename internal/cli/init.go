package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/davesims/rhom-sti/internal/config"
	"github.com/davesims/rhom-sti/internal/db"
	"github.com/davesims/rhom-sti/internal/loader"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize rhom in the current directory",
		Long: `Initialize rhom in the current directory.

Writes .rhom/config.json, a starter models.yaml declaring a base model and
two child models, and creates the property-bag database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			dbPath, _ := cmd.Flags().GetString("db")
			legacy, _ := cmd.Flags().GetBool("legacy-conditions")
			nested, _ := cmd.Flags().GetBool("allow-nested")

			cfg := config.DefaultConfig()
			cfg.DBPath = dbPath
			cfg.LegacyConditions = legacy
			cfg.AllowNestedChildren = nested

			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}
			fmt.Println("✓ Config written to .rhom/config.json")

			created, err := writeStarterModels(cfg.ModelsPath(cwd))
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("✓ Models declared in %s\n", cfg.ModelsFile)
			}

			resolved, err := cfg.ResolveDBPath()
			if err != nil {
				return err
			}
			database, err := db.Open(resolved)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer database.Close()

			fmt.Printf("✓ Database initialized at %s\n", resolved)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  rhom models")
			fmt.Println("  rhom create Customer name=Acme")
			fmt.Println("  rhom find Customer")

			return nil
		},
	}

	cmd.Flags().String("db", "", "Database path (default ~/.rhom/rhom.db)")
	cmd.Flags().Bool("legacy-conditions", false, "Pass unsupported find conditions through unscoped")
	cmd.Flags().Bool("allow-nested", false, "Allow child models of child models")

	return cmd
}

// writeStarterModels writes a sample models file unless one already exists.
func writeStarterModels(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil // Already exists, skip
	}

	doc := &loader.ModelsYAML{
		Version: "1",
		Models: []*loader.ModelYAML{
			{Name: "Contact"},
			{Name: "Customer", Parent: "Contact"},
			{Name: "Vendor", Parent: "Contact"},
		},
	}
	data, err := loader.Marshal(doc)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create models dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write models file: %w", err)
	}
	return true, nil
}
