// Package wire provides dependency injection for the rhom application.
// It creates singleton services with lazy initialization.
package wire

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/davesims/rhom-sti/internal/adapters/cli"
	"github.com/davesims/rhom-sti/internal/adapters/sqlite"
	"github.com/davesims/rhom-sti/internal/app"
	"github.com/davesims/rhom-sti/internal/config"
	"github.com/davesims/rhom-sti/internal/db"
	"github.com/davesims/rhom-sti/internal/loader"
	"github.com/davesims/rhom-sti/internal/ports/primary"
)

// DebugEnv enables registration logging on stderr when set.
const DebugEnv = "RHOM_DEBUG"

var (
	modelRegistry primary.ModelRegistry
	once          sync.Once
)

// ModelRegistry returns the singleton ModelRegistry instance.
func ModelRegistry() primary.ModelRegistry {
	once.Do(initServices)
	return modelRegistry
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}

	cfg, err := config.ResolveConfig(cwd)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		log.Fatalf("failed to resolve database path: %v", err)
	}

	// Get database connection
	database, err := db.GetDB(dbPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger := app.DiscardLogger()
	if os.Getenv(DebugEnv) != "" {
		logger = log.New(os.Stderr, "rhom: ", log.LstdFlags)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	bag := sqlite.NewPropertyBagRepository(database)

	// Create services (primary ports implementation)
	registry := app.NewModelRegistry(bag, app.RegistryOptions{
		LegacyConditions:    cfg.LegacyConditions,
		AllowNestedChildren: cfg.AllowNestedChildren,
		Logger:              logger,
	})

	doc, err := loader.LoadFile(cfg.ModelsPath(cwd))
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No declarations yet; the registry stays empty.
	case err != nil:
		log.Fatalf("failed to load models: %v", err)
	default:
		if err := loader.Apply(registry, doc); err != nil {
			log.Fatalf("failed to define models: %v", err)
		}
	}

	modelRegistry = registry
}

// ModelAdapter returns a new ModelAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ModelAdapter() *cliadapter.ModelAdapter {
	return ModelAdapterWithOutput(os.Stdout)
}

// ModelAdapterWithOutput returns a new ModelAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func ModelAdapterWithOutput(out io.Writer) *cliadapter.ModelAdapter {
	once.Do(initServices)
	return cliadapter.NewModelAdapter(modelRegistry, out)
}
