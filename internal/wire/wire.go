// Package wire provides dependency injection for the prismagen application.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"log/slog"
	"sync"

	"github.com/example/prismagen/internal/adapters/filesystem"
	"github.com/example/prismagen/internal/adapters/sqlite"
	"github.com/example/prismagen/internal/app"
	"github.com/example/prismagen/internal/config"
	"github.com/example/prismagen/internal/db"
	"github.com/example/prismagen/internal/ports/primary"
	"github.com/example/prismagen/internal/ports/secondary"
	"github.com/example/prismagen/internal/scaffold"
)

var (
	cfg             = config.Default()
	database        *sql.DB
	generateService primary.GenerateService
	historyService  primary.HistoryService
	once            sync.Once
)

// Configure sets the configuration used by the services. It must be called
// before the first service is requested; later calls rebuild the services.
func Configure(c *config.Config) {
	Close()
	cfg = c
	once = sync.Once{}
}

// Config returns the active configuration.
func Config() *config.Config {
	return cfg
}

// GenerateService returns the singleton GenerateService instance.
func GenerateService() primary.GenerateService {
	once.Do(initServices)
	return generateService
}

// HistoryService returns the singleton HistoryService instance.
// It is nil when history is disabled or its database cannot be opened.
func HistoryService() primary.HistoryService {
	once.Do(initServices)
	return historyService
}

// Aliases loads the module aliases from the configured tsconfig.
func Aliases() (config.Aliases, error) {
	return config.LoadAliases(cfg.TSConfigPath())
}

// GeneratorOptions maps the configuration onto generator options.
func GeneratorOptions(c *config.Config) scaffold.Options {
	return scaffold.Options{
		Layout: scaffold.Layout{
			EntityDir:           c.Layout.Entity,
			MapperDir:           c.Layout.Mapper,
			RepositoryDir:       c.Layout.Repository,
			PrismaRepositoryDir: c.Layout.PrismaRepository,
			Extension:           c.Extension,
		},
		SoftDeleteField: c.SoftDeleteField,
		LegacyUpdate:    c.Compat.LegacyUpdate,
	}
}

// Close releases the history database, if open.
func Close() {
	if database != nil {
		database.Close()
		database = nil
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// historyRepo stays a nil interface when history is disabled
	var historyRepo secondary.HistoryRepository
	historyService = nil

	if cfg.History.Enabled {
		conn, err := db.Open(cfg.HistoryPath())
		if err != nil {
			// Generation still works; only the run log is lost.
			slog.Warn("history unavailable, runs will not be recorded", "path", cfg.HistoryPath(), "error", err)
		} else {
			database = conn
			historyRepo = sqlite.NewHistoryRepository(database)
			historyService = app.NewHistoryService(historyRepo)
		}
	} else {
		slog.Debug("generation history disabled")
	}

	generator := scaffold.NewGenerator(GeneratorOptions(cfg))
	generateService = app.NewGenerateService(generator, filesystem.NewFileWriter(), historyRepo)
}
