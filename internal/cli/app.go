package cli

import (
	"fmt"
	"log/slog"

	"github.com/mmynk/hourbook/internal/auth"
	"github.com/mmynk/hourbook/internal/config"
	"github.com/mmynk/hourbook/internal/metrics"
	"github.com/mmynk/hourbook/internal/mirror"
	"github.com/mmynk/hourbook/internal/recordstore"
	"github.com/mmynk/hourbook/internal/storage"
	"github.com/mmynk/hourbook/internal/storage/csvfile"
	"github.com/mmynk/hourbook/internal/storage/sqlite"
)

// app is everything a command needs, wired from a Config.
type app struct {
	cfg         *config.Config
	table       storage.Table
	store       *recordstore.Store
	credentials *auth.FileCredentials
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// openTable selects the storage backend named in cfg.
func openTable(cfg *config.Config) (storage.Table, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.New(cfg.DBPath)
	case config.BackendCSV:
		return csvfile.New(cfg.DataFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// newApp opens the table and builds the record store around it.
func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}

	table, err := openTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	m := metrics.New()
	credentials := auth.NewFileCredentials(cfg.PasswordFile, auth.BcryptHasher{})
	if _, err := credentials.Bootstrap(cfg.AdminPassword); err != nil {
		table.Close()
		return nil, fmt.Errorf("failed to initialize admin password: %w", err)
	}

	store := recordstore.New(table,
		recordstore.WithMirror(mirror.New(cfg.MirrorConfigFile, m, logger)),
		recordstore.WithCredentials(credentials),
		recordstore.WithMetrics(m),
		recordstore.WithLogger(logger),
	)

	return &app{
		cfg:         cfg,
		table:       table,
		store:       store,
		credentials: credentials,
		metrics:     m,
		logger:      logger,
	}, nil
}

func (a *app) Close() error {
	return a.table.Close()
}
