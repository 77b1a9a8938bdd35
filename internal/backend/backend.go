// Package backend selects and opens the contact store named by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"phonebook/internal/config"
	"phonebook/internal/database"
	"phonebook/internal/database/migration"
	"phonebook/internal/repository"
	"phonebook/internal/repository/memory"
	"phonebook/internal/repository/mongodb"
	"phonebook/internal/repository/mysql"
	"phonebook/internal/repository/postgres"
	"phonebook/internal/service"
	"phonebook/internal/storage"
)

// Backend is an opened contact store.
type Backend struct {
	Driver string
	Repo   repository.ContactRepository
	// Pinger is nil for stores without a connection.
	Pinger database.Pinger

	migrate func(ctx context.Context) error
	closers []func() error
}

// Open connects to the store selected by cfg.Store.Driver. It does not migrate.
func Open(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Store.Driver}

	switch cfg.Store.Driver {
	case config.DriverMemory:
		b.Repo = memory.NewContactMemory()

	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.Repo = postgres.NewContactPostgres(db)
		b.Pinger = db
		b.closers = append(b.closers, db.Close)
		b.migrate = func(ctx context.Context) error {
			return migration.EnsureMigrated(ctx, db, migration.DialectPostgres, log, cfg.Database.Host)
		}

	case config.DriverMySQL:
		db, err := database.NewMySQL(cfg.MySQL)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		b.Repo = mysql.NewContactMySQL(db)
		b.Pinger = db
		b.closers = append(b.closers, db.Close)
		b.migrate = func(ctx context.Context) error {
			return migration.EnsureMigrated(ctx, db.DB, migration.DialectMySQL, log, cfg.MySQL.Host)
		}

	case config.DriverMongo:
		client, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		repo := mongodb.NewContactMongo(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		b.Repo = repo
		b.Pinger = database.MongoPinger{Client: client}
		b.closers = append(b.closers, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		})
		b.migrate = func(ctx context.Context) error {
			if err := repo.EnsureIndexes(ctx); err != nil {
				return fmt.Errorf("ensure mongo indexes: %w", err)
			}
			log.Info("db_migration_success", zap.String("component", "database"), zap.String("dialect", "mongo"))
			return nil
		}

	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Store.Driver)
	}

	log.Info("store_opened", zap.String("driver", b.Driver))
	return b, nil
}

// Migrate creates the schema (SQL) or indexes (Mongo). The memory store needs none.
func (b *Backend) Migrate(ctx context.Context) error {
	if b.migrate == nil {
		return nil
	}
	return b.migrate(ctx)
}

// Close releases every connection the backend holds.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// OpenSnapshots returns the snapshot service, or nil when object storage is not configured.
func OpenSnapshots(ctx context.Context, cfg config.MinIOConfig, contacts service.ContactService) (service.SnapshotService, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	store, err := storage.NewMinIO(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize object storage: %w", err)
	}
	return service.NewSnapshotService(store, contacts, time.Duration(cfg.PresignExpirySec)*time.Second), nil
}
