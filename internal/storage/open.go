package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/meltforce/strain/internal/config"
)

// Open connects the backend selected by cfg.Storage.Driver. The postgres
// backend has its migrations applied before the pool is created.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (KV, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		kv, err := OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite store opened", "path", cfg.Storage.SQLitePath)
		return kv, nil
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		if err := RunMigrations(dsn, cfg.Storage.Migrations); err != nil {
			return nil, err
		}
		log.Info("migrations applied")
		db, err := New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		log.Info("database connected")
		return db, nil
	case config.DriverRedis:
		r, err := OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		log.Info("redis connected", "addr", cfg.Redis.Addr)
		return r, nil
	case config.DriverMemory:
		log.Warn("using in-memory store; state is lost on exit")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
