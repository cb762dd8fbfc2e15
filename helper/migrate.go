package helper

//nolint:revive
import (
	"careops/config"
	"careops/infras/postgres"
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action, use 'up', 'down', 'drop' or 'step-up'")

type migration struct {
	run  func(*migrate.Migrate) error
	done string
}

// down rolls back a single version; drop unwinds every version.
var migrations = map[string]migration{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "applied all pending migrations"},
	ActionStepUp: {run: func(m *migrate.Migrate) error { return m.Steps(1) }, done: "applied next migration"},
	ActionDown:   {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, done: "rolled back last migration"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "rolled back all migrations"},
}

// connectionString targets the write endpoint and names the version table.
func connectionString(cfg *config.Config) string {
	dsn := postgres.EndpointDSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix)

	return dsn + "&x-migrations-table=" + url.QueryEscape(cfg.DB.Postgres.MigrationTable)
}

func Runner(cfg *config.Config, action string) error {
	return RunnerWithDSN(cfg.DB.Postgres.MigrationPath, connectionString(cfg), action)
}

// RunnerWithDSN applies the migrations found at sourceURL (for example
// file://migrations/postgres) to the database behind dsn.
func RunnerWithDSN(sourceURL, dsn, action string) error {
	step, ok := migrations[action]
	if !ok {
		return ErrUnknownAction
	}

	mig, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	if err = step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, verErr := mig.Version()

	event := log.Info().Str("action", action)
	if verErr == nil {
		event = event.Uint("version", version).Bool("dirty", dirty)
	}

	event.Msg(step.done)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}
