package postgres

//nolint:revive
import (
	"careops/config"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads and writes so a replica can serve list and dashboard queries.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens both pools. Without a configured replica the read side shares
// the write pool.
func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres
	write := connect("write", pg.Write, pg.Prefix, pg.MaxRetry, pg.RetryWaitTime)

	if cfg.DB.Postgres.Read.Host == "" {
		log.Info().Msg("No read replica configured, reads use the write connection")

		return NewSingle(write)
	}

	return &Connection{
		Read:  connect("read", pg.Read, pg.Prefix, pg.MaxRetry, pg.RetryWaitTime),
		Write: write,
	}
}

// NewSingle uses one pool for both reads and writes.
func NewSingle(db *sqlx.DB) *Connection {
	return &Connection{Read: db, Write: db}
}

func (c *Connection) Close() error {
	var errs []error

	if c.Write != nil {
		errs = append(errs, c.Write.Close())
	}

	if c.Read != nil && c.Read != c.Write {
		errs = append(errs, c.Read.Close())
	}

	return errors.Join(errs...)
}

// DSN builds the lib/pq connection URL shared by the app and the migrator.
// Credentials are escaped so passwords may contain URL delimiters.
func DSN(username, password, host, port, dbName, sslMode string) string {
	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(username, password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}

	return dsn.String()
}

// EndpointDSN is DSN for a configured endpoint, with the database name prefix applied.
func EndpointDSN(endpoint config.PostgresEndpoint, prefix string) string {
	return DSN(endpoint.Username, endpoint.Password, endpoint.Host, endpoint.Port, prefix+endpoint.Name, endpoint.SSLMode)
}

// connect retries until the database answers and exits the process once
// every attempt has failed.
func connect(name string, endpoint config.PostgresEndpoint, prefix string, maxRetry, waitSeconds int) *sqlx.DB {
	dsn := EndpointDSN(endpoint, prefix)
	logCtx := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", prefix+endpoint.Name).
		Logger()

	for attempt := 1; attempt <= maxRetry; attempt++ {
		db, err := sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logCtx.Info().Msg("Connected to database")

			return db
		}

		logCtx.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database")

		if attempt < maxRetry {
			time.Sleep(time.Duration(waitSeconds) * time.Second)
		}
	}

	logCtx.Fatal().Int("maxRetry", maxRetry).Msgf("Giving up connecting to %s database", name)

	return nil
}
