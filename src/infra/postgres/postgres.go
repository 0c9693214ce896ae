package postgres

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConnectionFailed is returned by Open when the database cannot be reached.
var ErrConnectionFailed = errors.New("postgres connection failed")

type Config struct {
	Host     string
	Port     string
	DBName   string
	User     string
	Password string
}

func (c Config) connString() string {
	credentials := url.UserPassword(c.User, c.Password)
	return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=disable", credentials.String(), c.Host, c.Port, c.DBName)
}

// Connector opens one dedicated connection per operation. There is no pool:
// every caller owns the connection it opened and must Close it.
type Connector struct {
	connConfig *pgx.ConnConfig
}

func NewConnector(cfg Config) (*Connector, error) {
	connConfig, err := pgx.ParseConfig(cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}

	// Configurações de sessão aplicadas a cada conexão aberta
	connConfig.RuntimeParams = map[string]string{
		"timezone":                            "UTC",
		"statement_timeout":                   "30s",
		"lock_timeout":                        "10s",
		"idle_in_transaction_session_timeout": "60s",
	}

	return &Connector{connConfig: connConfig}, nil
}

// Open establishes a fresh connection. Failures wrap ErrConnectionFailed and are not retried.
func (c *Connector) Open(ctx context.Context) (*Conn, error) {
	conn, err := pgx.ConnectConfig(ctx, c.connConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return &Conn{conn: conn}, nil
}

// Conn is a single owned connection.
type Conn struct {
	conn *pgx.Conn
}

// Close releases the connection. Calling it on a nil or already closed Conn is a no-op.
func (c *Conn) Close(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return nil
	}

	err := c.conn.Close(ctx)
	c.conn = nil
	return err
}

func (c *Conn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

func (c *Conn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return c.conn.Exec(ctx, sql, args...)
}

func (c *Conn) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.conn.Begin(ctx)
}

// WithConn opens a connection, runs fn and closes the connection on every exit path.
func WithConn(ctx context.Context, connector *Connector, fn func(conn *Conn) error) error {
	conn, err := connector.Open(ctx)
	if err != nil {
		return err
	}
	defer conn.Close(context.WithoutCancel(ctx))

	return fn(conn)
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return false
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
