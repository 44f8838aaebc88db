package myconn

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// Connection is a managed handle to one MySQL server. It sequences the
// driver's lifecycle (open, ping, close) and remembers its configuration
// so a lost link can be re-established. It is safe for concurrent use.
type Connection struct {
	mu        sync.Mutex
	cfg       *ConnectionConfig
	db        *sql.DB
	logger    Logger
	sessionID string
}

// Option configures a Connection.
type Option func(*Connection)

// WithLogger sets the logger used for connection lifecycle events.
func WithLogger(logger Logger) Option {
	return func(c *Connection) {
		c.logger = logger
	}
}

// New creates a Connection with deferred initialisation. No network
// activity happens until Connect, ConnectProfile or Ping is called.
func New(opts ...Option) *Connection {
	c := &Connection{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open creates a Connection and connects immediately.
func Open(ctx context.Context, cfg *ConnectionConfig, opts ...Option) (*Connection, error) {
	c := New(opts...)
	if err := c.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Connect provides delayed initialisation or reconnection with other
// settings. Any previously established connection is closed first.
func (c *Connection) Connect(ctx context.Context, cfg *ConnectionConfig) error {
	if cfg == nil {
		return fmt.Errorf("connection config is nil: %w", ErrInvalidConfig)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeLocked()
	c.cfg = cfg.Clone()
	return c.connectLocked(ctx)
}

// ConnectProfile connects using the named profile from a configuration
// document (see Profiles).
func (c *Connection) ConnectProfile(ctx context.Context, profiles *Profiles, name string) error {
	cfg, err := profiles.Config(name)
	if err != nil {
		return err
	}
	return c.Connect(ctx, cfg)
}

// connectLocked dials the server using the stored configuration.
// Caller must hold c.mu.
func (c *Connection) connectLocked(ctx context.Context) error {
	driverCfg, err := c.cfg.DriverConfig()
	if err != nil {
		return err
	}

	initDriverLogging(c.logger)

	// Each established session is tagged so it can be told apart in
	// performance_schema.session_connect_attrs.
	c.sessionID = uuid.NewString()
	driverCfg.ConnectionAttributes += ",session_id:" + c.sessionID

	connector, err := mysql.NewConnector(driverCfg)
	if err != nil {
		return fmt.Errorf("failed to build driver connector: %w", err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxIdleTime(DefaultConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, driverCfg.Timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to %s: %w", c.cfg.Addr(), err)
	}

	c.db = db
	c.logVerbose("connected to %s (session %s)", c.cfg.Addr(), c.sessionID)
	return nil
}

// Connected reports whether a connection is currently established.
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db != nil
}

// Disconnect closes the connection. It is a no-op on an unconnected
// Connection. The configuration is kept, so Ping or Connect can
// re-establish the link.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	c.logVerbose("disconnected from %s", c.cfg.Addr())
	return err
}

// Ping probes connectivity and tries to reconnect if the link was lost or
// initialisation was deferred. A nil return means the connection is
// established after the call.
func (c *Connection) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		if c.cfg == nil {
			return fmt.Errorf("connection was never configured: %w", ErrNotConnected)
		}
		return c.connectLocked(ctx)
	}

	if err := c.db.PingContext(ctx); err != nil {
		c.logVerbose("ping failed (%v), reconnecting to %s", err, c.cfg.Addr())
		c.closeLocked()
		return c.connectLocked(ctx)
	}
	return nil
}

// Query creates a query object bound to this connection. The SQL text may
// be empty and set later.
func (c *Connection) Query(text string) *Query {
	return &Query{conn: c, text: text}
}

// Driver returns the wrapped native database handle, or nil when the
// connection is not established.
func (c *Connection) Driver() *sql.DB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db
}

// SessionID returns the client-generated identifier attached to the
// current session's connection attributes. Empty until connected.
func (c *Connection) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Config returns a copy of the active configuration, or nil for a
// deferred connection that was never configured.
func (c *Connection) Config() *ConnectionConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// closeLocked tears down the driver handle. Caller must hold c.mu.
func (c *Connection) closeLocked() {
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
	c.sessionID = ""
}

func (c *Connection) logVerbose(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Verbose(format, args...)
	}
}

// handle returns the current database handle for query execution.
func (c *Connection) handle() (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, ErrNotConnected
	}
	return c.db, nil
}
