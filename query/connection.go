package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotConnected is returned by operations that need an open connection.
var ErrNotConnected = errors.New("query: not connected")

// ConnectionOption configures a Connection.
type ConnectionOption func(*Connection)

// WithConnectionLogger sets the logger used for connect and disconnect
// records.
func WithConnectionLogger(logger *slog.Logger) ConnectionOption {
	return func(c *Connection) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithClientOptions applies extra driver options before connecting. The URI
// passed to Connect is applied last and wins.
func WithClientOptions(opts ...*options.ClientOptions) ConnectionOption {
	return func(c *Connection) {
		c.clientOpts = append(c.clientOpts, opts...)
	}
}

// Connection owns a single named MongoDB database handle.
type Connection struct {
	mu         sync.RWMutex
	client     *mongo.Client
	db         *mongo.Database
	log        *slog.Logger
	clientOpts []*options.ClientOptions
}

// NewConnection returns an unconnected Connection.
func NewConnection(opts ...ConnectionOption) *Connection {
	c := &Connection{log: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Connect dials uri and selects dbName. An empty uri is handed to the driver
// as is. Failures are logged and returned.
func (c *Connection) Connect(ctx context.Context, uri, dbName string) error {
	opts := make([]*options.ClientOptions, 0, len(c.clientOpts)+1)
	opts = append(opts, c.clientOpts...)
	opts = append(opts, options.Client().ApplyURI(uri))

	client, err := mongo.Connect(ctx, opts...)
	if err == nil {
		if err = client.Ping(ctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
		}
	}
	if err != nil {
		c.log.ErrorContext(ctx, "MongoDB connection error", "error", err, "database", dbName)
		return fmt.Errorf("connect to mongodb: %w", err)
	}

	c.mu.Lock()
	c.client = client
	c.db = client.Database(dbName)
	c.mu.Unlock()

	c.log.InfoContext(ctx, "Connected to MongoDB", "database", dbName)
	return nil
}

// Disconnect closes the connection. It does nothing when Connect never
// succeeded.
func (c *Connection) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	client := c.client
	c.client, c.db = nil, nil
	c.mu.Unlock()

	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		c.log.ErrorContext(ctx, "Error closing MongoDB connection", "error", err)
		return fmt.Errorf("disconnect from mongodb: %w", err)
	}
	c.log.InfoContext(ctx, "Disconnected from MongoDB")
	return nil
}

// Database returns the selected database, or nil before Connect.
func (c *Connection) Database() *mongo.Database {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// Collection returns the named collection, or nil before Connect so that a
// Run against it fails with ErrInvalidArgument.
func (c *Connection) Collection(name string) *mongo.Collection {
	db := c.Database()
	if db == nil {
		return nil
	}
	return db.Collection(name)
}

// Ping checks the server using rp, defaulting to the primary.
func (c *Connection) Ping(ctx context.Context, rp *readpref.ReadPref) error {
	c.mu.RLock()
	client := c.client
	c.mu.RUnlock()

	if client == nil {
		return ErrNotConnected
	}
	if rp == nil {
		rp = readpref.Primary()
	}
	return client.Ping(ctx, rp)
}
