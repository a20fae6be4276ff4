package kimberlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kimberlitedb/kimberlite-go/diag"
)

// DefaultBatchConcurrency is the number of batch statements run at once
// unless WithBatchConcurrency says otherwise.
const DefaultBatchConcurrency = 4

// Client is the main entry point for interacting with a Kimberlite database.
//
// A Client is safe for concurrent use. Warnings raised by any operation
// accumulate on a single chain until ClearWarnings is called.
type Client struct {
	mu       sync.RWMutex
	addr     string
	tenant   TenantID
	token    string
	timeout  time.Duration
	closed   bool
	ffiAvail bool
	backend  backend
	logger   *slog.Logger
	batchMax int
	warnings diag.Chain
}

// Option configures a Client.
type Option func(*Client)

// WithTenant sets the tenant ID for the client connection.
func WithTenant(id uint64) Option {
	return func(c *Client) {
		c.tenant = TenantID(id)
	}
}

// WithToken sets the authentication token (JWT or API key).
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the default timeout for operations.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBatchConcurrency bounds how many statements ExecBatch runs at once.
// Values below 1 are ignored.
func WithBatchConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.batchMax = n
		}
	}
}

// Connect creates a new client and establishes a connection to the server.
func Connect(addr string, opts ...Option) (*Client, error) {
	c := newClient(addr, ffiBackend{}, opts...)
	c.ffiAvail = ffiAvailable()

	if c.tenant == 0 {
		return nil, ErrTenantRequired
	}

	if !c.ffiAvail {
		return nil, ErrFFIUnavailable
	}

	if err := c.connect(); err != nil {
		c.logFailure(context.Background(), "connect", err)
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return c, nil
}

func newClient(addr string, be backend, opts ...Option) *Client {
	c := &Client{
		addr:     addr,
		timeout:  30 * time.Second,
		backend:  be,
		batchMax: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases all resources associated with the client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.disconnect()
}

// Query executes a SQL query and returns the results. Warnings in the
// result are also added to the client's warning chain.
func (c *Client) Query(sql string) (*QueryResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrNotConnected
	}

	result, err := c.execQuery(context.Background(), sql)
	if err != nil {
		c.logFailure(context.Background(), "query", err)
		return nil, err
	}
	c.addWarnings(context.Background(), result.Warnings)
	return result, nil
}

// ExecBatch runs the statements concurrently and returns their results in
// statement order.
//
// Every failing statement contributes one diagnostic, and all of them are
// linked into a single chain whose head is the returned error. Results of
// failed statements are nil. Once ctx is done no further statements are
// started; a diagnostic caused by ctx.Err() reports how many were skipped.
//
// The client timeout bounds the whole batch. A running statement sees the
// deadline only if its backend can be interrupted; the FFI bridge checks it
// before each call but cannot abort a call in progress.
func (c *Client) ExecBatch(ctx context.Context, stmts ...string) ([]*QueryResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrNotConnected
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		failures diag.Chain
		skipped  atomic.Int64
		g        errgroup.Group
	)
	results := make([]*QueryResult, len(stmts))
	g.SetLimit(c.batchMax)

	for i, stmt := range stmts {
		if ctx.Err() != nil {
			skipped.Add(int64(len(stmts) - i))
			break
		}
		// Go blocks while the limit is reached, so ctx is checked again
		// once the statement gets its slot.
		g.Go(func() error {
			if ctx.Err() != nil {
				skipped.Add(1)
				return nil
			}
			result, err := c.execQuery(ctx, stmt)
			if err != nil {
				failures.Add(statementError(i, err))
				return nil
			}
			c.addWarnings(ctx, result.Warnings)
			results[i] = result
			return nil
		})
	}
	// Statements report through failures, never through the group.
	_ = g.Wait()

	if n := skipped.Load(); n > 0 {
		failures.Add(NewError(StateQueryCanceled,
			fmt.Sprintf("batch cancelled, %d of %d statements not executed", n, len(stmts)),
			0, ctx.Err()))
	}

	if head := failures.Head(); head != nil {
		c.logFailure(ctx, "exec_batch", head)
		return results, head
	}
	return results, nil
}

// statementError wraps the failure of the i-th batch statement, keeping the
// codes of the underlying diagnostic when there is one.
func statementError(i int, err error) *KimberliteError {
	msg := fmt.Sprintf("statement %d failed", i)
	var rec *KimberliteError
	switch {
	case errors.As(err, &rec):
		return NewError(rec.StatusCode(), msg, rec.VendorCode(), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewError(StateQueryCanceled, msg, 0, err)
	}
	return NewError(StateInternal, msg, 0, err)
}

// CreateStream creates a new event stream with the given name and data class.
func (c *Client) CreateStream(name string, class DataClass) (*StreamInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrNotConnected
	}

	info, err := c.createStream(name, class)
	if err != nil {
		c.logFailure(context.Background(), "create_stream", err)
	}
	return info, err
}

// Append writes one or more events to a stream.
func (c *Client) Append(streamID StreamID, events ...[]byte) (Offset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return 0, ErrNotConnected
	}

	off, err := c.appendEvents(streamID, events)
	if err != nil {
		c.logFailure(context.Background(), "append", err)
	}
	return off, err
}

// ReadEvents reads events from a stream starting at the given offset.
func (c *Client) ReadEvents(streamID StreamID, from Offset, maxBytes uint64) ([]Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, ErrNotConnected
	}

	events, err := c.readEvents(streamID, from, maxBytes)
	if err != nil {
		c.logFailure(context.Background(), "read_events", err)
	}
	return events, err
}

// Warnings returns the head of the chain of warnings raised since the client
// was created or since the last ClearWarnings, or nil if there are none.
// Iterate the chain with its All or Iterate methods.
func (c *Client) Warnings() *KimberliteError {
	return c.warnings.Head()
}

// ClearWarnings detaches the warning chain and returns its head.
func (c *Client) ClearWarnings() *KimberliteError {
	return c.warnings.Reset()
}

func (c *Client) addWarnings(ctx context.Context, warnings []ServerWarning) {
	for _, w := range warnings {
		rec := warningRecord(w)
		c.warnings.Add(rec)
		if c.logger != nil {
			c.logger.InfoContext(ctx, "server warning", "warning", rec)
		}
	}
}

func (c *Client) logFailure(ctx context.Context, op string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.ErrorContext(ctx, "operation failed",
		"op", op,
		"addr", c.addr,
		"error", err,
	)
}

// --- Internal backend bridge (FFI implementation in ffi.go) ---

func (c *Client) connect() error {
	return c.backend.connect(c.addr, uint64(c.tenant), c.token)
}

func (c *Client) disconnect() error {
	return c.backend.disconnect()
}

func (c *Client) execQuery(ctx context.Context, sql string) (*QueryResult, error) {
	return c.backend.query(ctx, sql)
}

func (c *Client) createStream(name string, class DataClass) (*StreamInfo, error) {
	return c.backend.createStream(name, class)
}

func (c *Client) appendEvents(streamID StreamID, events [][]byte) (Offset, error) {
	return c.backend.appendEvents(uint64(streamID), events)
}

func (c *Client) readEvents(streamID StreamID, from Offset, maxBytes uint64) ([]Event, error) {
	return c.backend.readEvents(uint64(streamID), uint64(from), maxBytes)
}
