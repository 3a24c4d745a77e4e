package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/0dillon/HNG1/internal/analyzer"
	"github.com/0dillon/HNG1/internal/filter"
	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/nlquery"
	"github.com/0dillon/HNG1/internal/queryir"
	"github.com/0dillon/HNG1/internal/store"
)

// Repository is the storage contract the engine depends on.
// Implemented by *store.Memory and *store.Store.
//
// Create must be atomic: of two concurrent Creates for the same ID, exactly
// one reports inserted=true. Get and Delete return store.ErrNotFound on miss.
type Repository interface {
	Create(ctx context.Context, rec ir.StringRecord) (stored ir.StringRecord, inserted bool, err error)
	Get(ctx context.Context, id string) (ir.StringRecord, error)
	List(ctx context.Context) ([]ir.StringRecord, error)
	Delete(ctx context.Context, id string) error
}

// Querier is implemented by repositories that evaluate predicates natively.
// The result must equal filter.Select over List for the same predicate.
type Querier interface {
	Query(ctx context.Context, pred queryir.Predicate) ([]ir.StringRecord, error)
}

// Counter is implemented by repositories that can count without listing.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Engine is the string service core.
//
// Thread-safety: all methods are safe for concurrent use provided the
// Repository is.
type Engine struct {
	repo   Repository
	clock  Clock
	logger *slog.Logger
}

// Option allows configuration of engine parameters.
type Option func(*Engine)

// WithClock sets the clock used for created_at.
// Default: SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLogger sets the logger.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine over repo.
func New(repo Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		clock:  SystemClock{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Create analyzes and stores value.
//
// Returns ErrCodeConflict if the value is already stored. Creation is never
// silently idempotent: the caller learns about the duplicate.
func (e *Engine) Create(ctx context.Context, value string) (ir.StringRecord, error) {
	rec := analyzer.NewRecord(value, e.clock.Now())

	stored, inserted, err := e.repo.Create(ctx, rec)
	if err != nil {
		e.logger.Error("create failed", "id", rec.ID, "error", err)
		return ir.StringRecord{}, errInternal(err)
	}
	if !inserted {
		e.logger.Debug("create conflict", "id", stored.ID)
		return ir.StringRecord{}, errConflict()
	}

	e.logger.Debug("string created", "id", stored.ID, "length", stored.Properties.Length)
	return stored, nil
}

// Get returns the record stored for value.
// Returns ErrCodeNotFound if value was never stored or has been deleted.
func (e *Engine) Get(ctx context.Context, value string) (ir.StringRecord, error) {
	rec, err := e.repo.Get(ctx, ir.Fingerprint(value))
	if errors.Is(err, store.ErrNotFound) {
		return ir.StringRecord{}, errNotFound()
	}
	if err != nil {
		e.logger.Error("get failed", "error", err)
		return ir.StringRecord{}, errInternal(err)
	}
	return rec, nil
}

// Delete removes the record stored for value.
// Returns ErrCodeNotFound if there is none, including on a repeated delete.
func (e *Engine) Delete(ctx context.Context, value string) error {
	id := ir.Fingerprint(value)
	err := e.repo.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound()
	}
	if err != nil {
		e.logger.Error("delete failed", "id", id, "error", err)
		return errInternal(err)
	}

	e.logger.Debug("string deleted", "id", id)
	return nil
}

// List returns the records matching every supplied criterion.
// Returns ErrCodeInvalidArgument if the criteria cannot be applied.
func (e *Engine) List(ctx context.Context, c queryir.Criteria) ([]ir.StringRecord, error) {
	if err := queryir.Validate(c); err != nil {
		return nil, invalidArgument(err)
	}

	if q, ok := e.repo.(Querier); ok {
		recs, err := q.Query(ctx, c.Predicate())
		if err != nil {
			e.logger.Error("query failed", "error", err)
			return nil, errInternal(err)
		}
		return recs, nil
	}

	all, err := e.repo.List(ctx)
	if err != nil {
		e.logger.Error("list failed", "error", err)
		return nil, errInternal(err)
	}

	recs, err := filter.Apply(all, c)
	if err != nil {
		return nil, invalidArgument(err)
	}
	return recs, nil
}

// Interpret translates a free-text query and returns its interpretation
// together with the matching records.
// Returns ErrCodeInvalidArgument if query is empty.
func (e *Engine) Interpret(ctx context.Context, query string) (nlquery.Interpretation, []ir.StringRecord, error) {
	interp, err := nlquery.Translate(query)
	if err != nil {
		return nlquery.Interpretation{}, nil, invalidArgument(err)
	}

	recs, err := e.List(ctx, interp.ParsedFilters)
	if err != nil {
		return nlquery.Interpretation{}, nil, err
	}

	e.logger.Debug("query interpreted", "query", query, "matches", len(recs))
	return interp, recs, nil
}

// Count returns the number of stored records.
func (e *Engine) Count(ctx context.Context) (int, error) {
	if c, ok := e.repo.(Counter); ok {
		n, err := c.Count(ctx)
		if err != nil {
			return 0, errInternal(err)
		}
		return n, nil
	}

	all, err := e.repo.List(ctx)
	if err != nil {
		return 0, errInternal(err)
	}
	return len(all), nil
}

// invalidArgument converts a *queryir.ArgumentError into an engine error.
// Any other error is treated as internal.
func invalidArgument(err error) *Error {
	var argErr *queryir.ArgumentError
	if errors.As(err, &argErr) {
		return &Error{Code: ErrCodeInvalidArgument, Message: argErr.Message, Err: err}
	}
	return errInternal(err)
}
