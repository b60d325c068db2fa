// Package store serves questions and the tag vocabulary to quiz hosts.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meister/internal/question"
)

// ErrUnknownDriver indicates an unsupported store driver name.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Store retrieves questions by tag. The page argument is accepted for
// forward compatibility; implementations return every match.
type Store interface {
	FetchQuestions(ctx context.Context, tags []string, page int) ([]question.Question, error)
	Tags(ctx context.Context) ([]string, error)
}

// Driver names a store backend.
type Driver string

const (
	DriverMemory Driver = "memory"
	DriverSQLite Driver = "sqlite"
	DriverDuckDB Driver = "duckdb"
)

// ParseDriver validates a driver name.
func ParseDriver(value string) (Driver, error) {
	switch Driver(value) {
	case DriverMemory, DriverSQLite, DriverDuckDB:
		return Driver(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, value)
	}
}

// Backend is a Store that holds resources.
type Backend interface {
	Store
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver  Driver
	DSN     string
	Latency time.Duration
}

// Open returns the backend named by opts. The memory backend serves
// catalog; SQL backends serve whatever was last seeded.
func Open(ctx context.Context, opts Options, catalog question.Catalog) (Backend, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemory(catalog, opts.Latency), nil
	case DriverSQLite, DriverDuckDB:
		return OpenSQL(ctx, opts.Driver, opts.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, opts.Driver)
	}
}
