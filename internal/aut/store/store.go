package store

import (
	"context"
	"errors"

	"github.com/aut-dev/aut/internal/aut/domain"
)

// ErrUnavailable wraps every backing-file failure: missing, unreadable,
// unwritable or unparsable. Callers treat it as a service-level fault; it is
// never retried automatically.
var ErrUnavailable = errors.New("store: directory unavailable")

// Store is the persistence interface for the account directory. Concrete
// drivers (yamlfile) implement this. The directory is never cached: Load
// re-reads the backing file every time, so the file stays the sole source
// of truth.
type Store interface {
	// Load reads and parses the full directory from the backing file.
	Load(ctx context.Context) (domain.Directory, error)

	// Mutate runs fn against the current directory and persists the result.
	// The load-apply-persist cycle is serialised against all other Mutate
	// calls, so concurrent saves cannot lose each other's writes. An error
	// from fn aborts the cycle without touching the file.
	Mutate(ctx context.Context, fn func(*domain.Directory) error) error

	// Ping verifies the backing file is readable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
