// Package georef is a disk-backed cache for geo reference datasets.
// References change rarely (county boundaries, municipality coordinates),
// so each one is kept as a Parquet file under the cache dir and refreshed
// only when older than its per-reference max age.
package georef

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/parquet-go/parquet-go"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/observability"
)

// FetchFunc produces a fresh geo reference from its upstream source.
type FetchFunc func(ctx context.Context) ([]domain.GeoRef, error)

// Store caches geo references on disk with mtime-based freshness.
type Store struct {
	dir     string
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStore creates a Store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{dir: dir, clock: clock, logger: logger, metrics: metrics}
}

// Load returns the named reference, reading the cached copy when it is
// younger than maxAge and falling back to fetch otherwise. Stale, missing,
// or unreadable cache files are treated as misses. Only non-empty fetch
// results are written back, so a failed upstream cannot poison the cache.
func (s *Store) Load(ctx context.Context, name string, maxAge time.Duration, fetch FetchFunc) ([]domain.GeoRef, error) {
	path := filepath.Join(s.dir, name+".parquet")

	if refs, ok := s.readFresh(path, maxAge); ok {
		s.metrics.CacheLookups.WithLabelValues(name, "hit").Inc()
		s.logger.Info("geo reference loaded from cache", "reference", name, "entries", len(refs))
		return refs, nil
	}
	s.metrics.CacheLookups.WithLabelValues(name, "miss").Inc()

	refs, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh geo reference %s: %w", name, err)
	}
	if len(refs) == 0 {
		return refs, nil
	}

	if err := s.write(path, refs); err != nil {
		// A broken cache write only costs the next run a refetch.
		s.logger.Warn("geo reference cache write failed", "reference", name, "error", err)
	}
	return refs, nil
}

// readFresh returns the cached reference when the file exists, is younger
// than maxAge, and parses.
func (s *Store) readFresh(path string, maxAge time.Duration) ([]domain.GeoRef, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	age := s.clock.Now().Sub(info.ModTime())
	if age > maxAge {
		s.logger.Info("geo reference cache is stale",
			"path", path, "age", age.Round(time.Hour), "max_age", maxAge)
		return nil, false
	}

	refs, err := parquet.ReadFile[domain.GeoRef](path)
	if err != nil {
		s.logger.Warn("geo reference cache unreadable, refetching", "path", path, "error", err)
		return nil, false
	}
	return refs, true
}

func (s *Store) write(path string, refs []domain.GeoRef) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, refs)
}
