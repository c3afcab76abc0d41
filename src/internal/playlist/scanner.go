package playlist

import (
	"context"
	"sync"
	"time"
)

// scanner implements the updater interface via a plain ticker, grounded on
// the teacher's scanner (internal/content/scanner.go). It is the fallback
// driver for filesystems where inotify-style watches are unavailable or
// undesirable (e.g. network shares).
type scanner struct {
	playlist *Memory
	dir      string
	interval time.Duration
	errs     chan error
}

func newScanner(m *Memory, dir string, interval time.Duration) *scanner {
	return &scanner{
		playlist: m,
		dir:      dir,
		interval: interval,
		errs:     make(chan error, 1),
	}
}

func (s *scanner) errors() <-chan error { return s.errs }

func (s *scanner) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log.Trace("running scanner ...")

	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		close(s.errs)
		log.Trace("scanner stopped")
	}()

	for {
		select {
		case <-ticker.C:
			refresh(ctx, s.playlist, s.dir)

		case <-ctx.Done():
			return
		}
	}
}
