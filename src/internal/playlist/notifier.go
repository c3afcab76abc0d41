package playlist

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/rjeczalik/notify"
)

// notifier implements the updater interface via inotify-style filesystem
// events, grounded on the teacher's notifier (internal/content/notifier.go).
// Unlike the teacher, which diffs two file-info sets itself, this driver
// simply coalesces events into a trigger and re-runs the full refresh
// protocol (spec §4.5) - the coordinator already knows how to skip
// unchanged entries via its addedTable.
type notifier struct {
	playlist *Memory
	dir      string
	debounce time.Duration
	errs     chan error
}

func newNotifier(m *Memory, dir string, debounce time.Duration) *notifier {
	return &notifier{
		playlist: m,
		dir:      dir,
		debounce: debounce,
		errs:     make(chan error, 1),
	}
}

func (n *notifier) errors() <-chan error { return n.errs }

// run watches dir recursively and triggers a refresh once n.debounce has
// passed without a further event: every event re-arms the timer, so a
// flurry of writes (e.g. an album being copied in) triggers one refresh
// after the last write, not dozens.
func (n *notifier) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	log.Trace("running notifier ...")

	chgs := make(chan notify.EventInfo, 1)
	if err := notify.Watch(filepath.Join(n.dir, "..."), chgs, notify.All); err != nil {
		n.errs <- err
		return
	}

	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		notify.Stop(chgs)
		close(n.errs)
		log.Trace("notifier stopped")
	}()

	for {
		select {
		case <-chgs:
			if timer == nil {
				timer = time.NewTimer(n.debounce)
			} else {
				timer.Reset(n.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			refresh(ctx, n.playlist, n.dir)

		case <-ctx.Done():
			return
		}
	}
}
