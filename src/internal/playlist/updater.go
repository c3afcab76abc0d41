package playlist

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// update modes, grounded on the teacher's updModeNotify/updModeScan pair
// (internal/content/updater.go), re-homed from hierarchy diffing onto the
// refresh protocol of spec §4.5.
const (
	UpdateModeNotify = "notify" // update via fsnotify-style events
	UpdateModeScan   = "scan"   // update via periodic full rescans
)

// updater is the interface implemented by both refresh drivers.
type updater interface {
	run(context.Context, *sync.WaitGroup)
	errors() <-chan error
}

// updaters maps an update mode to its constructor, exactly mirroring the
// teacher's factory table.
var updaters = map[string]func(*Memory, string, time.Duration) updater{
	UpdateModeNotify: func(m *Memory, dir string, interval time.Duration) updater {
		return newNotifier(m, dir, interval)
	},
	UpdateModeScan: func(m *Memory, dir string, interval time.Duration) updater {
		return newScanner(m, dir, interval)
	},
}

// NewRefresher builds the background refresh driver for mode, or nil if
// mode is not recognized.
func NewRefresher(m *Memory, mode, musicDir string, interval time.Duration) updater {
	ctor, ok := updaters[mode]
	if !ok {
		return nil
	}
	return ctor(m, musicDir, interval)
}

// StartRefresher builds and starts the background refresh driver for mode
// on its own goroutine (tracked by wg), returning the channel it reports
// errors on. If mode is not recognized, a channel carrying a single error
// is returned and wg is left untouched.
func StartRefresher(ctx context.Context, wg *sync.WaitGroup, m *Memory, mode, musicDir string, interval time.Duration) <-chan error {
	u := NewRefresher(m, mode, musicDir, interval)
	if u == nil {
		errs := make(chan error, 1)
		errs <- fmt.Errorf("unknown update mode '%s'", mode)
		close(errs)
		return errs
	}

	wg.Add(1)
	go u.run(ctx, wg)
	return u.errors()
}

// RefreshNow runs a single synchronous refresh cycle against dir, e.g. for
// rescan-on-startup.
func RefreshNow(ctx context.Context, m *Memory, dir string) {
	refresh(ctx, m, dir)
}

// refresh runs one full BeginRefresh/scan/CompleteRefresh cycle against dir,
// blocking until the scan completes, per spec §4.5. It calls doScan
// directly rather than going through InsertFiltered: refresh already runs
// on its own driver goroutine (notifier/scanner's run loop), and the public
// ScanComplete hook is a broadcast consumed independently by the
// invalidation loop, not a private completion signal this call can wait on
// without racing that consumer for the same notification.
func refresh(ctx context.Context, m *Memory, dir string) {
	existing := m.Filenames()
	dup := m.coordinator.BeginRefresh(existing)
	m.collapseDuplicates(dup)

	m.doScan(ctx, dir, m.coordinator.Filter)
	if ctx.Err() != nil {
		return
	}

	current := m.Filenames()
	del := m.coordinator.CompleteRefresh(current)
	m.applyDeletions(del)

	m.notifyHooks()
}
