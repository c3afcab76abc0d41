// Package server wires the configuration, search engine, playlist service
// and UI program together into a runnable process, mirroring the control
// loop shape of the teacher's own internal/server package.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	l "github.com/sirupsen/logrus"
	"gitlab.com/mipimipi/libsearch/src/internal/config"
	"gitlab.com/mipimipi/libsearch/src/internal/playlist"
	"gitlab.com/mipimipi/libsearch/src/internal/search"
	"gitlab.com/mipimipi/libsearch/src/internal/ui"
)

var log *l.Entry = l.WithFields(l.Fields{"srv": "server"})

// Run loads and validates the configuration, builds the search engine and
// its playlist backing store, starts the background refresh driver, and
// runs the UI program until the user quits or an OS signal arrives.
// version is reported in diagnostics and to Sentry, if configured.
func Run(version string) (err error) {
	var cfg config.Cfg
	if cfg, err = config.Load(); err != nil {
		return errors.Wrap(err, "cannot run libsearch")
	}
	if err = cfg.Validate(); err != nil {
		return errors.Wrap(err, "cannot run libsearch")
	}

	if err = setupLogging(cfg.LogDir, cfg.LogLevel); err != nil {
		return errors.Wrap(err, "cannot run libsearch")
	}

	if cfg.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Release: version}); err != nil {
			log.WithError(err).Warn("sentry initialization failed, continuing without error reporting")
		} else {
			defer sentry.Flush(2 * time.Second)
			defer sentryRecover()
		}
	}

	log.Trace("running ...")

	ctx := context.WithValue(context.Background(), config.KeyCfg, cfg)
	ctx = context.WithValue(ctx, config.KeyVersion, version)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	library := playlist.New(playlist.LibraryTitle)
	manager := playlist.NewManager(library)
	idx := search.NewIndex()

	if cfg.SearchTool.RescanOnStartup {
		playlist.RefreshNow(ctx, library, cfg.SearchTool.Path)
	}
	idx.Build(library)

	var wg sync.WaitGroup
	refreshErrs := playlist.StartRefresher(ctx, &wg, library,
		cfg.SearchTool.UpdateMode, cfg.SearchTool.Path,
		cfg.SearchTool.UpdateInterval*time.Second)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	wg.Add(1)
	go runUIProgram(ctx, cancel, &wg, idx, manager, cfg.SearchTool.MaxResults)

	wg.Add(1)
	go invalidationLoop(ctx, &wg, idx, library)

	for {
		select {
		case sig := <-interrupt:
			log.Tracef("signal received: %v", sig)
			log.Trace("stopping ...")
			cancel()
			wg.Wait()
			log.Trace("stopped")
			return nil

		case <-ctx.Done():
			log.Trace("ui program exited: stopping ...")
			wg.Wait()
			log.Trace("stopped")
			return nil

		case err := <-refreshErrs:
			if err == nil {
				continue
			}
			log.WithError(err).Error("refresh driver error received: stopping")
			cancel()
			wg.Wait()
			return errors.Wrap(err, "refresh driver failed")
		}
	}
}

// runUIProgram runs the search box program until it exits, then cancels
// ctx so the rest of the process unwinds with it.
func runUIProgram(ctx context.Context, cancel context.CancelFunc, wg *sync.WaitGroup, idx *search.Index, manager *playlist.Manager, maxResults int) {
	defer wg.Done()
	defer cancel()

	if err := ui.Run(ctx, idx, manager, maxResults); err != nil {
		log.WithError(err).Error("ui program exited with error")
	}
}

// invalidationLoop implements the three-hook invalidation contract (spec
// §4.7): add-complete, scan-complete and update events of at least Metadata
// detail invalidate and rebuild the index, so a query can never observe a
// tree that is stale relative to the playlist it was meant to reflect.
func invalidationLoop(ctx context.Context, wg *sync.WaitGroup, idx *search.Index, library *playlist.Memory) {
	defer wg.Done()

	rebuild := func() {
		idx.Invalidate()
		idx.Build(library)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-library.AddComplete():
			rebuild()

		case <-library.ScanComplete():
			rebuild()

		case lvl := <-library.Updated():
			if lvl >= playlist.Metadata {
				rebuild()
			}
		}
	}
}

func sentryRecover() {
	if r := recover(); r != nil {
		sentry.CurrentHub().Recover(r)
		sentry.Flush(2 * time.Second)
		panic(r)
	}
}
