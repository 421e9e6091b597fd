package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dori/bloc/internal/config"
	"github.com/dori/bloc/internal/logging"
	"github.com/dori/bloc/internal/notify"
	"github.com/dori/bloc/internal/query"
	"github.com/dori/bloc/internal/state"
	"github.com/dori/bloc/internal/storage"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
)

// ErrAlreadyRunning is returned when another process holds the data directory.
var ErrAlreadyRunning = errors.New("another instance of bloc is already running")

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Store    *storage.Store
	State    *state.State
	Notifier *notify.Notifier

	backend   storage.Backend
	lockFile  *flock.Flock
	logCloser io.Closer
}

// Options tweak how the application starts
type Options struct {
	// Ephemeral keeps everything in memory and skips the lock.
	Ephemeral bool
	// Verbose logs to stderr instead of the log file.
	Verbose bool
}

// New creates a new application instance
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	log, closer, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Stderr: opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Log:       log,
		Notifier:  notify.NewNotifier(),
		logCloser: closer,
	}
	app.Notifier.SetEnabled(cfg.Notify.Enabled)

	if opts.Ephemeral {
		app.backend = storage.NewMemory()
	} else {
		// Acquire lock to ensure single instance
		if err := app.acquireLock(); err != nil {
			app.logCloser.Close()
			return nil, err
		}

		db, err := storage.OpenSQLite(cfg.DBPath, log)
		if err != nil {
			app.releaseLock()
			app.logCloser.Close()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		app.backend = db
	}

	_, err = app.backend.Get(storage.KeySettings)
	firstRun := errors.Is(err, storage.ErrNotFound)

	app.Store = storage.NewStore(app.backend, log)
	app.State = state.New(app.Store, state.WithLogger(log))
	app.State.Init()

	// Configured UI defaults only seed a fresh store; afterwards the
	// persisted settings win.
	if firstRun {
		app.State.SetTheme(cfg.Theme())
		app.State.SetViewMode(cfg.View())
	}

	log.Info().
		Str("db", cfg.DBPath).
		Bool("ephemeral", opts.Ephemeral).
		Msg("bloc started")

	return app, nil
}

// OverdueTitles lists the titles of active tasks past their due date
func (a *App) OverdueTitles(now time.Time) []string {
	var titles []string
	for _, t := range query.SortByDueDate(query.Overdue(a.State.ActiveTasks(), now)) {
		titles = append(titles, t.Title)
	}
	return titles
}

// Remind sends one desktop notification for every overdue task and
// returns how many there were. Nothing is sent when notifications are off.
func (a *App) Remind(now time.Time) (int, error) {
	titles := a.OverdueTitles(now)
	if !a.Notifier.IsEnabled() {
		return len(titles), nil
	}
	if err := a.Notifier.SendOverdueSummary(titles); err != nil {
		return len(titles), fmt.Errorf("failed to send reminder: %w", err)
	}
	return len(titles), nil
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "bloc.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.State != nil {
		a.State.Dispose()
	}

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log: %w", err))
		}
	}

	return errors.Join(errs...)
}
