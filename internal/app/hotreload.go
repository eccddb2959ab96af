package app

import (
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Reloader watches the running binary and fires a callback once a newer
// build appears on disk, so a development session can offer to restart
// itself after a recompile.
type Reloader struct {
	execPath string
	baseline time.Time
	interval time.Duration
	stopCh   chan struct{}
	onUpdate func()
}

// NewReloader creates a reloader for the current executable, or nil when
// the executable path cannot be resolved.
func NewReloader(interval time.Duration) *Reloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	// go build may swap the file behind a symlink; watch the real path.
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}

	info, err := os.Stat(execPath)
	if err != nil {
		return nil
	}

	return &Reloader{
		execPath: execPath,
		baseline: info.ModTime(),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// OnUpdate sets the callback invoked when a newer binary is detected. It
// runs on a background goroutine; UI work must be marshalled accordingly.
func (r *Reloader) OnUpdate(callback func()) { r.onUpdate = callback }

// ExecPath returns the watched executable path.
func (r *Reloader) ExecPath() string { return r.execPath }

// Start begins polling in a background goroutine.
func (r *Reloader) Start() {
	r.stopCh = make(chan struct{})
	go r.loop()
}

// Stop ends polling.
func (r *Reloader) Stop() { close(r.stopCh) }

// ResetBaseline accepts the current binary as the new reference, for when
// the user declines a restart.
func (r *Reloader) ResetBaseline() {
	if info, err := os.Stat(r.execPath); err == nil {
		r.baseline = info.ModTime()
	}
}

// Restart replaces the current process with a fresh instance of the
// watched binary, preserving arguments and environment. Does not return on
// success.
func (r *Reloader) Restart() error {
	return syscall.Exec(r.execPath, os.Args, os.Environ())
}

func (r *Reloader) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			info, err := os.Stat(r.execPath)
			if err != nil {
				continue
			}
			if info.ModTime().After(r.baseline) {
				if r.onUpdate != nil {
					r.onUpdate()
				}
				return
			}
		}
	}
}
