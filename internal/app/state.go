// Package app provides the application state, the slice controller, and
// lifecycle helpers.
package app

import (
	"errors"
	"fmt"
	"sync"

	"mpr-viewer/internal/display"
	"mpr-viewer/internal/nifti"
	"mpr-viewer/internal/view"
	"mpr-viewer/internal/volume"
)

// ErrLoadInProgress is returned when a volume load is requested while
// another one is still running.
var ErrLoadInProgress = errors.New("a volume load is already in progress")

// State holds the application state: the loaded volume, the shared cursor,
// and the display controls. All mutation flows through the Controller; the
// UI observes the state through events.
type State struct {
	mu sync.RWMutex

	// Volume
	Volume   *volume.Volume
	Header   *nifti.Header
	FilePath string

	// Cursor position in volume-index space, shared by all three views
	Cursor *view.Cursor

	// Display controls, both in [-100, 100]
	Brightness float64
	Contrast   float64

	loading bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventVolumeLoaded EventType = iota
	EventCursorMoved
	EventDisplayChanged
	EventHoverMoved
	EventHoverLeft
	EventStatus
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// HoverEvent reports the raw hover position within one view. It never
// touches the cursor; views draw it as a temporary overlay only.
type HoverEvent struct {
	Plane  view.Plane
	PX, PY float64
}

// NewState creates an empty application state with the given startup
// display controls.
func NewState(brightness, contrast float64) *State {
	return &State{
		Cursor:     view.NewCursor(1, 1, 1),
		Brightness: brightness,
		Contrast:   contrast,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// HasVolume reports whether a volume is currently loaded.
func (s *State) HasVolume() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Volume != nil
}

// LoadVolume reads a NIfTI file and installs it wholesale. Loading is
// synchronous; a second load while one is running is rejected rather than
// queued. On failure the previous volume, cursor, and display controls are
// left untouched.
func (s *State) LoadVolume(path string) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoadInProgress
	}
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	vol, hdr, err := nifti.Load(path)
	if err != nil {
		return err
	}

	nx, ny, nz := vol.Dims()
	cursor := view.NewCursor(nx, ny, nz)
	cursor.Center()

	s.mu.Lock()
	s.Volume = vol
	s.Header = hdr
	s.FilePath = path
	s.Cursor = cursor
	s.mu.Unlock()

	s.Emit(EventVolumeLoaded, path)
	s.Emit(EventStatus, fmt.Sprintf("Loaded %s (%d x %d x %d)", path, nx, ny, nz))
	return nil
}

// DisplayParams computes the current rendering window from the volume's
// intensity range and the brightness/contrast controls.
func (s *State) DisplayParams() display.Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Volume == nil {
		return display.Params{VMin: 0, VMax: 1}
	}
	dataMin, dataMax := s.Volume.MinMax()
	return display.Window(dataMin, dataMax, s.Brightness, s.Contrast)
}

// SliceFor extracts the plane's slice at the cursor's current position.
func (s *State) SliceFor(p view.Plane) *volume.Slice {
	s.mu.RLock()
	vol := s.Volume
	index := s.Cursor.Pos(p.FixedAxis())
	s.mu.RUnlock()

	if vol == nil {
		return nil
	}
	return vol.ExtractSlice(p, index)
}
