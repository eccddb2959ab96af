package app

import (
	"fmt"
	"strconv"

	"mpr-viewer/internal/config"
	"mpr-viewer/internal/view"
)

// Controller orchestrates the update cycle. Every input gesture (slider
// drag, entry commit, click or drag on a view, hover, display control
// change) enters here, mutates the state exactly once, and leaves as an
// event the views redraw from. Single-writer: nothing else touches the
// cursor or the display controls.
type Controller struct {
	state *State
	cfg   *config.Config

	// Click-drag tracking; motion events only commit while pressed.
	dragging bool
}

// NewController creates a controller over the given state.
func NewController(state *State, cfg *config.Config) *Controller {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Controller{state: state, cfg: cfg}
}

// SetAxis moves the cursor along one axis, clamping to the volume bounds,
// and returns the value actually stored. Re-issuing the current value is a
// no-op: no event fires and nothing redraws.
func (c *Controller) SetAxis(axis view.Axis, value int) int {
	if !c.state.HasVolume() {
		return 0
	}

	c.state.mu.Lock()
	prev := c.state.Cursor.Pos(axis)
	clamped := c.state.Cursor.Set(axis, value)
	c.state.mu.Unlock()

	if clamped != prev {
		c.emitCursorMoved()
	}
	return clamped
}

// CommitEntry parses a text-entry value for one axis. A non-integer leaves
// the cursor untouched and returns the last valid value together with the
// parse error so the widget can revert its text. A valid integer proceeds
// exactly like a slider move.
func (c *Controller) CommitEntry(axis view.Axis, text string) (int, error) {
	c.state.mu.RLock()
	last := c.state.Cursor.Pos(axis)
	c.state.mu.RUnlock()

	v, err := strconv.Atoi(text)
	if err != nil {
		return last, fmt.Errorf("invalid %s index %q", axis, text)
	}
	return c.SetAxis(axis, v), nil
}

// PressAt begins click-drag tracking on a view and commits the pressed
// position.
func (c *Controller) PressAt(p view.Plane, px, py int) {
	if !c.state.HasVolume() {
		return
	}
	c.dragging = true
	c.applyClick(p, px, py)
}

// DragTo commits a motion position while the button is held. Motion
// without a preceding press is ignored here; the views route it to HoverAt.
func (c *Controller) DragTo(p view.Plane, px, py int) {
	if !c.dragging || !c.state.HasVolume() {
		return
	}
	c.applyClick(p, px, py)
}

// Release ends click-drag tracking without a further update.
func (c *Controller) Release() {
	c.dragging = false
}

// Dragging reports whether a click-drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// HoverAt reports a no-button motion over a view. Only the temporary
// crosshair overlay moves; the cursor is never touched.
func (c *Controller) HoverAt(p view.Plane, px, py float64) {
	if !c.state.HasVolume() || !c.cfg.Canvas.ShowHover {
		return
	}
	c.state.Emit(EventHoverMoved, HoverEvent{Plane: p, PX: px, PY: py})
}

// LeaveViews hides the temporary crosshair when the pointer leaves a view.
func (c *Controller) LeaveViews() {
	c.state.Emit(EventHoverLeft, nil)
}

// SetBrightness updates the brightness control. Only the display window is
// recomputed; the cursor and the slice indices never move.
func (c *Controller) SetBrightness(v float64) {
	c.setDisplay(v, c.contrast())
}

// SetContrast updates the contrast control.
func (c *Controller) SetContrast(v float64) {
	c.setDisplay(c.brightness(), v)
}

// ResetDisplay restores the configured startup brightness and contrast.
func (c *Controller) ResetDisplay() {
	c.setDisplay(c.cfg.Display.Brightness, c.cfg.Display.Contrast)
}

// AutoWindow derives brightness and contrast from the volume's intensity
// distribution so that the display window spans the configured low/high
// quantiles. Values are clamped to the controls' [-100, 100] range.
func (c *Controller) AutoWindow() {
	c.state.mu.RLock()
	vol := c.state.Volume
	c.state.mu.RUnlock()
	if vol == nil {
		return
	}

	lo, hi := vol.Percentiles(c.cfg.Display.AutoWindowLow, c.cfg.Display.AutoWindowHigh)
	dataMin, dataMax := vol.MinMax()

	span := dataMax - dataMin
	brightness := 0.0
	if span > 0 {
		brightness = (lo - dataMin) / span * 100
	}
	contrast := 0.0
	if dataMax != 0 {
		contrast = hi/dataMax*100 - 100
	}

	c.setDisplay(clampControl(brightness), clampControl(contrast))
}

func (c *Controller) applyClick(p view.Plane, px, py int) {
	c.state.mu.Lock()
	moved := view.ApplyClick(p, px, py, c.state.Cursor)
	c.state.mu.Unlock()

	if moved {
		c.emitCursorMoved()
	}
}

func (c *Controller) emitCursorMoved() {
	c.state.mu.RLock()
	x, y, z := c.state.Cursor.Get()
	c.state.mu.RUnlock()
	c.state.Emit(EventCursorMoved, [3]int{x, y, z})
}

func (c *Controller) setDisplay(brightness, contrast float64) {
	c.state.mu.Lock()
	changed := c.state.Brightness != brightness || c.state.Contrast != contrast
	c.state.Brightness = brightness
	c.state.Contrast = contrast
	c.state.mu.Unlock()

	if changed {
		c.state.Emit(EventDisplayChanged, [2]float64{brightness, contrast})
	}
}

func (c *Controller) brightness() float64 {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	return c.state.Brightness
}

func (c *Controller) contrast() float64 {
	c.state.mu.RLock()
	defer c.state.mu.RUnlock()
	return c.state.Contrast
}

func clampControl(v float64) float64 {
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}
