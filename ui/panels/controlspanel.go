// Package panels provides the control panel widgets for the main window.
package panels

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mpr-viewer/internal/app"
	"mpr-viewer/internal/view"
)

// ControlsPanel holds the per-axis slice controls, the brightness/contrast
// sliders, and the file actions. Sliders and entries are pure views of the
// cursor: they render what the state says and route every input through
// the controller; they never write each other directly.
type ControlsPanel struct {
	state *app.State
	ctrl  *app.Controller

	rows [3]*axisRow

	brightness *widget.Slider
	contrast   *widget.Slider
	// Guards against slider OnChanged firing while we sync values back
	// from the state.
	syncingDisplay bool

	fileLabel *widget.Label
	box       *fyne.Container

	onOpen func()
}

// axisRow is one slice control: a slider and an entry for a single axis,
// labelled by the plane that the axis scrubs through.
type axisRow struct {
	axis    view.Axis
	label   *widget.Label
	slider  *widget.Slider
	entry   *widget.Entry
	syncing bool
}

// NewControlsPanel creates the panel and subscribes it to state events.
func NewControlsPanel(state *app.State, ctrl *app.Controller) *ControlsPanel {
	cp := &ControlsPanel{
		state:     state,
		ctrl:      ctrl,
		fileLabel: widget.NewLabel("No volume loaded"),
	}
	cp.fileLabel.Wrapping = fyne.TextWrapBreak

	openBtn := widget.NewButton("Open Volume…", func() {
		if cp.onOpen != nil {
			cp.onOpen()
		}
	})

	items := []fyne.CanvasObject{
		widget.NewLabel("File Selection:"),
		openBtn,
		cp.fileLabel,
		widget.NewSeparator(),
	}

	// One row per axis, labelled by the plane the axis scrubs:
	// x drives the sagittal view, y the coronal, z the axial.
	for i, plane := range [3]view.Plane{view.Sagittal, view.Coronal, view.Axial} {
		row := cp.newAxisRow(plane)
		cp.rows[i] = row
		items = append(items,
			container.NewBorder(nil, nil, row.label, row.entry),
			row.slider,
		)
	}

	items = append(items, widget.NewSeparator(), widget.NewLabel("Brightness:"))
	cp.brightness = widget.NewSlider(-100, 100)
	cp.brightness.OnChanged = func(v float64) {
		if cp.syncingDisplay {
			return
		}
		ctrl.SetBrightness(v)
	}
	items = append(items, cp.brightness, widget.NewLabel("Contrast:"))

	cp.contrast = widget.NewSlider(-100, 100)
	cp.contrast.OnChanged = func(v float64) {
		if cp.syncingDisplay {
			return
		}
		ctrl.SetContrast(v)
	}
	items = append(items, cp.contrast)

	autoBtn := widget.NewButton("Auto Window", func() { ctrl.AutoWindow() })
	resetBtn := widget.NewButton("Reset", func() { ctrl.ResetDisplay() })
	items = append(items, container.NewGridWithColumns(2, autoBtn, resetBtn))

	cp.box = container.NewVBox(items...)

	state.On(app.EventVolumeLoaded, func(data interface{}) {
		cp.configureRanges()
		cp.syncCursor()
		if path, ok := data.(string); ok {
			cp.fileLabel.SetText(path)
		}
	})
	state.On(app.EventCursorMoved, func(interface{}) { cp.syncCursor() })
	state.On(app.EventDisplayChanged, func(interface{}) { cp.syncDisplay() })

	cp.syncDisplay()
	return cp
}

// Container returns the panel for embedding in the window layout.
func (cp *ControlsPanel) Container() fyne.CanvasObject {
	return container.NewVScroll(cp.box)
}

// OnOpen sets the callback for the open-volume button.
func (cp *ControlsPanel) OnOpen(cb func()) { cp.onOpen = cb }

func (cp *ControlsPanel) newAxisRow(plane view.Plane) *axisRow {
	axis := plane.FixedAxis()
	row := &axisRow{
		axis:  axis,
		label: widget.NewLabel(plane.String() + " Slice:"),
	}

	row.slider = widget.NewSlider(0, 1)
	row.slider.Step = 1
	row.slider.OnChanged = func(v float64) {
		if row.syncing {
			return
		}
		cp.ctrl.SetAxis(axis, int(v))
	}

	row.entry = widget.NewEntry()
	row.entry.SetText("0")
	row.entry.OnSubmitted = func(text string) {
		// Echo the stored value back unconditionally: bad text reverts
		// to the last valid value, and an out-of-range number shows its
		// clamped result even when the cursor did not move.
		v, _ := cp.ctrl.CommitEntry(axis, text)
		row.entry.SetText(strconv.Itoa(v))
	}
	return row
}

// configureRanges resizes each slider to [0, dim-1] after a volume loads.
func (cp *ControlsPanel) configureRanges() {
	for _, row := range cp.rows {
		row.syncing = true
		row.slider.Min = 0
		row.slider.Max = float64(cp.state.Cursor.Dim(row.axis) - 1)
		row.syncing = false
	}
}

// syncCursor reflects the cursor into every slider and entry. The guard
// flag keeps slider OnChanged callbacks from echoing back into the
// controller.
func (cp *ControlsPanel) syncCursor() {
	for _, row := range cp.rows {
		pos := cp.state.Cursor.Pos(row.axis)
		row.syncing = true
		row.slider.SetValue(float64(pos))
		row.syncing = false
		row.entry.SetText(strconv.Itoa(pos))
	}
}

// syncDisplay reflects the brightness/contrast controls from the state.
func (cp *ControlsPanel) syncDisplay() {
	cp.syncingDisplay = true
	cp.brightness.SetValue(cp.state.Brightness)
	cp.contrast.SetValue(cp.state.Contrast)
	cp.syncingDisplay = false
}
