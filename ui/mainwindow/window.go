// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"mpr-viewer/internal/app"
	"mpr-viewer/internal/display"
	"mpr-viewer/internal/nifti"
	"mpr-viewer/internal/version"
	"mpr-viewer/internal/view"
	"mpr-viewer/ui/canvas"
	"mpr-viewer/ui/panels"
	"mpr-viewer/ui/prefs"
)

const appTitle = "MPR Viewer"

// MainWindow is the primary application window: the controls panel on the
// left and the three plane views on the right.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	ctrl  *app.Controller
	prefs *prefs.Prefs

	canvases [3]*canvas.SliceCanvas
	panel    *panels.ControlsPanel
	split    *container.Split

	statusBar *widget.Label
}

// New creates the main window and wires it to the application state.
func New(fyneApp fyne.App, state *app.State, ctrl *app.Controller, canvases [3]*canvas.SliceCanvas, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		ctrl:     ctrl,
		prefs:    appPrefs,
		canvases: canvases,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.wireCanvases()

	win.Resize(fyne.NewSize(appPrefs.WindowWidth, appPrefs.WindowHeight))
	win.SetCloseIntercept(func() {
		mw.savePreferences()
		fyneApp.Quit()
	})

	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.panel = panels.NewControlsPanel(mw.state, mw.ctrl)
	mw.panel.OnOpen(mw.onOpenVolume)

	mw.statusBar = widget.NewLabel("Ready")

	views := container.NewGridWithColumns(3,
		mw.canvases[view.Axial].Container(),
		mw.canvases[view.Sagittal].Container(),
		mw.canvases[view.Coronal].Container(),
	)

	mw.split = container.NewHSplit(mw.panel.Container(), views)
	mw.split.SetOffset(mw.prefs.SplitOffset)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.split,                          // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Volume…", mw.onOpenVolume),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePreferences()
			mw.app.Quit()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.eachCanvas((*canvas.SliceCanvas).ZoomIn) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.eachCanvas((*canvas.SliceCanvas).ZoomOut) }),
		fyne.NewMenuItem("Actual Size", func() {
			mw.eachCanvas(func(sc *canvas.SliceCanvas) { sc.SetZoom(1.0) })
		}),
		fyne.NewMenuItem("Fit Views", func() { mw.eachCanvas((*canvas.SliceCanvas).FitToView) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Auto Window", func() { mw.ctrl.AutoWindow() }),
		fyne.NewMenuItem("Reset Brightness && Contrast", func() { mw.ctrl.ResetDisplay() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventVolumeLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
		}
		mw.refreshViews()
		mw.eachCanvas((*canvas.SliceCanvas).FitToView)
	})

	mw.state.On(app.EventCursorMoved, func(interface{}) {
		mw.refreshViews()
	})

	mw.state.On(app.EventDisplayChanged, func(interface{}) {
		// Re-render pixel data only; the cursor has not moved, so the
		// crosshairs stay where they are.
		mw.refreshViews()
	})

	mw.state.On(app.EventHoverMoved, func(data interface{}) {
		ev, ok := data.(app.HoverEvent)
		if !ok {
			return
		}
		for _, sc := range mw.canvases {
			if sc.Plane() == ev.Plane {
				sc.SetHover(ev.PX, ev.PY)
			} else {
				sc.HideHover()
			}
		}
	})

	mw.state.On(app.EventHoverLeft, func(interface{}) {
		mw.eachCanvas((*canvas.SliceCanvas).HideHover)
	})

	mw.state.On(app.EventStatus, func(data interface{}) {
		if text, ok := data.(string); ok {
			mw.statusBar.SetText(text)
		}
	})
}

// wireCanvases routes mouse input from each view into the controller.
func (mw *MainWindow) wireCanvases() {
	for _, sc := range mw.canvases {
		plane := sc.Plane()
		sc.OnPress(func(px, py int) { mw.ctrl.PressAt(plane, px, py) })
		sc.OnDrag(func(px, py int) { mw.ctrl.DragTo(plane, px, py) })
		sc.OnRelease(func() { mw.ctrl.Release() })
		sc.OnHover(func(px, py float64) { mw.ctrl.HoverAt(plane, px, py) })
		sc.OnLeave(func() { mw.ctrl.LeaveViews() })
	}
}

// refreshViews renders the three slices at the cursor's current indices
// and repositions the committed crosshairs. Pan and zoom are owned by the
// canvases and survive untouched.
func (mw *MainWindow) refreshViews() {
	if !mw.state.HasVolume() {
		return
	}
	params := mw.state.DisplayParams()
	for _, sc := range mw.canvases {
		plane := sc.Plane()
		slice := mw.state.SliceFor(plane)
		if slice == nil {
			continue
		}
		sc.SetSlice(display.Render(slice, params), mw.state.Cursor.Pos(plane.FixedAxis()))
		vx, hy := view.Crosshair(plane, mw.state.Cursor)
		sc.SetCrosshair(vx, hy)
	}
}

func (mw *MainWindow) eachCanvas(fn func(*canvas.SliceCanvas)) {
	for _, sc := range mw.canvases {
		fn(sc)
	}
}

// onOpenVolume shows the file-open dialog and loads the chosen volume.
func (mw *MainWindow) onOpenVolume() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		if err := mw.state.LoadVolume(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to load file: %w", err), mw.Window)
			return
		}
		dialog.ShowInformation("Success", "File loaded successfully!", mw.Window)
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(nifti.SupportedExtensions()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"A multi-planar viewer for NIfTI volumes:\n"+
			"axial, sagittal and coronal slices with synchronized\n"+
			"crosshairs and brightness/contrast windowing.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	if mw.prefs.LastDirectory == "" {
		return nil
	}
	uri := storage.NewFileURI(mw.prefs.LastDirectory)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.LastDirectory = filepath.Dir(filePath)
}

// savePreferences persists window geometry and the last directory.
func (mw *MainWindow) savePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.WindowWidth = size.Width
		mw.prefs.WindowHeight = size.Height
	}
	mw.prefs.SplitOffset = mw.split.Offset
	if err := mw.prefs.Save(); err != nil {
		mw.statusBar.SetText("Failed to save preferences: " + err.Error())
	}
}

// IsVolumePath reports whether the path looks like a NIfTI file.
func IsVolumePath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".nii") || strings.HasSuffix(lower, ".nii.gz")
}
