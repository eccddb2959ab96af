// Package main provides the entry point for the MPR Viewer application.
package main

import (
	"log"
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"mpr-viewer/internal/app"
	"mpr-viewer/internal/config"
	"mpr-viewer/internal/version"
	"mpr-viewer/internal/view"
	"mpr-viewer/ui/canvas"
	"mpr-viewer/ui/mainwindow"
	"mpr-viewer/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting MPR Viewer v%s", version.Version)

	cfg := config.LoadOrDefault()
	appPrefs := prefs.Load()

	state := app.NewState(cfg.Display.Brightness, cfg.Display.Contrast)
	ctrl := app.NewController(state, cfg)

	fyneApp := fyneapp.New()
	fyneApp.Settings().SetTheme(&app.ViewerTheme{})

	var canvases [3]*canvas.SliceCanvas
	for _, p := range view.Planes {
		canvases[p] = canvas.NewSliceCanvas(p, cfg)
	}

	win := mainwindow.New(fyneApp, state, ctrl, canvases, appPrefs)

	// An optional volume path on the command line loads at startup.
	if len(os.Args) > 1 {
		volumePath := os.Args[1]
		if !mainwindow.IsVolumePath(volumePath) {
			log.Printf("Ignoring argument %s: not a .nii or .nii.gz file", volumePath)
		} else if err := state.LoadVolume(volumePath); err != nil {
			log.Printf("Failed to load volume %s: %v", volumePath, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled during development.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s", reloader.ExecPath())

	reloader.OnUpdate(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
