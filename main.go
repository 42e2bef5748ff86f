// Package main provides the entry point for the debiasing tool.
package main

import (
	"log"

	"dh-debias/internal/app"
	"dh-debias/internal/config"
	"dh-debias/internal/debias"
	"dh-debias/internal/job"
	"dh-debias/internal/progress"
	"dh-debias/internal/uiloop"
	"dh-debias/internal/version"
	"dh-debias/ui/dialogs"
	"dh-debias/ui/mainwindow"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "org.dh-debias.gui"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", version.String())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Path != "" {
		log.Printf("config: loaded %s", cfg.Path)
	}
	runner, err := debias.NewRunner(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.DebiasTheme{})

	// Worker messages are drained on the fyne goroutine.
	queue := uiloop.New(func(drain func()) { fyne.Do(drain) })

	state := app.NewState()
	progressWin := dialogs.NewProgressWindow(fyneApp)
	reporter := progress.NewReporter(progressWin)

	onDone := func(o job.Outcome) {
		state.Finish(o)
		dialogs.NewOutcome(o, progressWin.Window, fyneApp.Quit).Show()
	}

	win := mainwindow.New(fyneApp, state, fyne.NewSize(cfg.UI.Width, cfg.UI.Height), func(j *job.Job) {
		progressWin.Show()
		job.Start(runner, j, job.Marshal(queue, reporter, onDone))
	})
	win.SetMaster()
	win.ShowAndRun()
}
