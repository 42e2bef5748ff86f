// Package mainwindow provides the input window of the debiasing tool.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"dh-debias/internal/app"
	"dh-debias/internal/job"
	"dh-debias/internal/version"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var (
	gridExtensions  = []string{".tif", ".tiff", ".vrt", ".img"}
	shapeExtensions = []string{".shp"}
)

// MainWindow is the window in which the two inputs are chosen.
type MainWindow struct {
	fyne.Window
	state *app.State

	gridEntry *widget.Entry
	maskEntry *widget.Entry
	startBtn  *widget.Button

	onStart func(*job.Job)
}

// New creates the main window. onStart is called on the UI goroutine with
// the new job after the window has been hidden.
func New(fyneApp fyne.App, state *app.State, size fyne.Size, onStart func(*job.Job)) *MainWindow {
	win := fyneApp.NewWindow("Pleiades debiasing")

	mw := &MainWindow{
		Window:  win,
		state:   state,
		onStart: onStart,
	}

	mw.setupUI()
	mw.setupEventHandlers()

	win.Resize(size)
	win.CenterOnScreen()
	return mw
}

// setupUI creates the form.
func (mw *MainWindow) setupUI() {
	title := widget.NewLabelWithStyle("Pleiades debiasing", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	info := widget.NewLabel("Removes the north-south undulation of an elevation-difference grid,\n" +
		"calibrated on the terrain outside the unstable-terrain polygons.")

	mw.gridEntry = widget.NewEntry()
	mw.gridEntry.SetPlaceHolder("dh map (GeoTIFF)")
	mw.gridEntry.OnChanged = mw.state.SetGrid

	mw.maskEntry = widget.NewEntry()
	mw.maskEntry.SetPlaceHolder("polygons (ESRI shapefile)")
	mw.maskEntry.OnChanged = mw.state.SetMask

	mw.startBtn = widget.NewButton("Start debiasing", mw.onStartClicked)
	mw.startBtn.Importance = widget.HighImportance
	mw.startBtn.Disable()

	form := container.NewVBox(
		fileRow("Grid to be debiased", mw.gridEntry,
			widget.NewButton("Browse", func() { mw.browse(mw.gridEntry, gridExtensions) })),
		fileRow("Shapefile of unstable terrain", mw.maskEntry,
			widget.NewButton("Browse", func() { mw.browse(mw.maskEntry, shapeExtensions) })),
	)

	about := widget.NewLabel(fmt.Sprintf("v%s (%s)", version.Version, version.GitCommit))
	about.Importance = widget.LowImportance

	content := container.NewBorder(
		container.NewVBox(title, info), // top
		container.NewBorder(nil, nil, about, mw.startBtn), // bottom
		nil, // left
		nil, // right
		container.NewPadded(form),
	)
	mw.SetContent(container.NewPadded(content))
}

// fileRow stacks a caption over an entry with its Browse button.
func fileRow(caption string, entry *widget.Entry, browse *widget.Button) fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabel(caption),
		container.NewBorder(nil, nil, nil, browse, entry),
	)
}

// setupEventHandlers keeps the start button in step with the inputs.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventInputsChanged, func(interface{}) {
		mw.updateStart()
	})
	mw.state.On(app.EventJobStarted, func(interface{}) {
		mw.updateStart()
	})
}

func (mw *MainWindow) updateStart() {
	if mw.state.CanStart() {
		mw.startBtn.Enable()
	} else {
		mw.startBtn.Disable()
	}
}

func (mw *MainWindow) onStartClicked() {
	j, err := mw.state.Begin()
	if err != nil {
		log.Printf("mainwindow: start ignored: %v", err)
		return
	}
	log.Printf("mainwindow: starting job %s", j.ID)
	mw.Hide()
	if mw.onStart != nil {
		mw.onStart(j)
	}
}

// browse opens a file dialog and copies the chosen path into entry.
func (mw *MainWindow) browse(entry *widget.Entry, extensions []string) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		entry.SetText(path)
		if entry.OnChanged != nil {
			entry.OnChanged(path)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(extensions))
	if loc := startDir(entry.Text); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// startDir is the directory of the path already typed, or nil.
func startDir(current string) fyne.ListableURI {
	if current == "" {
		return nil
	}
	abs, err := filepath.Abs(filepath.Dir(current))
	if err != nil {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(abs))
	if err != nil {
		return nil
	}
	return listable
}
