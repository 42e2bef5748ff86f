// Package dialogs provides the progress window and the outcome dialog.
package dialogs

import (
	"dh-debias/internal/progress"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ProgressWindow shows a determinate bar and the current stage label.
// Its methods must be called on the UI goroutine.
type ProgressWindow struct {
	fyne.Window
	bar   *widget.ProgressBar
	label *widget.Label
}

var _ progress.Display = (*ProgressWindow)(nil)

// NewProgressWindow creates the hidden "Debiasing progress" window.
func NewProgressWindow(fyneApp fyne.App) *ProgressWindow {
	win := fyneApp.NewWindow("Debiasing progress")

	pw := &ProgressWindow{
		Window: win,
		bar:    widget.NewProgressBar(),
		label:  widget.NewLabel("Starting..."),
	}
	pw.bar.Min = 0
	pw.bar.Max = progress.Max

	win.SetContent(container.NewPadded(container.NewVBox(pw.label, pw.bar)))
	win.Resize(fyne.NewSize(420, 110))
	win.SetFixedSize(true)
	win.CenterOnScreen()
	// A running job cannot be cancelled, so closing is ignored.
	win.SetCloseIntercept(func() {})
	return pw
}

// SetValue moves the bar.
func (pw *ProgressWindow) SetValue(v float64) {
	pw.bar.SetValue(v)
}

// SetLabel shows the stage being run.
func (pw *ProgressWindow) SetLabel(text string) {
	pw.label.SetText(text)
}

// Value returns the bar position.
func (pw *ProgressWindow) Value() float64 {
	return pw.bar.Value
}

// Label returns the stage text.
func (pw *ProgressWindow) Label() string {
	return pw.label.Text
}
