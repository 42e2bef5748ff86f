package dialogs

import (
	"dh-debias/internal/job"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// NewOutcome builds the single dialog that ends a run: an information
// dialog on success, an error dialog with the stage guidance on failure.
// onClosed runs when the user acknowledges it.
func NewOutcome(o job.Outcome, parent fyne.Window, onClosed func()) dialog.Dialog {
	text := widget.NewLabel(o.Text())
	text.Wrapping = fyne.TextWrapWord

	icon := theme.InfoIcon()
	if !o.Succeeded() {
		icon = theme.ErrorIcon()
	}
	content := container.NewBorder(nil, nil, widget.NewIcon(icon), nil, text)

	dlg := dialog.NewCustom(o.Title(), "OK", content, parent)
	dlg.Resize(fyne.NewSize(520, 220))
	if onClosed != nil {
		dlg.SetOnClosed(onClosed)
	}
	return dlg
}
