// Package progress accumulates job progress for display.
//
// A Reporter belongs to the UI goroutine. Workers never call it directly;
// they send Events through the UI message queue (see internal/uiloop).
package progress

// Max is the value of a finished job.
const Max = 100.0

// Event is one progress update: an optional new stage label and an amount to
// add to the running total. Events are values and safe to hand between
// goroutines.
type Event struct {
	Label string
	Delta float64
}

// Display renders progress. Implementations touch UI widgets and are only
// called from the UI goroutine.
type Display interface {
	SetValue(v float64)
	SetLabel(text string)
}

// Reporter keeps the running total and forwards it to a Display.
type Reporter struct {
	display Display
	total   float64
	label   string
}

// NewReporter returns a reporter starting at zero. display may be nil.
func NewReporter(display Display) *Reporter {
	return &Reporter{display: display}
}

// Post adds ev.Delta to the total, clamped to [0, Max], and shows ev.Label.
// Negative deltas are ignored so the total never goes backwards; an empty
// label keeps the current one.
func (r *Reporter) Post(ev Event) {
	if ev.Delta > 0 {
		r.total += ev.Delta
		if r.total > Max {
			r.total = Max
		}
	}
	if ev.Label != "" {
		r.label = ev.Label
	}
	if r.display == nil {
		return
	}
	r.display.SetValue(r.total)
	if ev.Label != "" {
		r.display.SetLabel(r.label)
	}
}

// Total returns the accumulated progress.
func (r *Reporter) Total() float64 {
	return r.total
}

// Label returns the last stage label shown.
func (r *Reporter) Label() string {
	return r.label
}
