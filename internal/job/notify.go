package job

import (
	"log"

	"dh-debias/internal/progress"
	"dh-debias/internal/uiloop"
)

// Notifier receives a job's progress events and its single outcome. Runner
// calls it from the worker goroutine.
type Notifier interface {
	Progress(ev progress.Event)
	Done(o Outcome)
}

// Marshal returns a Notifier that never touches UI state itself: every
// progress event and the outcome are posted onto the UI queue, where they
// update reporter and call onDone on the UI goroutine in posting order.
func Marshal(ui uiloop.Poster, reporter *progress.Reporter, onDone func(Outcome)) Notifier {
	return &queued{ui: ui, reporter: reporter, onDone: onDone}
}

type queued struct {
	ui       uiloop.Poster
	reporter *progress.Reporter
	onDone   func(Outcome)
}

func (q *queued) Progress(ev progress.Event) {
	q.ui.Post(func() { q.reporter.Post(ev) })
}

func (q *queued) Done(o Outcome) {
	q.ui.Post(func() {
		if q.onDone != nil {
			q.onDone(o)
		}
	})
}

// LogNotifier writes progress to the standard logger. It is used by the
// headless runner, which has no UI goroutine.
type LogNotifier struct {
	reporter *progress.Reporter
	outcome  *Outcome
}

// NewLogNotifier returns a notifier that logs every event.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{reporter: progress.NewReporter(nil)}
}

func (l *LogNotifier) Progress(ev progress.Event) {
	l.reporter.Post(ev)
	if ev.Delta > 0 {
		log.Printf("progress: %3.0f%% %s", l.reporter.Total(), l.reporter.Label())
	}
}

func (l *LogNotifier) Done(o Outcome) {
	l.outcome = &o
	if o.Succeeded() {
		log.Printf("finished: %s", o.OutputPath)
		return
	}
	log.Printf("failed: %v", o.Err)
}

// Outcome returns the recorded outcome, or nil before Done.
func (l *LogNotifier) Outcome() *Outcome {
	return l.outcome
}
