// Package app holds the UI state of the debiasing window and its events.
package app

import (
	"errors"
	"sync"

	"dh-debias/internal/job"
)

// ErrNotReady is returned by Begin while an input path is missing.
var ErrNotReady = errors.New("both input files must be selected")

// ErrAlreadyStarted is returned by Begin after the job was started.
var ErrAlreadyStarted = errors.New("the job has already been started")

// Phase is where the window is in its single run.
type Phase int

const (
	// PhaseInput: the user is choosing files.
	PhaseInput Phase = iota
	// PhaseRunning: the main window is hidden and the job is running.
	PhaseRunning
	// PhaseFinished: the outcome dialog is showing.
	PhaseFinished
)

// State is the UI state handed to every handler. It is owned by the UI
// goroutine; the worker never reads or writes it.
type State struct {
	mu sync.RWMutex

	Inputs  job.Inputs
	Phase   Phase
	Job     *job.Job
	Outcome *job.Outcome

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventInputsChanged EventType = iota
	EventJobStarted
	EventJobFinished
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates the state of a fresh window.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit calls the listeners of event in registration order.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := append([]EventListener(nil), s.listeners[event]...)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(data)
	}
}

// SetGrid records the path of the grid to debias.
func (s *State) SetGrid(path string) {
	s.setInput(0, path)
}

// SetMask records the path of the unstable-terrain shapefile.
func (s *State) SetMask(path string) {
	s.setInput(1, path)
}

func (s *State) setInput(i int, path string) {
	if s.Inputs[i] == path {
		return
	}
	s.Inputs[i] = path
	s.Emit(EventInputsChanged, s.Inputs)
}

// CanStart reports whether the start control should be enabled.
func (s *State) CanStart() bool {
	return s.Phase == PhaseInput && s.Inputs.Ready()
}

// Begin creates the job for the current inputs and moves to PhaseRunning.
func (s *State) Begin() (*job.Job, error) {
	if s.Phase != PhaseInput {
		return nil, ErrAlreadyStarted
	}
	if !s.Inputs.Ready() {
		return nil, ErrNotReady
	}
	s.Job = job.New(s.Inputs)
	s.Phase = PhaseRunning
	s.Emit(EventJobStarted, s.Job)
	return s.Job, nil
}

// Finish records the job's outcome. Only the first outcome is kept.
func (s *State) Finish(o job.Outcome) {
	if s.Phase == PhaseFinished {
		return
	}
	s.Outcome = &o
	s.Phase = PhaseFinished
	s.Emit(EventJobFinished, o)
}
