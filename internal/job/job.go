// Package job runs the single debiasing job: load, mask, correct, resolve the
// output path and save, reporting progress to the UI through a Notifier.
package job

import (
	"fmt"
	"strings"

	"dh-debias/internal/progress"

	"github.com/google/uuid"
)

// Stage is one step of the pipeline, in execution order.
type Stage int

const (
	StageSetup Stage = iota
	StagePrepare
	StageLoad
	StageMask
	StageCorrect
	StageResolve
	StageSave
	StageDone
)

var stageInfo = map[Stage]struct {
	name   string
	label  string
	weight float64
}{
	StageSetup:   {"setup", "Starting...", 10},
	StagePrepare: {"prepare", "Loading modules...", 10},
	StageLoad:    {"load", "Loading input data...", 20},
	StageMask:    {"mask", "Preparing data...", 10},
	StageCorrect: {"correct", "Debiasing...", 45},
	StageResolve: {"resolve", "Writing output...", 0},
	StageSave:    {"save", "Writing output...", 5},
	StageDone:    {"done", "Done", 0},
}

func (s Stage) String() string {
	if info, ok := stageInfo[s]; ok {
		return info.name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Label is the text shown in the progress window while the stage runs.
func (s Stage) Label() string {
	return stageInfo[s].label
}

// Weight is the share of the progress bar the stage adds on completion.
func (s Stage) Weight() float64 {
	return stageInfo[s].weight
}

// State is the job's terminal state, or Pending/Running before that.
type State int

const (
	Pending State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Inputs are the grid to debias and the unstable-terrain outlines.
type Inputs [2]string

// Grid is the elevation-difference raster path.
func (in Inputs) Grid() string { return strings.TrimSpace(in[0]) }

// Mask is the unstable-terrain vector path.
func (in Inputs) Mask() string { return strings.TrimSpace(in[1]) }

// Ready reports whether both paths are filled in, which is when the start
// control is enabled.
func (in Inputs) Ready() bool {
	return in.Grid() != "" && in.Mask() != ""
}

// Job is the record of the one run of this process. Only the worker
// goroutine writes it.
type Job struct {
	ID         uuid.UUID
	Inputs     Inputs
	Stage      Stage
	Progress   float64
	OutputPath string
	State      State
}

// New creates a pending job.
func New(inputs Inputs) *Job {
	return &Job{
		ID:     uuid.New(),
		Inputs: Inputs{inputs.Grid(), inputs.Mask()},
		Stage:  StageSetup,
		State:  Pending,
	}
}

// advance adds the stage weight to the job, keeping Progress within
// [0, progress.Max], and returns the event to publish.
func (j *Job) advance(s Stage) progress.Event {
	w := s.Weight()
	j.Progress += w
	if j.Progress > progress.Max {
		j.Progress = progress.Max
	}
	return progress.Event{Label: s.Label(), Delta: w}
}

// Outcome is the single terminal action of a job.
type Outcome struct {
	JobID      uuid.UUID
	OutputPath string
	Err        *StageError
}

// Succeeded reports whether the job produced its output.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Title is the dialog title for the outcome.
func (o Outcome) Title() string {
	if o.Succeeded() {
		return "Debiasing finished"
	}
	return "Debiasing error"
}

// Text is the dialog body for the outcome.
func (o Outcome) Text() string {
	if o.Succeeded() {
		return "Debiasing finished successfully. The output file is located here:\n\n" +
			o.OutputPath + "\n\nClick OK to exit."
	}
	return o.Err.Message()
}

// progressLabel is the event shown when s starts; it adds nothing to the bar.
func progressLabel(s Stage) progress.Event {
	return progress.Event{Label: s.Label()}
}
