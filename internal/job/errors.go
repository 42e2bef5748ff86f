package job

import (
	"fmt"
	"strings"
)

// Kind classifies the stage a job failed in.
type Kind int

const (
	LoadError Kind = iota + 1
	MaskError
	CorrectionError
	SaveError
)

func (k Kind) String() string {
	switch k {
	case LoadError:
		return "LoadError"
	case MaskError:
		return "MaskError"
	case CorrectionError:
		return "CorrectionError"
	case SaveError:
		return "SaveError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StageError is the failure of one pipeline stage. Err is the cause as
// reported by the collaborator that failed.
type StageError struct {
	Kind  Kind
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s in %s stage: %v", e.Kind, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Line returns the innermost descriptive line of the cause: the last
// non-empty line of its message.
func (e *StageError) Line() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	lines := strings.Split(e.Err.Error(), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(lines[i]); s != "" {
			return s
		}
	}
	return e.Kind.String()
}

// Message is the stage-tagged text shown to the user.
func (e *StageError) Message() string {
	var lead, tail string
	switch e.Kind {
	case LoadError:
		lead = "There was an error loading the input data:"
		tail = "No output was generated, please correct the error and run the program again."
	case MaskError:
		lead = "There was an error creating the stable-terrain mask:"
		tail = "No output was generated, please correct the error and run the program again."
	case CorrectionError:
		lead = "There was an error binning and applying the debiasing:"
		tail = "No output was generated, please correct the error and run the program again."
	case SaveError:
		lead = "There was an error saving the debiased output:"
		tail = "The output could be missing or wrong, please correct the error and run the program again."
	default:
		lead = "There was an unexpected error:"
		tail = "Please run the program again."
	}
	return fmt.Sprintf("%s\n\n%s: %s\n\n%s\n\nClick OK to exit.", lead, e.Kind, e.Line(), tail)
}
