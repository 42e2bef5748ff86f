package job

import (
	"fmt"
	"log"

	"dh-debias/internal/outpath"
	"dh-debias/internal/raster"
	"dh-debias/internal/stable"
)

// GridStore reads and writes single-band rasters.
type GridStore interface {
	LoadGrid(path string) (*raster.Grid, error)
	SaveGrid(path string, g *raster.Grid) error
}

// PolygonLoader reads unstable-terrain outlines and returns them in the
// coordinate reference system described by targetWKT (empty = as stored).
type PolygonLoader interface {
	LoadPolygons(path, targetWKT string) (stable.Polygons, error)
}

// Corrector is the bias-correction engine. It fits the offset between source
// and reference over inlier cells and returns a corrected copy of source.
type Corrector interface {
	FitAndApply(reference, source *raster.Grid, inliers *raster.Mask) (*raster.Grid, error)
}

// MaskWriter writes a quicklook of the inlier mask.
type MaskWriter interface {
	WriteMask(path string, m *raster.Mask) error
}

// Runner wires the collaborators of the pipeline.
type Runner struct {
	Grids    GridStore
	Polygons PolygonLoader
	Engine   Corrector

	// Prepare runs once before loading, e.g. to register I/O drivers.
	Prepare func()
	// MaskPreview, when set, receives the inlier mask during the mask stage.
	MaskPreview MaskWriter
}

type loaded struct {
	grid  *raster.Grid
	polys stable.Polygons
}

type masked struct {
	grid      *raster.Grid
	reference *raster.Grid
	inliers   *raster.Mask
}

type corrected struct {
	grid *raster.Grid
	path string
}

// Run executes the pipeline for j on the calling goroutine and returns the
// output path. Every stage posts its label, then its progress share once it
// completes; the first failure stops the pipeline. n.Done is called exactly
// once, last.
func (r *Runner) Run(j *Job, n Notifier) (string, error) {
	j.State = Running
	log.Printf("job %s: grid=%q mask=%q", j.ID, j.Inputs.Grid(), j.Inputs.Mask())

	r.setup(j, n)

	res := then(r.load(j, n), func(in loaded) result[masked] {
		return r.mask(j, n, in)
	})
	res2 := then(res, func(in masked) result[corrected] {
		return r.correct(j, n, in)
	})
	res3 := then(res2, func(in corrected) result[string] {
		return r.save(j, n, in)
	})

	return finally(res3,
		func(path string) (string, error) {
			j.Stage = StageDone
			j.State = Succeeded
			j.OutputPath = path
			log.Printf("job %s: succeeded, output %s", j.ID, path)
			n.Done(Outcome{JobID: j.ID, OutputPath: path})
			return path, nil
		},
		func(err *StageError) (string, error) {
			j.State = Failed
			log.Printf("job %s: %v", j.ID, err)
			n.Done(Outcome{JobID: j.ID, OutputPath: j.OutputPath, Err: err})
			return "", err
		})
}

// begin marks s as current and shows its label.
func begin(j *Job, n Notifier, s Stage) {
	j.Stage = s
	n.Progress(progressLabel(s))
}

// complete adds s's share to the job and publishes it.
func complete(j *Job, n Notifier, s Stage) {
	ev := j.advance(s)
	if ev.Delta > 0 {
		n.Progress(ev)
	}
	log.Printf("job %s: %s done (%.0f%%)", j.ID, s, j.Progress)
}

// guard runs fn and turns an error or a panic into a StageError of kind.
func guard[T any](s Stage, kind Kind, fn func() (T, error)) (res result[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = fail[T](&StageError{Kind: kind, Stage: s, Err: fmt.Errorf("panic: %v", rec)})
		}
	}()
	v, err := fn()
	if err != nil {
		return fail[T](&StageError{Kind: kind, Stage: s, Err: err})
	}
	return succeed(v)
}

func (r *Runner) setup(j *Job, n Notifier) {
	// The first share stands for the window setup already done by the UI.
	complete(j, n, StageSetup)

	begin(j, n, StagePrepare)
	if r.Prepare != nil {
		r.Prepare()
	}
	complete(j, n, StagePrepare)
}

func (r *Runner) load(j *Job, n Notifier) result[loaded] {
	begin(j, n, StageLoad)
	res := guard(StageLoad, LoadError, func() (loaded, error) {
		grid, err := r.Grids.LoadGrid(j.Inputs.Grid())
		if err != nil {
			return loaded{}, err
		}
		polys, err := r.Polygons.LoadPolygons(j.Inputs.Mask(), grid.Projection)
		if err != nil {
			return loaded{}, err
		}
		return loaded{grid: grid, polys: polys}, nil
	})
	if !res.failed() {
		complete(j, n, StageLoad)
	}
	return res
}

func (r *Runner) mask(j *Job, n Notifier, in loaded) result[masked] {
	begin(j, n, StageMask)
	res := guard(StageMask, MaskError, func() (masked, error) {
		inliers, err := stable.RasterizeAndInvert(in.polys, in.grid)
		if err != nil {
			return masked{}, err
		}
		if !inliers.Matches(in.grid) {
			return masked{}, fmt.Errorf("mask %dx%d does not match grid %dx%d",
				inliers.Width, inliers.Height, in.grid.Width, in.grid.Height)
		}
		ref, err := stable.ZeroOutside(in.grid, inliers)
		if err != nil {
			return masked{}, err
		}
		if r.MaskPreview != nil {
			if err := r.MaskPreview.WriteMask(outpath.MaskPreview(j.Inputs.Grid()), inliers); err != nil {
				return masked{}, fmt.Errorf("writing mask preview: %w", err)
			}
		}
		log.Printf("job %s: %d of %d cells stable", j.ID, inliers.Count(), len(inliers.Data))
		return masked{grid: in.grid, reference: ref, inliers: inliers}, nil
	})
	if !res.failed() {
		complete(j, n, StageMask)
	}
	return res
}

func (r *Runner) correct(j *Job, n Notifier, in masked) result[corrected] {
	begin(j, n, StageCorrect)
	res := guard(StageCorrect, CorrectionError, func() (*raster.Grid, error) {
		return r.Engine.FitAndApply(in.reference, in.grid, in.inliers)
	})
	if res.failed() {
		return fail[corrected](res.err)
	}
	complete(j, n, StageCorrect)

	// Resolving the output path cannot fail and adds no progress.
	begin(j, n, StageResolve)
	path := outpath.Resolve(j.Inputs.Grid())
	j.OutputPath = path
	complete(j, n, StageResolve)

	return succeed(corrected{grid: res.value, path: path})
}

func (r *Runner) save(j *Job, n Notifier, in corrected) result[string] {
	// The resolve stage already shows the "Writing output..." label.
	j.Stage = StageSave
	res := guard(StageSave, SaveError, func() (string, error) {
		if err := r.Grids.SaveGrid(in.path, in.grid); err != nil {
			return "", err
		}
		return in.path, nil
	})
	if !res.failed() {
		complete(j, n, StageSave)
	}
	return res
}

// Start runs the job on its own goroutine and returns immediately. There is
// no handle to wait on or cancel the run; the outcome arrives through n.
func Start(r *Runner, j *Job, n Notifier) {
	go func() {
		_, _ = r.Run(j, n)
	}()
}
