package tui

import (
	"errors"
	"strings"
	"testing"

	"dh-debias/internal/app"
	"dh-debias/internal/job"
	"dh-debias/internal/raster"
	"dh-debias/internal/stable"
	"dh-debias/internal/uiloop"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memGrids struct{ saveErr error }

func (memGrids) LoadGrid(string) (*raster.Grid, error) {
	g := raster.NewGrid(2, 2)
	g.GeoTransform = [6]float64{0, 1, 0, 2, 0, -1}
	copy(g.Data, []float64{1, 1, 3, 3})
	return g, nil
}

func (m memGrids) SaveGrid(string, *raster.Grid) error { return m.saveErr }

type noPolygons struct{}

func (noPolygons) LoadPolygons(string, string) (stable.Polygons, error) {
	return stable.Polygons{geom.Polygon{{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}}}}, nil
}

type shiftEngine struct{}

func (shiftEngine) FitAndApply(_, source *raster.Grid, _ *raster.Mask) (*raster.Grid, error) {
	return source.Clone(), nil
}

// newTestModel runs jobs synchronously; their messages wait in the queue
// until a DrainMsg arrives.
func newTestModel(grids memGrids) (Model, *uiloop.Queue) {
	q := uiloop.New(nil)
	r := &job.Runner{Grids: grids, Polygons: noPolygons{}, Engine: shiftEngine{}}
	return New(q, func(j *job.Job, n job.Notifier) { _, _ = r.Run(j, n) }), q
}

func send(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestStartNeedsBothInputs(t *testing.T) {
	m, _ := newTestModel(memGrids{})
	tm := send(m, typeText("/data/dh.tif"), tab, tab, enter)

	model := tm.(Model)
	assert.Equal(t, app.PhaseInput, model.State().Phase)
	assert.Equal(t, "/data/dh.tif", model.State().Inputs.Grid())
	assert.False(t, model.State().CanStart())
}

func TestRunShowsProgressAndOutcome(t *testing.T) {
	m, q := newTestModel(memGrids{})
	tm := send(m, typeText("/data/dh.tif"), tab, typeText("/data/unstable.shp"), tab)
	require.True(t, tm.(Model).State().CanStart())

	tm = send(tm, enter)
	model := tm.(Model)
	assert.Equal(t, app.PhaseRunning, model.State().Phase)
	assert.Greater(t, q.Len(), 0)
	assert.Equal(t, 0.0, model.Percent())

	tm = send(tm, DrainMsg{})
	model = tm.(Model)
	assert.Equal(t, 1.0, model.Percent())
	require.Equal(t, app.PhaseFinished, model.State().Phase)
	assert.True(t, model.State().Outcome.Succeeded())
	assert.Contains(t, model.View(), "dh_debias.tif")
	assert.Contains(t, model.View(), "Press Enter to exit.")

	_, cmd := tm.Update(enter)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFailureShowsStageGuidance(t *testing.T) {
	m, _ := newTestModel(memGrids{saveErr: errors.New("permission denied")})
	tm := send(m, typeText("dh.tif"), tab, typeText("m.shp"), tab, enter, DrainMsg{})

	model := tm.(Model)
	require.Equal(t, app.PhaseFinished, model.State().Phase)
	view := model.View()
	assert.Contains(t, view, "Debiasing error")
	assert.Contains(t, view, "SaveError: permission denied")
	assert.False(t, strings.Contains(view, "Click OK"))
}

func TestKeysIgnoredWhileRunning(t *testing.T) {
	m, _ := newTestModel(memGrids{})
	tm := send(m, typeText("dh.tif"), tab, typeText("m.shp"), tab, enter)

	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
}
