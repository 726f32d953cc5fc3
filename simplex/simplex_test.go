package simplex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
)

func TestSolve_MaximizeAllLessEqual(t *testing.T) {
	// GIVEN maximize 3x1 + 5x2 under three "<" rows
	p := scenarioA(t)

	// WHEN solved
	res, err := Solve(p)

	// THEN P = 36 at x1 = 2, x2 = 6 after two pivots and no purging
	require.NoError(t, err)
	assert.InDelta(t, 36.0, res.Value, 1e-9)
	assert.InDeltaSlice(t, []float64{2, 6}, res.Values, 1e-9)
	assert.Equal(t, 2, res.Iterations)
	assert.Zero(t, res.PurgeSteps)
	assert.Nil(t, res.Snapshots)
	assert.Equal(t, []string{"s1", "x2", "x1"}, res.Tableau.RowTitles)
}

func TestSolve_MinimizeWithArtificialPurge(t *testing.T) {
	// GIVEN minimize 2x1 + 3x2, x1 + x2 >= 10, x1 >= 2
	p := scenarioB(t)

	res, err := Solve(p)

	// THEN the artificial variables are purged and P = 20
	require.NoError(t, err)
	assert.InDelta(t, 20.0, res.Value, 1e-9)
	assert.InDeltaSlice(t, []float64{10, 0}, res.Values, 1e-9)
	assert.Equal(t, 3, res.Iterations)
	assert.Equal(t, 2, res.PurgeSteps)
	assert.Equal(t, -1, res.Tableau.artificialRow())
}

func TestSolve_InfeasibleEquality(t *testing.T) {
	// GIVEN x1 = 5 together with x1 <= 3
	p := newProblem(t, model.Minimize, []float64{1},
		constraint{[]float64{1}, model.Equal, 5},
		constraint{[]float64{1}, model.LessEqual, 3},
	)

	_, err := Solve(p)

	// THEN the final basis leaves s2 negative and the solve fails
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolve_Unbounded(t *testing.T) {
	p := newProblem(t, model.Maximize, []float64{1, 0},
		constraint{[]float64{-1, 1}, model.LessEqual, 1},
	)

	_, err := Solve(p)

	assert.ErrorIs(t, err, ErrUnbounded)
}

func TestSolve_IterationCeiling(t *testing.T) {
	_, err := Solve(scenarioA(t), WithMaxIterations(1))

	assert.ErrorIs(t, err, ErrDegeneratePivot)
}

func TestSolve_InvalidProblem(t *testing.T) {
	p := scenarioA(t)
	p.NumRows = 0

	_, err := Solve(p)

	assert.ErrorIs(t, err, model.ErrInvalidProblem)
}

func TestSolve_TieBreaksPickLowerIndex(t *testing.T) {
	// GIVEN equal objective coefficients and equal ratios
	p := newProblem(t, model.Maximize, []float64{1, 1},
		constraint{[]float64{1, 1}, model.LessEqual, 4},
		constraint{[]float64{1, 0}, model.LessEqual, 4},
	)

	res, err := Solve(p, WithSnapshots(true))

	// THEN x1 enters through row 1 and that single pivot is optimal
	require.NoError(t, err)
	require.Len(t, res.Snapshots, 2)
	assert.Equal(t, &Pivot{Row: 1, Column: 0, Entering: "x1", Leaving: "s1"}, res.Snapshots[1].Pivot)
	assert.InDelta(t, 4.0, res.Value, 1e-9)
	assert.InDeltaSlice(t, []float64{4, 0}, res.Values, 1e-9)
}

func TestSolve_LessEqualProblemsNeverPurge(t *testing.T) {
	problems := []*model.Problem{
		scenarioA(t),
		newProblem(t, model.Maximize, []float64{1, 1},
			constraint{[]float64{1, 0}, model.LessEqual, 3},
			constraint{[]float64{0, 1}, model.LessEqual, 2},
		),
		newProblem(t, model.Maximize, []float64{2, 3, 1},
			constraint{[]float64{1, 1, 1}, model.LessEqual, 10},
			constraint{[]float64{2, 1, 0}, model.LessEqual, 8},
			constraint{[]float64{0, 1, 3}, model.LessEqual, 9},
		),
		newProblem(t, model.Minimize, []float64{1, 2},
			constraint{[]float64{1, 1}, model.LessEqual, 5},
		),
	}

	for i, p := range problems {
		for s, err := range Snapshots(p) {
			require.NoError(t, err, "problem %d", i)
			assert.NotEqual(t, PurgingArtificial, s.State, "problem %d iteration %d", i, s.Iteration)
		}
		res, err := Solve(p)
		require.NoError(t, err, "problem %d", i)
		assert.Zero(t, res.PurgeSteps, "problem %d", i)
	}
}

func TestSolve_AlreadyOptimal(t *testing.T) {
	// GIVEN minimize x1 + 2x2 with only "<" rows, optimal at the origin
	p := newProblem(t, model.Minimize, []float64{1, 2},
		constraint{[]float64{1, 1}, model.LessEqual, 5},
	)

	res, err := Solve(p)

	require.NoError(t, err)
	assert.Zero(t, res.Iterations)
	assert.Equal(t, 0.0, res.Value)
	assert.Equal(t, []float64{0, 0}, res.Values)
}

func TestSolve_Deterministic(t *testing.T) {
	first, err := Solve(scenarioB(t), WithSnapshots(true))
	require.NoError(t, err)
	second, err := Solve(scenarioB(t), WithSnapshots(true))
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.Values, second.Values)
	require.Len(t, second.Snapshots, len(first.Snapshots))
	for i := range first.Snapshots {
		assert.Equal(t, first.Snapshots[i].Tableau.T.RawMatrix().Data, second.Snapshots[i].Tableau.T.RawMatrix().Data)
		assert.Equal(t, first.Snapshots[i].Tableau.RowTitles, second.Snapshots[i].Tableau.RowTitles)
	}
}

func TestSnapshots_StatesFollowDriver(t *testing.T) {
	var states []State
	var iterations []int
	for s, err := range Snapshots(scenarioB(t)) {
		require.NoError(t, err)
		states = append(states, s.State)
		iterations = append(iterations, s.Iteration)
	}

	assert.Equal(t, []State{Pivoting, PurgingArtificial, Pivoting, Optimal}, states)
	assert.Equal(t, []int{0, 1, 2, 3}, iterations)
}

func TestSnapshots_Restartable(t *testing.T) {
	seq := Snapshots(scenarioA(t))

	count := func() int {
		n := 0
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}

	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())
}

func TestSnapshots_EarlyStop(t *testing.T) {
	n := 0
	for s, err := range Snapshots(scenarioA(t)) {
		require.NoError(t, err)
		assert.Nil(t, s.Pivot)
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestSnapshots_ErrorIsLast(t *testing.T) {
	p := newProblem(t, model.Minimize, []float64{1},
		constraint{[]float64{1}, model.Equal, 5},
		constraint{[]float64{1}, model.LessEqual, 3},
	)

	var snaps []Snapshot
	var last error
	for s, err := range Snapshots(p) {
		if err != nil {
			last = err
			continue
		}
		snaps = append(snaps, s)
	}

	assert.ErrorIs(t, last, ErrInfeasible)
	assert.Len(t, snaps, 2)
}

func TestSnapshots_AreIndependentCopies(t *testing.T) {
	res, err := Solve(scenarioA(t), WithSnapshots(true))
	require.NoError(t, err)
	require.Len(t, res.Snapshots, 3)

	initial := res.Snapshots[0].Tableau
	assert.Equal(t, []string{"s1", "s2", "s3"}, initial.RowTitles)
	assert.Equal(t, 0.0, initial.Value())
	assert.Equal(t, Optimal, res.Snapshots[2].State)
}

func TestTableau_Print(t *testing.T) {
	tab, err := Build(scenarioA(t))
	require.NoError(t, err)

	out := tab.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], "Solution"))
	assert.Contains(t, lines[0], "        x1        x2        s1")
	assert.True(t, strings.HasPrefix(lines[1], "           P:     -3.00     -5.00"))
	assert.True(t, strings.HasPrefix(lines[3], "          s2:      0.00      2.00"))

	var basis strings.Builder
	tab.PrintBasis(&basis)
	assert.Contains(t, basis.String(), "s1(slack)")
}
