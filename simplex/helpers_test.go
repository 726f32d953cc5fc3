package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"q.log/tableau/model"
)

type constraint struct {
	coefs []float64
	rel   model.Relation
	rhs   float64
}

func newProblem(t *testing.T, obj model.Objective, c []float64, rows ...constraint) *model.Problem {
	t.Helper()
	p, err := model.NewProblem(len(rows), len(c), obj)
	require.NoError(t, err)
	require.NoError(t, p.SetC(c))
	for i, r := range rows {
		require.NoError(t, p.SetRow(i, r.coefs, r.rel, r.rhs))
	}
	return p
}

// scenarioA: maximize 3x1 + 5x2, x1 <= 4, 2x2 <= 12, 3x1 + 2x2 <= 18.
func scenarioA(t *testing.T) *model.Problem {
	return newProblem(t, model.Maximize, []float64{3, 5},
		constraint{[]float64{1, 0}, model.LessEqual, 4},
		constraint{[]float64{0, 2}, model.LessEqual, 12},
		constraint{[]float64{3, 2}, model.LessEqual, 18},
	)
}

// scenarioB: minimize 2x1 + 3x2, x1 + x2 >= 10, x1 >= 2.
func scenarioB(t *testing.T) *model.Problem {
	return newProblem(t, model.Minimize, []float64{2, 3},
		constraint{[]float64{1, 1}, model.GreaterEqual, 10},
		constraint{[]float64{1, 0}, model.GreaterEqual, 2},
	)
}
