package simplex

import (
	"errors"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"q.log/tableau/model"
)

const (
	// DefaultMaxIterations bounds the number of pivots of one solve.
	DefaultMaxIterations = 1000
	// DefaultTolerance is used for zero tests on pivot elements and for the
	// final feasibility check.
	DefaultTolerance = 1e-9
)

// State is the phase of the optimisation driver.
type State int

const (
	Pivoting State = iota
	PurgingArtificial
	Optimal
)

func (s State) String() string {
	switch s {
	case Pivoting:
		return "pivoting"
	case PurgingArtificial:
		return "purging-artificial"
	case Optimal:
		return "optimal"
	}
	return "unknown"
}

// Snapshot is a copy of the tableau taken before the first pivot
// (Iteration 0, Pivot nil) and after every pivot.
type Snapshot struct {
	Iteration int
	State     State
	Pivot     *Pivot
	Tableau   *Tableau
}

// Result is the outcome of a successful solve.
type Result struct {
	// Value is the optimum in the sign of the original objective.
	Value float64
	// Iterations is the number of pivots performed.
	Iterations int
	// Values holds the decision variables, x1 first.
	Values []float64
	// PurgeSteps counts pivots made to drive artificial variables out.
	PurgeSteps int

	Tableau   *Tableau
	Snapshots []Snapshot
}

type options struct {
	maxIterations int
	tolerance     float64
	snapshots     bool
}

// Option configures a solve.
type Option func(*options)

// WithMaxIterations sets the pivot ceiling. Values below 1 keep the default.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithTolerance sets the zero tolerance. Values below 0 keep the default.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol >= 0 {
			o.tolerance = tol
		}
	}
}

// WithSnapshots makes Solve record every intermediate tableau in the result.
func WithSnapshots(record bool) Option {
	return func(o *options) {
		o.snapshots = record
	}
}

func newOptions(opts []Option) options {
	o := options{
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// errStopped aborts a run when the snapshot consumer stops iterating.
var errStopped = errors.New("simplex: stopped")

// Solve runs the tableau simplex method on p.
func Solve(p *model.Problem, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	var snaps []Snapshot
	res, err := run(p, o, func(s Snapshot) bool {
		if o.snapshots {
			snaps = append(snaps, s)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	res.Snapshots = snaps
	return res, nil
}

// Snapshots returns the sequence of tableaux produced while solving p. The
// sequence is lazy and every range over it solves p from scratch. A failing
// solve yields its error as the last element.
func Snapshots(p *model.Problem, opts ...Option) iter.Seq2[Snapshot, error] {
	o := newOptions(opts)
	return func(yield func(Snapshot, error) bool) {
		_, err := run(p, o, func(s Snapshot) bool {
			return yield(s, nil)
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(Snapshot{}, err)
		}
	}
}

func run(p *model.Problem, o options, emit func(Snapshot) bool) (*Result, error) {
	t, err := Build(p)
	if err != nil {
		return nil, err
	}

	state := Pivoting
	if !emit(Snapshot{State: state, Tableau: t.Clone()}) {
		return nil, errStopped
	}

	res := &Result{}
	for state != Optimal {
		if res.Iterations >= o.maxIterations {
			return nil, fmt.Errorf("%w: %d pivots", ErrDegeneratePivot, res.Iterations)
		}

		s := solveStrategy
		if state == PurgingArtificial {
			s = purgeStrategy
		}

		pv, moved, err := t.step(s, o.tolerance)
		if err != nil {
			return nil, fmt.Errorf("%s step %d: %w", s.name, res.Iterations+1, err)
		}

		next := t.next()
		if moved {
			res.Iterations++
			if state == PurgingArtificial {
				res.PurgeSteps++
			}
			logrus.Debugf("iteration %d (%s): %s enters, %s leaves at row %d, P = %v",
				res.Iterations, s.name, pv.Entering, pv.Leaving, pv.Row, t.Value())
			if !emit(Snapshot{Iteration: res.Iterations, State: next, Pivot: &pv, Tableau: t.Clone()}) {
				return nil, errStopped
			}
		}
		if next != state {
			logrus.Debugf("state %s -> %s", state, next)
		}
		state = next
	}

	for i := range t.NumConstraints {
		if t.RHS(i+1) < -o.tolerance {
			return nil, fmt.Errorf("%w: %s = %v in the final basis", ErrInfeasible, t.RowTitles[i], t.RHS(i+1))
		}
	}

	res.Value = t.Value()
	if p.Objective == model.Minimize {
		res.Value = 0 - res.Value
	}

	res.Values = make([]float64, t.NumVars)
	for i, c := range t.Basis {
		if t.Kinds[c] == Decision {
			res.Values[c] = t.RHS(i + 1)
		}
	}
	res.Tableau = t

	logrus.Debugf("optimum %v after %d iteration(s)", res.Value, res.Iterations)
	return res, nil
}

// next evaluates the termination tests on the current tableau.
func (t *Tableau) next() State {
	if !t.optimal() {
		return Pivoting
	}
	if t.artificialRow() >= 0 {
		return PurgingArtificial
	}
	return Optimal
}
