package simplex

import "errors"

var (
	// ErrUnbounded is returned when an entering column exists but no row
	// passes the ratio test.
	ErrUnbounded = errors.New("simplex: problem is unbounded")

	// ErrInfeasible is returned when an artificial variable cannot be driven
	// out of the basis or the final basis violates a constraint.
	ErrInfeasible = errors.New("simplex: problem is infeasible")

	// ErrDegeneratePivot is returned when the iteration ceiling is reached
	// before the tableau becomes optimal, which happens when pivots cycle.
	ErrDegeneratePivot = errors.New("simplex: iteration limit reached without optimum")
)
