package model

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Objective is the optimisation direction of a Problem.
type Objective int

const (
	Maximize Objective = iota + 1
	Minimize
)

func (o Objective) String() string {
	switch o {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	}
	return fmt.Sprintf("Objective(%d)", int(o))
}

// Relation is the comparison symbol of one constraint row.
type Relation int

const (
	LessEqual Relation = iota + 1
	GreaterEqual
	Equal
)

func (r Relation) String() string {
	switch r {
	case LessEqual:
		return "<"
	case GreaterEqual:
		return ">"
	case Equal:
		return "="
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// Problem is a linear program in the form accepted by the tableau solver:
//
//	maximize or minimize  C·x
//	subject to            A_i·x (<, >, =) B_i   for every row i
//
// The problem is immutable once handed to the solver.
type Problem struct {
	Objective Objective

	//C objective function coefficients
	C *mat.Dense

	//A constraints matrix
	A *mat.Dense

	//B constraints rhs
	B *mat.Dense

	//Relations one per constraint row
	Relations []Relation

	NumRows int
	NumCols int
}

// NewProblem returns a zero problem with numRows constraints over numCols
// variables. All relations start as LessEqual.
func NewProblem(numRows, numCols int, objective Objective) (*Problem, error) {
	if numRows <= 0 || numCols <= 0 {
		return nil, fmt.Errorf("%w: %d constraints, %d variables", ErrInvalidProblem, numRows, numCols)
	}

	rel := make([]Relation, numRows)
	for i := range rel {
		rel[i] = LessEqual
	}

	return &Problem{
		Objective: objective,
		C:         mat.NewDense(1, numCols, nil),
		A:         mat.NewDense(numRows, numCols, nil),
		B:         mat.NewDense(numRows, 1, nil),
		Relations: rel,
		NumRows:   numRows,
		NumCols:   numCols,
	}, nil
}

func (p *Problem) SetC(cVec []float64) error {
	if len(cVec) != p.NumCols {
		return fmt.Errorf("%w: %d objective coefficients for %d variables", ErrInvalidProblem, len(cVec), p.NumCols)
	}

	p.C = mat.NewDense(1, p.NumCols, append([]float64(nil), cVec...))

	return nil
}

// SetA replaces the constraint matrix; aVec is read in row-major order.
func (p *Problem) SetA(aVec []float64) error {
	if len(aVec) != p.NumCols*p.NumRows {
		return fmt.Errorf("%w: %d constraint coefficients for a %dx%d matrix", ErrInvalidProblem, len(aVec), p.NumRows, p.NumCols)
	}

	p.A = mat.NewDense(p.NumRows, p.NumCols, append([]float64(nil), aVec...))

	return nil
}

func (p *Problem) SetB(bVec []float64) error {
	if len(bVec) != p.NumRows {
		return fmt.Errorf("%w: %d right-hand sides for %d constraints", ErrInvalidProblem, len(bVec), p.NumRows)
	}

	p.B = mat.NewDense(p.NumRows, 1, append([]float64(nil), bVec...))

	return nil
}

// SetRow overwrites constraint row r.
func (p *Problem) SetRow(r int, rVec []float64, rel Relation, rhs float64) error {
	if r < 0 || r >= p.NumRows {
		return fmt.Errorf("%w: row %d does not exist", ErrInvalidProblem, r)
	}
	if len(rVec) != p.NumCols {
		return fmt.Errorf("%w: row %d has %d coefficients, want %d", ErrInvalidProblem, r, len(rVec), p.NumCols)
	}

	p.A.SetRow(r, rVec)
	p.B.Set(r, 0, rhs)
	p.Relations[r] = rel

	return nil
}

// AddRow appends a constraint row.
func (p *Problem) AddRow(rVec []float64, rel Relation, rhs float64) error {
	if len(rVec) != p.NumCols {
		return fmt.Errorf("%w: row has %d coefficients, want %d", ErrInvalidProblem, len(rVec), p.NumCols)
	}

	p.A = mat.DenseCopyOf(p.A.Grow(1, 0))
	p.A.SetRow(p.NumRows, rVec)

	p.B = mat.DenseCopyOf(p.B.Grow(1, 0))
	p.B.Set(p.NumRows, 0, rhs)

	p.Relations = append(p.Relations, rel)

	p.NumRows++
	return nil
}

// NegateRow multiplies constraint row r by -1, flipping its relation, so
// that its right-hand side changes sign.
func (p *Problem) NegateRow(r int) error {
	if r < 0 || r >= p.NumRows {
		return fmt.Errorf("%w: row %d does not exist", ErrInvalidProblem, r)
	}

	for col := range p.NumCols {
		p.A.Set(r, col, -p.A.At(r, col))
	}
	p.B.Set(r, 0, -p.B.At(r, 0))

	switch p.Relations[r] {
	case LessEqual:
		p.Relations[r] = GreaterEqual
	case GreaterEqual:
		p.Relations[r] = LessEqual
	}
	return nil
}

// NormalizeRHS negates every row with a negative right-hand side. The
// tableau method needs b >= 0 for its initial basis to be feasible.
func (p *Problem) NormalizeRHS() {
	for r := range p.NumRows {
		if p.B.At(r, 0) < 0 {
			_ = p.NegateRow(r)
		}
	}
}

// Validate checks that the problem can be turned into a tableau.
func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil problem", ErrInvalidProblem)
	}
	if p.NumRows <= 0 || p.NumCols <= 0 {
		return fmt.Errorf("%w: %d constraints, %d variables", ErrInvalidProblem, p.NumRows, p.NumCols)
	}
	if p.Objective != Maximize && p.Objective != Minimize {
		return fmt.Errorf("%w: unknown objective %v", ErrInvalidProblem, p.Objective)
	}
	if p.C == nil || p.A == nil || p.B == nil {
		return fmt.Errorf("%w: missing coefficients", ErrInvalidProblem)
	}
	if r, c := p.C.Dims(); r != 1 || c != p.NumCols {
		return fmt.Errorf("%w: objective is %dx%d, want 1x%d", ErrInvalidProblem, r, c, p.NumCols)
	}
	if r, c := p.A.Dims(); r != p.NumRows || c != p.NumCols {
		return fmt.Errorf("%w: constraint matrix is %dx%d, want %dx%d", ErrInvalidProblem, r, c, p.NumRows, p.NumCols)
	}
	if r, c := p.B.Dims(); r != p.NumRows || c != 1 {
		return fmt.Errorf("%w: rhs is %dx%d, want %dx1", ErrInvalidProblem, r, c, p.NumRows)
	}
	if len(p.Relations) != p.NumRows {
		return fmt.Errorf("%w: %d relations for %d constraints", ErrInvalidProblem, len(p.Relations), p.NumRows)
	}
	for i, rel := range p.Relations {
		if rel != LessEqual && rel != GreaterEqual && rel != Equal {
			return fmt.Errorf("%w: constraint %d has unknown relation %v", ErrInvalidProblem, i+1, rel)
		}
	}
	for _, m := range []*mat.Dense{p.C, p.A, p.B} {
		for _, v := range m.RawMatrix().Data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: non-finite coefficient %v", ErrInvalidProblem, v)
			}
		}
	}

	return nil
}

// Print writes c, A and b using gonum's matrix formatting.
func (p *Problem) Print(w io.Writer) {
	caux := mat.Formatted(p.C, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "c = %v\n", caux)

	aaux := mat.Formatted(p.A, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "A = %v\n", aaux)

	baux := mat.Formatted(p.B, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "b = %v\n", baux)

	fmt.Fprintf(w, "%s, relations %v\n", p.Objective, p.Relations)
}
