package simplex

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ColumnKind tags what a tableau column represents. Titles reuse the "s"
// prefix for every non-decision column, so the kind is the only reliable
// way to tell an artificial column from a slack one.
type ColumnKind int

const (
	Decision ColumnKind = iota
	Slack
	Surplus
	Artificial
)

func (k ColumnKind) String() string {
	switch k {
	case Decision:
		return "decision"
	case Slack:
		return "slack"
	case Surplus:
		return "surplus"
	case Artificial:
		return "artificial"
	}
	return "unknown"
}

// Tableau is the dense simplex tableau. Row 0 is the objective row and the
// last column holds the right-hand side of every row.
type Tableau struct {
	//T coefficients, (m+1) x (n+2m+1)
	T *mat.Dense

	ColumnTitles []string
	RowTitles    []string

	//Kinds one per non-rhs column
	Kinds []ColumnKind

	//Basis column index basic in each constraint row
	Basis []int

	NumVars        int
	NumConstraints int
}

func newTableau(numConstraints, numVars int) *Tableau {
	cols := numVars + 2*numConstraints
	return &Tableau{
		T:              mat.NewDense(numConstraints+1, cols+1, nil),
		ColumnTitles:   make([]string, cols),
		RowTitles:      make([]string, numConstraints),
		Kinds:          make([]ColumnKind, cols),
		Basis:          make([]int, numConstraints),
		NumVars:        numVars,
		NumConstraints: numConstraints,
	}
}

// rhs is the index of the right-hand side column.
func (t *Tableau) rhs() int {
	_, c := t.T.Dims()
	return c - 1
}

// candidates is the number of leading columns allowed to enter the basis;
// artificial columns are never candidates.
func (t *Tableau) candidates() int {
	return t.NumVars + t.NumConstraints
}

// RHS returns the right-hand side of row r.
func (t *Tableau) RHS(r int) float64 {
	return t.T.At(r, t.rhs())
}

// Value is the objective row right-hand side under the internal sign
// convention.
func (t *Tableau) Value() float64 {
	return t.RHS(0)
}

// ScaleRow divides every entry of row r by d.
func (t *Tableau) ScaleRow(r int, d float64) {
	row := t.T.RawRowView(r)
	for j := range row {
		row[j] /= d
	}
}

// Eliminate subtracts a multiple of the pivot row from every other row so
// that column c becomes zero everywhere except in the pivot row.
func (t *Tableau) Eliminate(pivotRow, c int) {
	rows, _ := t.T.Dims()
	pr := t.T.RawRowView(pivotRow)
	for i := range rows {
		if i == pivotRow {
			continue
		}
		row := t.T.RawRowView(i)
		factor := row[c]
		floats.AddScaled(row, -factor, pr)
	}
}

// pivot makes column c a unit column with its 1 in row r and marks c basic
// in that row. Row 0 is the objective row; constraint rows start at 1.
func (t *Tableau) pivot(r, c int) {
	t.Basis[r-1] = c
	t.RowTitles[r-1] = t.ColumnTitles[c]

	t.ScaleRow(r, t.T.At(r, c))
	t.Eliminate(r, c)
}

// artificialRow returns the first constraint row (1-based) whose basic
// variable is artificial, or -1.
func (t *Tableau) artificialRow() int {
	for i, c := range t.Basis {
		if t.Kinds[c] == Artificial {
			return i + 1
		}
	}
	return -1
}

// optimal reports whether no candidate column has a negative objective
// coefficient.
func (t *Tableau) optimal() bool {
	obj := t.T.RawRowView(0)[:t.candidates()]
	return floats.Min(obj) >= 0
}

// Clone returns a deep copy of the tableau.
func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		T:              mat.DenseCopyOf(t.T),
		ColumnTitles:   append([]string(nil), t.ColumnTitles...),
		RowTitles:      append([]string(nil), t.RowTitles...),
		Kinds:          append([]ColumnKind(nil), t.Kinds...),
		Basis:          append([]int(nil), t.Basis...),
		NumVars:        t.NumVars,
		NumConstraints: t.NumConstraints,
	}
}
