package simplex

import (
	"fmt"
	"math"
)

// Pivot records one basis change.
type Pivot struct {
	Row      int
	Column   int
	Entering string
	Leaving  string
}

// strategy pairs an entering-column rule with a leaving-row rule. Both
// pivot variants share the same elimination and differ only here.
type strategy struct {
	name string

	// column returns the entering column, or false if none qualifies.
	column func(t *Tableau) (int, bool)

	// row returns the 1-based pivot row for the entering column c.
	row func(t *Tableau, c int, tol float64) (int, error)

	// exhausted is returned when column finds nothing; nil means the
	// tableau is already optimal for this strategy.
	exhausted error
}

var solveStrategy = strategy{
	name:   "solve",
	column: mostNegativeColumn,
	row:    minRatioRow,
}

var purgeStrategy = strategy{
	name:      "purge-artificial",
	column:    firstNonzeroColumn,
	row:       artificialBasicRow,
	exhausted: fmt.Errorf("%w: no column can replace the artificial variable", ErrInfeasible),
}

// mostNegativeColumn picks the most negative objective coefficient among
// the candidate columns. Only strictly negative values qualify and the
// first occurrence wins ties.
func mostNegativeColumn(t *Tableau) (int, bool) {
	key := float64(0)
	keyColumn := -1
	obj := t.T.RawRowView(0)
	for c := range t.candidates() {
		if obj[c] < key {
			key = obj[c]
			keyColumn = c
		}
	}
	return keyColumn, keyColumn >= 0
}

// minRatioRow runs the minimum ratio test on column c. Rows with a
// non-positive coefficient or a non-positive ratio are skipped; the first
// occurrence wins ties.
func minRatioRow(t *Tableau, c int, _ float64) (int, error) {
	ratio := math.MaxFloat64
	keyRow := -1
	rhs := t.rhs()
	for i := 1; i <= t.NumConstraints; i++ {
		coef := t.T.At(i, c)
		if coef <= 0 {
			continue
		}
		ratioTest := t.T.At(i, rhs) / coef
		if ratioTest > 0 && ratioTest < ratio {
			ratio = ratioTest
			keyRow = i
		}
	}
	if keyRow < 0 {
		return -1, fmt.Errorf("%w: column %s has no positive ratio", ErrUnbounded, t.ColumnTitles[c])
	}
	return keyRow, nil
}

// firstNonzeroColumn picks the first candidate column with a nonzero
// objective coefficient, regardless of sign.
func firstNonzeroColumn(t *Tableau) (int, bool) {
	obj := t.T.RawRowView(0)
	for c := range t.candidates() {
		if obj[c] != 0 {
			return c, true
		}
	}
	return -1, false
}

// artificialBasicRow picks the first row whose basic variable is
// artificial.
func artificialBasicRow(t *Tableau, c int, tol float64) (int, error) {
	r := t.artificialRow()
	if r < 0 {
		return -1, fmt.Errorf("%w: no artificial variable in the basis", ErrInfeasible)
	}
	if math.Abs(t.T.At(r, c)) <= tol {
		return -1, fmt.Errorf("%w: artificial %s cannot leave through column %s", ErrInfeasible, t.RowTitles[r-1], t.ColumnTitles[c])
	}
	return r, nil
}

// step performs one pivot chosen by s. moved is false when s found no
// entering column and has nothing to report.
func (t *Tableau) step(s strategy, tol float64) (p Pivot, moved bool, err error) {
	c, ok := s.column(t)
	if !ok {
		return Pivot{}, false, s.exhausted
	}

	r, err := s.row(t, c, tol)
	if err != nil {
		return Pivot{}, false, err
	}

	p = Pivot{
		Row:      r,
		Column:   c,
		Entering: t.ColumnTitles[c],
		Leaving:  t.RowTitles[r-1],
	}
	t.pivot(r, c)

	return p, true, nil
}
