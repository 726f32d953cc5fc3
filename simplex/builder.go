package simplex

import (
	"fmt"

	"q.log/tableau/model"
)

// Build converts a problem into its initial tableau. Slack columns are
// added for "<" rows, surplus and artificial columns for ">" rows and an
// artificial column for "=" rows. For maximisation the objective row is
// negated once, so that the solver always drives row 0 non-negative.
func Build(p *model.Problem) (*Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n, m := p.NumCols, p.NumRows
	t := newTableau(m, n)
	rhs := t.rhs()

	for c := range n {
		t.T.Set(0, c, p.C.At(0, c))
	}
	for i := range m {
		for c := range n {
			t.T.Set(i+1, c, p.A.At(i, c))
		}
		t.T.Set(i+1, rhs, p.B.At(i, 0))
	}

	for c := range t.Kinds {
		switch {
		case c < n:
			t.Kinds[c] = Decision
		case c < n+m:
			t.Kinds[c] = Slack
		default:
			t.Kinds[c] = Artificial
		}
	}

	for i, rel := range p.Relations {
		slack := n + i
		artificial := n + m + i
		switch rel {
		case model.LessEqual:
			t.T.Set(i+1, slack, 1)
			t.Basis[i] = slack
		case model.GreaterEqual:
			t.T.Set(i+1, slack, -1)
			t.T.Set(i+1, artificial, 1)
			t.Kinds[slack] = Surplus
			t.Basis[i] = artificial
		case model.Equal:
			t.T.Set(i+1, artificial, 1)
			t.Basis[i] = artificial
		}
	}

	if p.Objective == model.Maximize {
		obj := t.T.RawRowView(0)
		for c, v := range obj {
			if v != 0 {
				obj[c] = -v
			}
		}
	}

	for c := range t.ColumnTitles {
		if c < n {
			t.ColumnTitles[c] = fmt.Sprintf("x%d", c+1)
		} else {
			t.ColumnTitles[c] = fmt.Sprintf("s%d", c-n+1)
		}
	}
	for i, c := range t.Basis {
		t.RowTitles[i] = t.ColumnTitles[c]
	}

	return t, nil
}
