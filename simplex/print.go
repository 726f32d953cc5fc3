package simplex

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Print writes the tableau as a labelled table: one header line with the
// column titles, the objective row labelled P and one line per constraint
// labelled with its basic variable.
func (t *Tableau) Print(w io.Writer) {
	fmt.Fprintf(w, "%12s", "")
	for _, title := range t.ColumnTitles {
		fmt.Fprintf(w, "%10s", title)
	}
	fmt.Fprintf(w, "%13s\n", "Solution")

	rows, _ := t.T.Dims()
	for i := range rows {
		label := "P"
		if i > 0 {
			label = t.RowTitles[i-1]
		}
		fmt.Fprintf(w, "%12s:", label)
		for _, v := range t.T.RawRowView(i) {
			fmt.Fprintf(w, "%10.2f", v)
		}
		fmt.Fprintln(w)
	}
}

func (t *Tableau) String() string {
	var sb strings.Builder
	t.Print(&sb)
	return sb.String()
}

// PrintBasis writes the basic column of every row and the raw matrix in
// gonum's format.
func (t *Tableau) PrintBasis(w io.Writer) {
	basis := make([]string, len(t.Basis))
	for i, c := range t.Basis {
		basis[i] = fmt.Sprintf("%s(%s)", t.ColumnTitles[c], t.Kinds[c])
	}
	fmt.Fprintf(w, "basis = %v\n", basis)
	caux := mat.Formatted(t.T, mat.Prefix("    "), mat.Squeeze())
	fmt.Fprintf(w, "T = %v\n", caux)
}
