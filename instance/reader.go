package instance

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/sirupsen/logrus"

	"q.log/tableau/model"
)

// ErrMalformedInput is returned when a problem file cannot be read or
// holds values the solver cannot accept.
var ErrMalformedInput = errors.New("instance: malformed input")

type row struct {
	coefs []float64
	rel   model.Relation
	rhs   float64
}

// MPSReader reads a mps file to construct a problem
type MPSReader struct {
	filename string
	fixed    bool
}

// NewMPSReader returns a reader for free-format MPS files. Set fixed to read
// the fixed-column format instead.
func NewMPSReader(filename string, fixed bool) *MPSReader {
	return &MPSReader{
		filename: filename,
		fixed:    fixed,
	}
}

// Read parses the file with GLPK and returns the problem with non-negative
// right-hand sides. Variable bounds other than x >= 0 become extra rows.
func (r *MPSReader) Read() (*model.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	format := glpk.MPS_FILE
	if r.fixed {
		format = glpk.MPS_DECK
	}
	if err := lp.ReadMPS(format, nil, r.filename); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedInput, r.filename, err)
	}

	numCols := lp.NumCols()
	objective := model.Minimize
	if lp.ObjDir() == glpk.MAX {
		objective = model.Maximize
	}

	//populate obj function
	var cVec []float64
	for c := range numCols + 1 {
		if c == 0 {
			continue
		}
		cVec = append(cVec, lp.ObjCoef(c))
	}

	//populate constraints
	var rows []row
	for i := range lp.NumRows() + 1 {
		if i == 0 {
			continue
		}
		rowVec := make([]float64, numCols)
		idxs, vals := lp.MatRow(i)
		for k, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = vals[k]
		}

		lb, ub := lp.RowLB(i), lp.RowUB(i)
		switch {
		case lb == -math.MaxFloat64 && ub == math.MaxFloat64:
			logrus.Debugf("skipping free row %d", i)
		case lb == -math.MaxFloat64:
			rows = append(rows, row{rowVec, model.LessEqual, ub})
		case ub == math.MaxFloat64:
			rows = append(rows, row{rowVec, model.GreaterEqual, lb})
		case lb == ub:
			rows = append(rows, row{rowVec, model.Equal, lb})
		default:
			rows = append(rows, row{rowVec, model.GreaterEqual, lb})
			rows = append(rows, row{append([]float64(nil), rowVec...), model.LessEqual, ub})
		}
	}

	for c := range numCols {
		lb, ub := lp.ColLB(c+1), lp.ColUB(c+1)
		if lb < 0 {
			logrus.Warnf("variable %d has lower bound %v; the tableau method assumes x >= 0", c+1, lb)
		}
		if lb > 0 {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			rows = append(rows, row{rowVec, model.GreaterEqual, lb})
		}
		if ub != math.MaxFloat64 {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			rows = append(rows, row{rowVec, model.LessEqual, ub})
		}
	}

	p, err := build(objective, cVec, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.filename, err)
	}
	logrus.Infof("read %s: %d constraints, %d variables, %s", r.filename, p.NumRows, p.NumCols, p.Objective)
	return p, nil
}

// build assembles a normalized problem from parsed rows.
func build(objective model.Objective, cVec []float64, rows []row) (*model.Problem, error) {
	p, err := model.NewProblem(len(rows), len(cVec), objective)
	if err != nil {
		return nil, err
	}
	if err := p.SetC(cVec); err != nil {
		return nil, err
	}
	for i, rw := range rows {
		if err := p.SetRow(i, rw.coefs, rw.rel, rw.rhs); err != nil {
			return nil, err
		}
	}

	//pass the problem to b >= 0
	p.NormalizeRHS()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
