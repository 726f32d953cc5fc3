package instance

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"q.log/tableau/model"
)

// ProblemFile is the YAML layout of a problem:
//
//	objective: maximize
//	coefficients: [3, 5]
//	constraints:
//	  - coefficients: [1, 0]
//	    relation: "<="
//	    rhs: 4
type ProblemFile struct {
	Objective    string           `yaml:"objective"`
	Coefficients []float64        `yaml:"coefficients"`
	Constraints  []ConstraintFile `yaml:"constraints"`
}

type ConstraintFile struct {
	Coefficients []float64 `yaml:"coefficients"`
	Relation     string    `yaml:"relation"`
	RHS          float64   `yaml:"rhs"`
}

// ReadYAMLFile reads a problem from a YAML file.
func ReadYAMLFile(filename string) (*model.Problem, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	p, err := ReadYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	logrus.Infof("read %s: %d constraints, %d variables, %s", filename, p.NumRows, p.NumCols, p.Objective)
	return p, nil
}

// ReadYAML decodes a problem with strict field checking, so typos in keys
// are reported instead of silently ignored.
func ReadYAML(r io.Reader) (*model.Problem, error) {
	var pf ProblemFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&pf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return pf.Problem()
}

// Problem converts the decoded file into a normalized problem.
func (pf *ProblemFile) Problem() (*model.Problem, error) {
	objective, err := ParseObjective(pf.Objective)
	if err != nil {
		return nil, err
	}
	if len(pf.Constraints) == 0 {
		return nil, fmt.Errorf("%w: no constraints", model.ErrInvalidProblem)
	}

	rows := make([]row, len(pf.Constraints))
	for i, c := range pf.Constraints {
		rel, err := ParseRelation(c.Relation)
		if err != nil {
			return nil, fmt.Errorf("constraint %d: %w", i+1, err)
		}
		rows[i] = row{c.Coefficients, rel, c.RHS}
	}
	return build(objective, pf.Coefficients, rows)
}

// ParseObjective accepts max/maximize/maximise and min/minimize/minimise.
func ParseObjective(s string) (model.Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize", "maximise", "maximization", "maximisation":
		return model.Maximize, nil
	case "min", "minimize", "minimise", "minimization", "minimisation":
		return model.Minimize, nil
	}
	return 0, fmt.Errorf("%w: unknown objective %q", ErrMalformedInput, s)
}

// ParseRelation accepts the relation symbols <, <=, >, >= and =.
func ParseRelation(s string) (model.Relation, error) {
	switch strings.TrimSpace(s) {
	case "<", "<=", "≤":
		return model.LessEqual, nil
	case ">", ">=", "≥":
		return model.GreaterEqual, nil
	case "=", "==":
		return model.Equal, nil
	}
	return 0, fmt.Errorf("%w: unknown relation %q", ErrMalformedInput, s)
}
