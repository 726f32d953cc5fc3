package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"q.log/tableau/instance"
	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

type solveFlags struct {
	format        string // Problem file format
	fixedMPS      bool   // Read MPS in fixed-column format
	configPath    string // Solver config file
	maxIterations int    // Pivot ceiling
	tableaux      bool   // Print every intermediate tableau
	output        string // Result format
}

// resultOutput is the YAML form of a solve result.
type resultOutput struct {
	Objective  string             `yaml:"objective"`
	Value      float64            `yaml:"value"`
	Iterations int                `yaml:"iterations"`
	PurgeSteps int                `yaml:"purge_steps"`
	Variables  map[string]float64 `yaml:"variables"`
}

func newSolveCmd() *cobra.Command {
	f := &solveFlags{}
	c := &cobra.Command{
		Use:   "solve <problem-file>",
		Short: "Solve a linear program read from an MPS or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultSolverConfig()
			if f.configPath != "" {
				var err error
				if cfg, err = loadSolverConfig(f.configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("max-iterations") {
				cfg.MaxIterations = f.maxIterations
			}
			if f.tableaux {
				cfg.RecordSnapshots = true
			}

			p, err := readProblem(args[0], f.format, f.fixedMPS)
			if err != nil {
				return err
			}
			return solve(cmd.OutOrStdout(), p, cfg, f.output)
		},
	}

	c.Flags().StringVar(&f.format, "format", "auto", "Problem file format (auto, mps, yaml)")
	c.Flags().BoolVar(&f.fixedMPS, "fixed-mps", false, "Read MPS files in fixed-column format")
	c.Flags().StringVar(&f.configPath, "config", "", "Solver config YAML file")
	c.Flags().IntVar(&f.maxIterations, "max-iterations", simplex.DefaultMaxIterations, "Maximum number of pivots")
	c.Flags().BoolVar(&f.tableaux, "tableaux", false, "Print the tableau before the first and after every pivot")
	c.Flags().StringVar(&f.output, "output", "text", "Result format (text, yaml)")
	return c
}

func readProblem(filename, format string, fixed bool) (*model.Problem, error) {
	if format == "auto" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "mps"
		}
	}
	switch format {
	case "yaml":
		return instance.ReadYAMLFile(filename)
	case "mps":
		return instance.NewMPSReader(filename, fixed).Read()
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func solve(w io.Writer, p *model.Problem, cfg SolverConfig, output string) error {
	if output != "text" && output != "yaml" {
		return fmt.Errorf("unknown output %q", output)
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		p.Print(logrus.StandardLogger().Out)
	}

	startTime := time.Now()
	logrus.Infof("solving %s problem with %d constraints, %d variables", p.Objective, p.NumRows, p.NumCols)

	res, err := simplex.Solve(p, cfg.options()...)
	if err != nil {
		if cfg.RecordSnapshots {
			printSnapshots(w, p, cfg)
		}
		return err
	}
	logrus.Infof("solved in %v", time.Since(startTime))

	if output == "yaml" {
		return writeYAML(w, p, res)
	}

	for i, s := range res.Snapshots {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s.Tableau.Print(w)
	}
	fmt.Fprintf(w, "\n\nOptimum solution found after %d iteration(s)\n", res.Iterations)
	fmt.Fprintf(w, "P = %.2f\n", res.Value)
	for j, v := range res.Values {
		fmt.Fprintf(w, "x%d = %.2f\n", j+1, v)
	}
	return nil
}

// printSnapshots replays a failing solve so that the tableaux leading up to
// the failure are still shown.
func printSnapshots(w io.Writer, p *model.Problem, cfg SolverConfig) {
	first := true
	for s, err := range simplex.Snapshots(p, cfg.options()...) {
		if err != nil {
			fmt.Fprintf(w, "\n%v\n", err)
			return
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		s.Tableau.Print(w)
	}
}

func writeYAML(w io.Writer, p *model.Problem, res *simplex.Result) error {
	out := resultOutput{
		Objective:  p.Objective.String(),
		Value:      res.Value,
		Iterations: res.Iterations,
		PurgeSteps: res.PurgeSteps,
		Variables:  make(map[string]float64, len(res.Values)),
	}
	for j, v := range res.Values {
		out.Variables[fmt.Sprintf("x%d", j+1)] = v
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(out)
}
