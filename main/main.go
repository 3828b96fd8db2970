package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	plt "github.com/phil-mansfield/pyplot"

	"github.com/znasipak/multispline/io"
	"github.com/znasipak/multispline/math/interpolate"
)

const (
	// plotRes is the number of plotted points per grid interval.
	plotRes = 20
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		splineStr, exampleConfig string
	)
	vars := map[string]*string{
		"Spline":        &splineStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&interpolate.NumCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&splineStr, "Spline", "", "Configuration file for [Spline] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Spline'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Spline":
		con, err := io.ReadSplineConfig(splineStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = splineMain(con); err != nil {
			log.Fatal(err.Error())
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Spline":
			fmt.Println(io.ExampleSplineFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Spline'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but multispline "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// splineMain builds the spline described by con and writes every requested
// output. The log and profile files are closed before it returns.
func splineMain(con *io.SplineConfig) error {
	fg := setupFileGroup(con)
	defer fg.Close()

	vals, err := io.ReadSamples(con.Input, con.ValueColumn)
	if err != nil {
		return err
	}
	grids, err := con.Grids()
	if err != nil {
		return err
	}
	bc, err := con.BoundaryCondition()
	if err != nil {
		return err
	}

	t0 := time.Now()
	sp, err := newGridSpline(grids, vals, bc)
	if err != nil {
		return err
	}
	log.Printf(
		"Built %dD %s spline through %d samples in %s.",
		len(grids), bc, len(vals), time.Since(t0),
	)

	if con.Check {
		res, err := sp.checkNodes(vals)
		if err != nil {
			return err
		}
		fmt.Println(res)
	}

	if con.ValidQueries() {
		if err = writeQueries(con, sp); err != nil {
			return err
		}
	}

	if con.ValidPlotFile() {
		return plotSpline(con.PlotFile, sp, vals)
	}
	return nil
}

// setupFileGroup redirects the log and starts the profiler if con asks for
// either.
func setupFileGroup(con *io.SplineConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	log.Println("Running Spline main.")

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// writeQueries evaluates every requested quantity at the query points and
// writes them to the output table.
func writeQueries(con *io.SplineConfig, sp *gridSpline) error {
	coords, err := io.ReadQueries(con.Queries, con.Dimensions)
	if err != nil {
		return err
	}
	qs, err := con.Quantities()
	if err != nil {
		return err
	}

	vals := make([][]float64, len(qs))
	for i, q := range qs {
		vals[i], err = sp.partialAll(q.Orders, coords)
		if err != nil {
			return fmt.Errorf("Could not evaluate '%s': %w", q.Name, err)
		}
	}

	if err = io.WriteEvaluations(con.Output, coords, qs, vals); err != nil {
		return err
	}
	log.Printf(
		"Wrote %d quantities at %d points to %s.",
		len(qs), len(coords[0]), con.Output,
	)
	return nil
}

// residuals summarizes how closely a spline reproduces its samples.
type residuals struct {
	max, mean, std float64
}

func (res residuals) String() string {
	return fmt.Sprintf(
		"Node residuals: max = %.4g, mean = %.4g, stddev = %.4g",
		res.max, res.mean, res.std,
	)
}

func summarize(diffs []float64) (residuals, error) {
	res := residuals{}
	var err error
	if res.max, err = stats.Max(diffs); err != nil {
		return res, err
	} else if res.mean, err = stats.Mean(diffs); err != nil {
		return res, err
	} else if res.std, err = stats.StandardDeviation(diffs); err != nil {
		return res, err
	}
	return res, nil
}

// plotSpline plots the samples of a 1D spline along with the spline and its
// first derivative.
func plotSpline(fname string, sp *gridSpline, vals []float64) error {
	g := sp.grids[0]
	n := g.Intervals()*plotRes + 1
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = g.Origin + (g.End()-g.Origin)*float64(i)/float64(n-1)
	}

	fs, err := sp.sp1.EvalAll(xs)
	if err != nil {
		return err
	}
	dfs, err := sp.sp1.DerivAll(xs)
	if err != nil {
		return err
	}

	plt.Figure()
	plt.Plot(g.Nodes(), vals, "ok")
	plt.Plot(xs, fs, plt.LW(2), plt.C("b"))
	plt.Plot(xs, dfs, plt.LW(2), plt.C("r"))
	plt.Title(fmt.Sprintf("%s spline", sp.bc))
	plt.XLabel(`$x$`, plt.FontSize(16))
	plt.YLabel(`$f(x)$, $f'(x)$`, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()

	log.Printf("Plotted spline to %s.", fname)
	return nil
}
