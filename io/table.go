package io

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/phil-mansfield/table"
)

// ReadSamples reads the column col of the text table fname.
func ReadSamples(fname string, col int) ([]float64, error) {
	cols, err := table.ReadTable(fname, []int{col}, nil)
	if err != nil {
		return nil, err
	}
	return cols[0], nil
}

// ReadQueries reads query points from the first dim columns of the text table
// fname. The returned slice holds one coordinate array per axis.
func ReadQueries(fname string, dim int) ([][]float64, error) {
	colIdxs := make([]int, dim)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(cols); i++ {
		if len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf(
				"Column %d of %s has %d rows, but column 0 has %d.",
				i, fname, len(cols[i]), len(cols[0]),
			)
		}
	}
	return cols, nil
}

// WriteEvaluations writes a text table to fname with a row for every query
// point. Each row holds the coordinates of the point followed by the value of
// each quantity at that point. The first line is a comment naming the
// columns.
func WriteEvaluations(
	fname string, coords [][]float64, qs []Quantity, vals [][]float64,
) error {
	if len(qs) != len(vals) {
		return fmt.Errorf(
			"%d quantities given, but %d value arrays.", len(qs), len(vals),
		)
	}
	if len(coords) > len(axisNames) {
		return fmt.Errorf("%d coordinate arrays given.", len(coords))
	}
	n := 0
	if len(coords) > 0 {
		n = len(coords[0])
	}
	for i := range coords {
		if len(coords[i]) != n {
			return fmt.Errorf("Coordinate arrays have different lengths.")
		}
	}
	for i := range vals {
		if len(vals[i]) != n {
			return fmt.Errorf(
				"Quantity '%s' has %d values, but there are %d points.",
				qs[i].Name, len(vals[i]), n,
			)
		}
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)

	names := make([]string, 0, len(coords)+len(qs))
	names = append(names, axisNames[:len(coords)]...)
	for _, q := range qs {
		names = append(names, q.Name)
	}
	fmt.Fprintf(w, "# %s\n", strings.Join(names, " "))

	row := make([]string, len(names))
	for i := 0; i < n; i++ {
		for j := range coords {
			row[j] = fmt.Sprintf("%.17g", coords[j][i])
		}
		for j := range vals {
			row[len(coords)+j] = fmt.Sprintf("%.17g", vals[j][i])
		}
		fmt.Fprintln(w, strings.Join(row, " "))
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
