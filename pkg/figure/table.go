package figure

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// ReadTable builds a line plot from delimited text. The first column is x
// and every further column becomes one series. A first row that does not
// parse as numbers is taken as a header and names the axes and series.
func ReadTable(r io.Reader, comma rune) (*Plot, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read table")
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table is empty")
	}

	var header []string
	if _, err := parseRow(rows[0]); err != nil {
		header, rows = rows[0], rows[1:]
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table has no data rows")
	}
	cols := len(rows[0])
	if cols < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table needs at least two columns, got %d", cols)
	}

	series := make([]plotter.XYs, cols-1)
	for i, row := range rows {
		vals, err := parseRow(row)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "table row %d", i+1)
		}
		for s := range series {
			series[s] = append(series[s], plotter.XY{X: vals[0], Y: vals[s+1]})
		}
	}

	p := plot.New()
	var lines []any
	for s, xys := range series {
		name := "y" + strconv.Itoa(s+1)
		if header != nil {
			name = header[s+1]
		}
		lines = append(lines, name, xys)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "build plot")
	}
	if header != nil {
		p.X.Label.Text = header[0]
		if cols == 2 {
			p.Y.Label.Text = header[1]
		}
	}
	return NewPlot(p), nil
}

func parseRow(row []string) ([]float64, error) {
	vals := make([]float64, len(row))
	for i, cell := range row {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
