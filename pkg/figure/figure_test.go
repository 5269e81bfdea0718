package figure

import (
	"strings"
	"testing"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/matzehuels/svgstack/pkg/errors"
	"github.com/matzehuels/svgstack/pkg/svg"
)

func TestStatic(t *testing.T) {
	const text = `<svg xmlns="http://www.w3.org/2000/svg" width="1pt" height="1pt"/>`
	f := Static(text)
	f.SetSize(10, 10)
	f.SetTitle("ignored")

	got, err := SVG(f)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if got != text {
		t.Errorf("SVG() = %q, want %q", got, text)
	}
}

func newLinePlot(t *testing.T) *plot.Plot {
	t.Helper()
	p := plot.New()
	line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 1}})
	if err != nil {
		t.Fatalf("NewLine() error: %v", err)
	}
	p.Add(line)
	return p
}

func TestPlotSize(t *testing.T) {
	f := NewPlot(newLinePlot(t))
	f.SetSize(2, 1)
	f.SetTitle("light curve")

	text, err := SVG(f)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	doc, err := svg.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	w, h, err := doc.Size(svg.StripSuffix, "pt")
	if err != nil {
		t.Fatalf("Size() error: %v", err)
	}
	if w != 144 || h != 72 {
		t.Errorf("size = %vx%v pt, want 144x72", w, h)
	}
	if !strings.Contains(text, "light curve") {
		t.Error("title should be drawn into the figure")
	}
}

func TestPlotClosed(t *testing.T) {
	f := NewPlot(newLinePlot(t))
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	f.SetTitle("after close")
	f.SetSize(2, 1)
	if _, err := SVG(f); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("SVG() after Close error = %v, want %v", err, errors.ErrCodeInvalidArgument)
	}
}

func TestGraphSource(t *testing.T) {
	g := NewGraph("digraph G {\n  a -> b;\n}\n")
	g.SetSize(3, 2)
	g.SetTitle("deps")

	src, err := g.source()
	if err != nil {
		t.Fatalf("source() error: %v", err)
	}
	for _, want := range []string{`size="3,2!";`, `label="deps";`, "a -> b;"} {
		if !strings.Contains(src, want) {
			t.Errorf("source() missing %q:\n%s", want, src)
		}
	}
	if strings.Index(src, "size=") < strings.Index(src, "{") {
		t.Error("attributes must be inside the graph body")
	}
}

func TestGraphInvalidSource(t *testing.T) {
	_, err := SVG(NewGraph("not a graph"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SVG() error = %v, want %v", err, errors.ErrCodeInvalidInput)
	}
}

func TestGraphRender(t *testing.T) {
	g := NewGraph("digraph G { a -> b; }")
	defer g.Close()

	text, err := SVG(g)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if _, err := svg.Parse(text); err != nil {
		t.Fatalf("graphviz output should parse: %v", err)
	}
}

func TestReadTable(t *testing.T) {
	const data = "mjd,mag\n59000,18.2\n59001,18.4\n59002,18.1\n"
	f, err := ReadTable(strings.NewReader(data), ',')
	if err != nil {
		t.Fatalf("ReadTable() error: %v", err)
	}
	if f.P.X.Label.Text != "mjd" || f.P.Y.Label.Text != "mag" {
		t.Errorf("labels = %q, %q", f.P.X.Label.Text, f.P.Y.Label.Text)
	}
	text, err := SVG(f)
	if err != nil {
		t.Fatalf("SVG() error: %v", err)
	}
	if !strings.Contains(text, "<svg") {
		t.Error("table plot should render to svg")
	}
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "x,y\n"},
		{"one column", "1\n2\n"},
		{"bad cell", "1,2\n3,x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTable(strings.NewReader(tt.data), ','); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ReadTable() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}
}
