package figure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/svgstack/pkg/errors"
)

// Graph renders Graphviz DOT source.
type Graph struct {
	dot    string
	size   string
	title  string
	closed bool
}

var _ Figure = (*Graph)(nil)

// NewGraph wraps DOT source. It is parsed lazily on WriteSVG.
func NewGraph(dot string) *Graph {
	return &Graph{dot: dot}
}

// SetSize implements [Figure]; the graph is scaled to fill exactly width x height inches.
func (g *Graph) SetSize(width, height float64) {
	g.size = strconv.FormatFloat(width, 'f', -1, 64) + "," + strconv.FormatFloat(height, 'f', -1, 64) + "!"
}

// SetTitle implements [Figure]; the title becomes the graph label.
func (g *Graph) SetTitle(title string) {
	g.title = title
}

// WriteSVG implements [Figure].
func (g *Graph) WriteSVG(w io.Writer) error {
	if g.closed {
		return errors.New(errors.ErrCodeInvalidArgument, "graph is closed")
	}

	dot, err := g.source()
	if err != nil {
		return err
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "render")
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// Close implements [Figure].
func (g *Graph) Close() error {
	g.closed = true
	return nil
}

// source injects size and label graph attributes after the opening brace.
func (g *Graph) source() (string, error) {
	i := strings.IndexByte(g.dot, '{')
	if i < 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "DOT source has no graph body")
	}
	var attrs strings.Builder
	if g.size != "" {
		fmt.Fprintf(&attrs, "\n  size=%q;", g.size)
	}
	if g.title != "" {
		fmt.Fprintf(&attrs, "\n  label=%q;\n  labelloc=t;", g.title)
	}
	return g.dot[:i+1] + attrs.String() + g.dot[i+1:], nil
}
