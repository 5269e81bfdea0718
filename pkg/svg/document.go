package svg

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/svgstack/pkg/errors"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
)

// Drawable is anything that can be appended to a [Document] body.
type Drawable interface {
	element() *etree.Element
}

// Document is an in-memory SVG document.
// It is a transient value: nothing ties it to the text it was parsed from.
type Document struct {
	doc  *etree.Document
	root *etree.Element
}

// Parse reads SVG text into a Document.
// Malformed XML or a root element other than <svg> yields an INVALID_SVG error.
func Parse(text string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSVG, err, "parse svg")
	}
	root := doc.Root()
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidSVG, "document has no root element")
	}
	if root.Tag != "svg" {
		return nil, errors.New(errors.ErrCodeInvalidSVG, "root element is <%s>, want <svg>", root.FullTag())
	}
	return &Document{doc: doc, root: root}, nil
}

// NewDocument returns an empty SVG document ready to receive drawables.
func NewDocument() *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)
	root.CreateAttr("xmlns:xlink", xlinkNamespace)
	root.CreateAttr("version", "1.1")
	return &Document{doc: doc, root: root}
}

// Width returns the raw width attribute, unit suffix included.
func (d *Document) Width() string { return d.Get("width") }

// Height returns the raw height attribute, unit suffix included.
func (d *Document) Height() string { return d.Get("height") }

// Get returns a root attribute or "" when it is absent.
func (d *Document) Get(attr string) string {
	return d.root.SelectAttrValue(attr, "")
}

// Set creates or replaces a root attribute.
func (d *Document) Set(attr, value string) {
	d.root.CreateAttr(attr, value)
}

// Size reads width and height with the given policy.
func (d *Document) Size(p Policy, unit string) (w, h float64, err error) {
	if w, err = ParseDimension(d.Width(), p, unit); err != nil {
		return 0, 0, err
	}
	if h, err = ParseDimension(d.Height(), p, unit); err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// Root wraps deep copies of the document's children in a new group.
// The group re-declares the root's prefixed namespaces so the copied
// content stays bound once it is placed in another document.
// The returned element can be moved and scaled without touching d.
func (d *Document) Root() *Element {
	g := etree.NewElement("g")
	for _, a := range d.root.Attr {
		if a.Space != "xmlns" || (a.Key == "xlink" && a.Value == xlinkNamespace) {
			continue
		}
		g.CreateAttr("xmlns:"+a.Key, a.Value)
	}
	if class := d.root.SelectAttr("class"); class != nil {
		g.CreateAttr("class", class.Value)
	}
	cp := d.root.Copy()
	children := append([]etree.Token(nil), cp.Child...)
	for _, t := range children {
		g.AddChild(t)
	}
	return &Element{el: g}
}

// Append adds a drawable to the end of the document body.
// Later drawables are painted on top of earlier ones.
func (d *Document) Append(dr Drawable) {
	d.root.AddChild(dr.element())
}

// Bytes serializes the document with an XML declaration and indentation.
func (d *Document) Bytes() ([]byte, error) {
	d.doc.Indent(2)
	b, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize svg")
	}
	return b, nil
}

// String serializes the document as text.
func (d *Document) String() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Element is a positionable group of drawing content.
type Element struct {
	el *etree.Element
}

func (e *Element) element() *etree.Element { return e.el }

// Transform returns the element's current transform attribute.
func (e *Element) Transform() string {
	return e.el.SelectAttrValue("transform", "")
}

// MoveTo translates the element within its parent's coordinate space.
func (e *Element) MoveTo(x, y float64) {
	t := "translate(" + formatNumber(x) + ", " + formatNumber(y) + ")"
	if prev := e.Transform(); prev != "" {
		t += " " + prev
	}
	e.el.CreateAttr("transform", t)
}

// Scale applies a scale after any existing transform.
func (e *Element) Scale(sx, sy float64) {
	t := "scale(" + formatNumber(sx) + " " + formatNumber(sy) + ")"
	if prev := e.Transform(); prev != "" {
		t = prev + " " + t
	}
	e.el.CreateAttr("transform", t)
}

// Point is a coordinate in user units.
type Point struct{ X, Y float64 }

// Line is a straight black stroke between two points.
type Line struct {
	el *etree.Element
}

// NewLine builds a one-unit wide black line from a to b.
func NewLine(a, b Point) *Line {
	el := etree.NewElement("line")
	el.CreateAttr("x1", formatNumber(a.X))
	el.CreateAttr("y1", formatNumber(a.Y))
	el.CreateAttr("x2", formatNumber(b.X))
	el.CreateAttr("y2", formatNumber(b.Y))
	el.CreateAttr("stroke", "black")
	el.CreateAttr("stroke-width", "1")
	return &Line{el: el}
}

func (l *Line) element() *etree.Element { return l.el }

// viewBox formats a viewBox anchored at the origin.
func viewBox(w, h float64) string {
	return strings.Join([]string{"0", "0", formatNumber(w), formatNumber(h)}, " ")
}
