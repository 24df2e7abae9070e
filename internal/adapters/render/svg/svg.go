// Package svg turns chart drawings into SVG markup.
package svg

import (
	"errors"
	"fmt"
	"io"

	"github.com/okian/recruit/internal/domain/chart"
	g "maragu.dev/gomponents"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// ContentType is the media type of standalone SVG documents.
const ContentType = "image/svg+xml"

// Error constants.
var (
	ErrRender = errors.New("svg render failed")
)

// Node converts a drawing into an <svg> element sized by its viewBox.
// Extra attributes (class, role, ...) are appended to the root element.
func Node(d chart.Drawing, attrs ...g.Node) g.Node {
	children := []g.Node{
		g.Attr("viewBox", "0 0 "+chart.Num(d.Width)+" "+chart.Num(d.Height)),
	}
	children = append(children, attrs...)
	children = append(children, nodes(d.Nodes)...)
	return g.El("svg", children...)
}

// Render writes a standalone SVG document.
func Render(w io.Writer, d chart.Drawing) error {
	if err := Node(d, g.Attr("xmlns", Namespace)).Render(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func nodes(in []chart.Node) []g.Node {
	out := make([]g.Node, 0, len(in))
	for _, n := range in {
		out = append(out, node(n))
	}
	return out
}

func node(n chart.Node) g.Node {
	switch n := n.(type) {
	case chart.Line:
		return g.El("line",
			num("x1", n.X1), num("y1", n.Y1), num("x2", n.X2), num("y2", n.Y2),
			style(n.Style),
		)
	case chart.Rect:
		return g.El("rect",
			optNum("x", n.X), optNum("y", n.Y), num("width", n.Width), num("height", n.Height),
			optNum("rx", n.RX),
			style(n.Style),
		)
	case chart.Circle:
		return g.El("circle", num("cx", n.CX), num("cy", n.CY), num("r", n.R), style(n.Style))
	case chart.Text:
		return g.El("text",
			num("x", n.X), num("y", n.Y),
			g.If(n.Anchor != "", g.Attr("text-anchor", string(n.Anchor))),
			g.If(n.Baseline != "", g.Attr("dominant-baseline", n.Baseline)),
			optNum("font-size", n.FontSize),
			g.If(n.FontWeight != "", g.Attr("font-weight", n.FontWeight)),
			style(n.Style),
			g.Text(n.Content),
		)
	case chart.Path:
		return g.El("path", g.Attr("d", n.D()), style(n.Style))
	case chart.Group:
		return g.El("g",
			g.If(n.Translate != (chart.Point{}),
				g.Attr("transform", "translate("+chart.Num(n.Translate.X)+", "+chart.Num(n.Translate.Y)+")")),
			g.Group(nodes(n.Children)),
		)
	default:
		panic(fmt.Sprintf("svg: unhandled shape %T", n))
	}
}

func style(s chart.Style) g.Node {
	return g.Group{
		g.If(s.Fill != "", g.Attr("fill", s.Fill)),
		g.If(s.Stroke != "", g.Attr("stroke", s.Stroke)),
		optNum("stroke-width", s.StrokeWidth),
		g.If(s.DashArray != "", g.Attr("stroke-dasharray", s.DashArray)),
	}
}

func num(name string, v float64) g.Node {
	return g.Attr(name, chart.Num(v))
}

// optNum omits zero-valued attributes, which SVG treats as the default.
func optNum(name string, v float64) g.Node {
	if v == 0 {
		return nil
	}
	return num(name, v)
}
