package chart

import (
	"fmt"
	"math"
	"strconv"
)

// Pie chart geometry, in logical units.
const (
	pieSize        = 200.0
	pieCenter      = 100.0
	pieRadius      = 100.0
	pieLabelRadius = 60.0
	pieHoleRadius  = 30.0
	legendTop      = 210.0
	legendRow      = 16.0
	legendSwatchR  = 5.0
	legendSwatchX  = 10.0
	legendTextX    = 20.0
	pieLabelSize   = 10.0
	pieTotalSize   = 12.0
	legendFontSize = 10.0
	holeColor      = "white"
	totalColor     = "#4B5563"
	legendColor    = "#4B5563"
)

// PiePoint is one labeled, colored value of a pie series.
type PiePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Wedge is the computed geometry of one slice. Angles are in radians,
// measured from the positive x-axis, clockwise on screen.
type Wedge struct {
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Value      float64 `json:"value"`
	Share      float64 `json:"share"`
	Percent    int     `json:"percent"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Start      Point   `json:"start"`
	End        Point   `json:"end"`
	LargeArc   bool    `json:"large_arc"`
	Full       bool    `json:"full"`
	LabelAt    Point   `json:"label_at"`
}

// Span returns the wedge's angular extent.
func (w Wedge) Span() float64 { return w.EndAngle - w.StartAngle }

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// PieChart is the result of rendering a pie series.
type PieChart struct {
	Total   float64       `json:"total"`
	Wedges  []Wedge       `json:"wedges"`
	Legend  []LegendEntry `json:"legend"`
	Drawing Drawing       `json:"drawing"`
}

// RenderPie accumulates wedges clockwise from angle 0 in input order.
func RenderPie(points []PiePoint) (PieChart, error) {
	if len(points) == 0 {
		return PieChart{}, fmt.Errorf("pie series is empty: %w", ErrInvalidInput)
	}
	total := 0.0
	nonzero := 0
	for i, p := range points {
		if !finite(p.Value) {
			return PieChart{}, fmt.Errorf("pie point %d (%q) has non-finite value: %w", i, p.Label, ErrInvalidInput)
		}
		if p.Value < 0 {
			return PieChart{}, fmt.Errorf("pie point %d (%q) is negative: %w", i, p.Label, ErrInvalidInput)
		}
		total += p.Value
		if p.Value > 0 {
			nonzero++
		}
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return PieChart{}, fmt.Errorf("pie total must be positive and finite, got %v: %w", total, ErrInvalidInput)
	}

	out := PieChart{
		Total:  total,
		Wedges: make([]Wedge, 0, len(points)),
		Legend: make([]LegendEntry, 0, len(points)),
	}
	var nodes []Node
	cumulative := 0.0
	for _, p := range points {
		share := p.Value / total
		start := 2 * math.Pi * cumulative
		cumulative += share
		end := 2 * math.Pi * cumulative
		mid := 2 * math.Pi * (cumulative - share/2)

		w := Wedge{
			Label:      p.Label,
			Color:      p.Color,
			Value:      p.Value,
			Share:      share,
			Percent:    int(roundHalfUp(share * 100)),
			StartAngle: start,
			EndAngle:   end,
			Start:      polar(pieRadius, start),
			End:        polar(pieRadius, end),
			LargeArc:   share > 0.5,
			Full:       nonzero == 1 && p.Value > 0,
			LabelAt:    polar(pieLabelRadius, mid),
		}
		out.Wedges = append(out.Wedges, w)
		out.Legend = append(out.Legend, LegendEntry{Label: p.Label, Color: p.Color})

		if share == 0 {
			continue
		}
		nodes = append(nodes, Group{Children: []Node{
			Path{Commands: wedgePath(w), Style: Style{Fill: p.Color}},
			Text{
				X: w.LabelAt.X, Y: w.LabelAt.Y,
				Content:    strconv.Itoa(w.Percent) + "%",
				Anchor:     AnchorMiddle,
				FontSize:   pieLabelSize,
				FontWeight: "bold",
				Style:      Style{Fill: "white"},
			},
		}})
	}

	nodes = append(nodes,
		Circle{CX: pieCenter, CY: pieCenter, R: pieHoleRadius, Style: Style{Fill: holeColor}},
		Text{
			X: pieCenter, Y: pieCenter,
			Content:  FormatValue(total) + " Total",
			Anchor:   AnchorMiddle,
			Baseline: "middle",
			FontSize: pieTotalSize,
			Style:    Style{Fill: totalColor},
		},
	)

	legend := make([]Node, 0, len(points))
	for i, e := range out.Legend {
		y := legendTop + legendRow*float64(i) + legendRow/2
		legend = append(legend, Group{Children: []Node{
			Circle{CX: legendSwatchX, CY: y, R: legendSwatchR, Style: Style{Fill: e.Color}},
			Text{X: legendTextX, Y: y, Content: e.Label, Baseline: "middle", FontSize: legendFontSize, Style: Style{Fill: legendColor}},
		}})
	}
	nodes = append(nodes, Group{Children: legend})

	out.Drawing = Drawing{
		Width:  pieSize,
		Height: legendTop + legendRow*float64(len(points)),
		Nodes:  nodes,
	}
	return out, nil
}

func polar(r, angle float64) Point {
	return Point{X: pieCenter + r*math.Cos(angle), Y: pieCenter + r*math.Sin(angle)}
}

// wedgePath outlines a wedge from the center. A wedge covering the whole
// circle has coinciding arc endpoints, so it is drawn as two half arcs.
func wedgePath(w Wedge) []Command {
	center := Point{X: pieCenter, Y: pieCenter}
	if w.Full {
		right := polar(pieRadius, 0)
		left := polar(pieRadius, math.Pi)
		return []Command{
			MoveTo{To: right},
			ArcTo{RX: pieRadius, RY: pieRadius, LargeArc: true, Sweep: true, To: left},
			ArcTo{RX: pieRadius, RY: pieRadius, LargeArc: true, Sweep: true, To: right},
			ClosePath{},
		}
	}
	if w.LargeArc && samePoint(w.Start, w.End) {
		// Nearly the whole circle next to a vanishing neighbour.
		opposite := polar(pieRadius, (w.StartAngle+w.EndAngle)/2)
		return []Command{
			MoveTo{To: center},
			LineTo{To: w.Start},
			ArcTo{RX: pieRadius, RY: pieRadius, LargeArc: false, Sweep: true, To: opposite},
			ArcTo{RX: pieRadius, RY: pieRadius, LargeArc: false, Sweep: true, To: w.End},
			LineTo{To: center},
		}
	}
	return []Command{
		MoveTo{To: center},
		LineTo{To: w.Start},
		ArcTo{RX: pieRadius, RY: pieRadius, LargeArc: w.LargeArc, Sweep: true, To: w.End},
		LineTo{To: center},
	}
}

func samePoint(a, b Point) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}
