package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bar chart geometry, in logical units.
const (
	barSlot       = 40.0
	barWidth      = 20.0
	barMaxHeight  = 180.0
	barChartH     = 250.0
	plotTop       = 20.0
	plotBottom    = 220.0
	plotLeft      = 20.0
	plotHeight    = plotBottom - plotTop
	barOffset     = 30.0
	barLabelY     = 235.0
	barValueGap   = 10.0
	axisLabelX    = 15.0
	barCornerR    = 2.0
	axisFontSize  = 12.0
	barFontSize   = 10.0
	axisColor     = "#D1D5DB"
	gridColor     = "#E5E7EB"
	barColor      = "#3B82F6"
	mutedText     = "#6B7280"
	strongText    = "#111827"
	gridDashArray = "2,2"

	// maxGridValue bounds |min| and |max| so every gridline label is an
	// exactly representable integer.
	maxGridValue = 1 << 53
)

// GridRatios are the relative heights of the horizontal gridlines.
var GridRatios = []float64{0, 0.25, 0.5, 0.75, 1}

// BarPoint is one labeled value of a bar series.
type BarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Bar is the computed geometry of one bar.
type Bar struct {
	Label    string  `json:"label"`
	Caption  string  `json:"caption"`
	Value    float64 `json:"value"`
	Height   float64 `json:"height"`
	X        float64 `json:"x"`
	Top      float64 `json:"top"`
	ValueTop float64 `json:"value_top"`
}

// Gridline is one horizontal reference line and its axis label.
type Gridline struct {
	Ratio float64 `json:"ratio"`
	Y     float64 `json:"y"`
	Value int64   `json:"value"`
}

// BarChart is the result of rendering a bar series.
type BarChart struct {
	Min       float64    `json:"min"`
	Max       float64    `json:"max"`
	Bars      []Bar      `json:"bars"`
	Gridlines []Gridline `json:"gridlines"`
	Drawing   Drawing    `json:"drawing"`
}

// Degenerate reports whether all values are equal, in which case every bar
// is drawn with zero height.
func (c BarChart) Degenerate() bool { return c.Max == c.Min }

// RenderBar lays out points left to right, scaling values linearly so the
// minimum sits on the x-axis and the maximum reaches barMaxHeight.
func RenderBar(points []BarPoint) (BarChart, error) {
	if len(points) == 0 {
		return BarChart{}, fmt.Errorf("bar series is empty: %w", ErrInvalidInput)
	}
	minV, maxV := points[0].Value, points[0].Value
	for i, p := range points {
		if !finite(p.Value) {
			return BarChart{}, fmt.Errorf("bar point %d (%q) has non-finite value: %w", i, p.Label, ErrInvalidInput)
		}
		minV = min(minV, p.Value)
		maxV = max(maxV, p.Value)
	}
	if math.Abs(minV) > maxGridValue || math.Abs(maxV) > maxGridValue {
		return BarChart{}, fmt.Errorf("bar range [%v, %v] exceeds ±%d: %w", minV, maxV, int64(maxGridValue), ErrInvalidInput)
	}
	span := maxV - minV
	width := float64(len(points)) * barSlot
	right := width - plotLeft

	out := BarChart{
		Min:       minV,
		Max:       maxV,
		Bars:      make([]Bar, 0, len(points)),
		Gridlines: make([]Gridline, 0, len(GridRatios)),
	}

	nodes := []Node{
		Line{X1: plotLeft, Y1: plotBottom, X2: right, Y2: plotBottom, Style: Style{Stroke: axisColor, StrokeWidth: 1}},
		Line{X1: plotLeft, Y1: plotTop, X2: plotLeft, Y2: plotBottom, Style: Style{Stroke: axisColor, StrokeWidth: 1}},
	}

	for _, ratio := range GridRatios {
		y := plotTop + (1-ratio)*plotHeight
		g := Gridline{Ratio: ratio, Y: y, Value: int64(roundHalfUp(minV + span*ratio))}
		out.Gridlines = append(out.Gridlines, g)
		nodes = append(nodes, Group{Children: []Node{
			Text{X: axisLabelX, Y: y, Content: strconv.FormatInt(g.Value, 10), Anchor: AnchorEnd, FontSize: axisFontSize, Style: Style{Fill: mutedText}},
			Line{X1: plotLeft, Y1: y, X2: right, Y2: y, Style: Style{Stroke: gridColor, StrokeWidth: 1, DashArray: gridDashArray}},
		}})
	}

	for i, p := range points {
		h := 0.0
		if span > 0 {
			h = (p.Value - minV) / span * barMaxHeight
		}
		b := Bar{
			Label:    p.Label,
			Caption:  firstWord(p.Label),
			Value:    p.Value,
			Height:   h,
			X:        float64(i)*barSlot + barOffset,
			Top:      plotBottom - h,
			ValueTop: plotBottom - barValueGap - h,
		}
		out.Bars = append(out.Bars, b)
		nodes = append(nodes, Group{Translate: Point{X: b.X}, Children: []Node{
			Rect{Y: b.Top, Width: barWidth, Height: h, RX: barCornerR, Style: Style{Fill: barColor}},
			Text{X: barWidth / 2, Y: barLabelY, Content: b.Caption, Anchor: AnchorMiddle, FontSize: barFontSize, Style: Style{Fill: mutedText}},
			Text{X: barWidth / 2, Y: b.ValueTop, Content: FormatValue(p.Value), Anchor: AnchorMiddle, FontSize: barFontSize, Style: Style{Fill: strongText}},
		}})
	}

	out.Drawing = Drawing{Width: width, Height: barChartH, Nodes: nodes}
	return out, nil
}

// FormatValue prints a value the shortest way that round-trips.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstWord(label string) string {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
