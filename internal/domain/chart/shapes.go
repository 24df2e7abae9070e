// Package chart computes vector drawings for the dashboard charts.
//
// Renderers in this package are pure: the same input always yields the same
// Drawing and nothing is retained between calls. Output is a list of typed
// shape records; turning it into markup is left to an output stage.
package chart

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Point is a position in the drawing's logical coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style holds presentation attributes shared by all shapes.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	DashArray   string  `json:"dash_array,omitempty"`
}

// Anchor is the horizontal text alignment.
type Anchor string

// Text anchors.
const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Node is one shape record. The set of implementations is closed.
type Node interface {
	shape() string
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style          Style
}

// Rect is an axis-aligned rectangle with optional rounded corners.
type Rect struct {
	X, Y, Width, Height float64
	RX                  float64
	Style               Style
}

// Circle is a disc.
type Circle struct {
	CX, CY, R float64
	Style     Style
}

// Text is a single run of text.
type Text struct {
	X, Y       float64
	Content    string
	Anchor     Anchor
	Baseline   string
	FontSize   float64
	FontWeight string
	Style      Style
}

// Group collects children under an optional translation.
type Group struct {
	Translate Point
	Children  []Node
}

// Path is an outline described by path commands.
type Path struct {
	Commands []Command
	Style    Style
}

func (Line) shape() string   { return "line" }
func (Rect) shape() string   { return "rect" }
func (Circle) shape() string { return "circle" }
func (Text) shape() string   { return "text" }
func (Group) shape() string  { return "group" }
func (Path) shape() string   { return "path" }

// Command is one path command. The set of implementations is closed.
type Command interface {
	verb() byte
}

// MoveTo starts a new sub-path.
type MoveTo struct{ To Point }

// LineTo draws a straight segment.
type LineTo struct{ To Point }

// ArcTo draws an elliptical arc.
type ArcTo struct {
	RX, RY   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	To       Point
}

// ClosePath closes the current sub-path.
type ClosePath struct{}

func (MoveTo) verb() byte    { return 'M' }
func (LineTo) verb() byte    { return 'L' }
func (ArcTo) verb() byte     { return 'A' }
func (ClosePath) verb() byte { return 'Z' }

// Drawing is a complete vector drawing with its viewport size.
type Drawing struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Nodes  []Node  `json:"nodes"`
}

// D returns the path data string, e.g. "M 100 100 L 200 100 Z".
func (p Path) D() string {
	parts := make([]string, 0, len(p.Commands))
	for _, c := range p.Commands {
		switch c := c.(type) {
		case MoveTo:
			parts = append(parts, "M "+Num(c.To.X)+" "+Num(c.To.Y))
		case LineTo:
			parts = append(parts, "L "+Num(c.To.X)+" "+Num(c.To.Y))
		case ArcTo:
			parts = append(parts, strings.Join([]string{
				"A", Num(c.RX), Num(c.RY), Num(c.Rotation),
				flag(c.LargeArc), flag(c.Sweep), Num(c.To.X), Num(c.To.Y),
			}, " "))
		case ClosePath:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Num formats a coordinate with at most four decimals and no negative zero.
func Num(v float64) string {
	r := roundTo(v, 4)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// JSON encodings carry a "type" discriminator so clients can dispatch on it.

func (l Line) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"type"`
		X1   float64 `json:"x1"`
		Y1   float64 `json:"y1"`
		X2   float64 `json:"x2"`
		Y2   float64 `json:"y2"`
		Style
	}{l.shape(), l.X1, l.Y1, l.X2, l.Y2, l.Style})
}

func (r Rect) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string  `json:"type"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		RX     float64 `json:"rx,omitempty"`
		Style
	}{r.shape(), r.X, r.Y, r.Width, r.Height, r.RX, r.Style})
}

func (c Circle) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string  `json:"type"`
		CX   float64 `json:"cx"`
		CY   float64 `json:"cy"`
		R    float64 `json:"r"`
		Style
	}{c.shape(), c.CX, c.CY, c.R, c.Style})
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string  `json:"type"`
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Content    string  `json:"content"`
		Anchor     Anchor  `json:"anchor,omitempty"`
		Baseline   string  `json:"baseline,omitempty"`
		FontSize   float64 `json:"font_size,omitempty"`
		FontWeight string  `json:"font_weight,omitempty"`
		Style
	}{t.shape(), t.X, t.Y, t.Content, t.Anchor, t.Baseline, t.FontSize, t.FontWeight, t.Style})
}

func (g Group) MarshalJSON() ([]byte, error) {
	children := g.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Type      string `json:"type"`
		Translate Point  `json:"translate"`
		Children  []Node `json:"children"`
	}{g.shape(), g.Translate, children})
}

func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		D    string `json:"d"`
		Style
	}{p.shape(), p.D(), p.Style})
}
