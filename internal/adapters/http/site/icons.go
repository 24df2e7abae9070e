package site

import (
	"github.com/okian/recruit/internal/domain/dashboard"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Outline glyphs on a 24x24 grid.
const (
	userPath        = "M16 7a4 4 0 11-8 0 4 4 0 018 0zM12 14a7 7 0 00-7 7h14a7 7 0 00-7-7z"
	briefcasePath   = "M21 13.255A23.931 23.931 0 0112 15c-3.183 0-6.22-.62-9-1.745M16 6V4a2 2 0 00-2-2h-4a2 2 0 00-2 2v2m4 6h.01M5 20h14a2 2 0 002-2V8a2 2 0 00-2-2H5a2 2 0 00-2 2v10a2 2 0 002 2z"
	clockPath       = "M12 8v4l3 3m6-3a9 9 0 11-18 0 9 9 0 0118 0z"
	checkCirclePath = "M9 12l2 2 4-4m6 2a9 9 0 11-18 0 9 9 0 0118 0z"
)

// Solid arrows on a 20x20 grid.
const (
	arrowUpPath   = "M5.293 9.707a1 1 0 010-1.414l4-4a1 1 0 011.414 0l4 4a1 1 0 01-1.414 1.414L11 7.414V15a1 1 0 11-2 0V7.414L6.707 9.707a1 1 0 01-1.414 0z"
	arrowDownPath = "M14.707 10.293a1 1 0 010 1.414l-4 4a1 1 0 01-1.414 0l-4-4a1 1 0 111.414-1.414L9 12.586V5a1 1 0 012 0v7.586l2.293-2.293a1 1 0 011.414 0z"
)

func iconGlyph(i dashboard.Icon) (path, color string) {
	switch i {
	case dashboard.UserIcon:
		return userPath, "icon-blue"
	case dashboard.BriefcaseIcon:
		return briefcasePath, "icon-green"
	case dashboard.ClockIcon:
		return clockPath, "icon-amber"
	case dashboard.CheckCircleIcon:
		return checkCirclePath, "icon-purple"
	}
	return userPath, "icon-blue"
}

func icon(i dashboard.Icon) g.Node {
	path, color := iconGlyph(i)
	return g.El("svg",
		h.Class(color),
		g.Attr("fill", "none"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("stroke", "currentColor"),
		h.Aria("hidden", "true"),
		g.El("path",
			g.Attr("stroke-linecap", "round"),
			g.Attr("stroke-linejoin", "round"),
			g.Attr("stroke-width", "2"),
			g.Attr("d", path),
		),
	)
}

func trendArrow(t dashboard.Trend) g.Node {
	path := arrowUpPath
	if t == dashboard.Down {
		path = arrowDownPath
	}
	return g.El("svg",
		g.Attr("fill", "currentColor"),
		g.Attr("viewBox", "0 0 20 20"),
		h.Aria("hidden", "true"),
		g.El("path",
			g.Attr("fill-rule", "evenodd"),
			g.Attr("clip-rule", "evenodd"),
			g.Attr("d", path),
		),
	)
}
