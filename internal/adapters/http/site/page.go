package site

import (
	"strconv"

	"github.com/okian/recruit/internal/adapters/render/svg"
	"github.com/okian/recruit/internal/domain/chart"
	"github.com/okian/recruit/internal/domain/dashboard"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// Page is the full document: shell, layout and the dashboard component.
func Page(title, description, stylesheet string, v dashboard.View) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:       title,
		Description: description,
		Language:    "en",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href(stylesheet)),
		},
		Body: []g.Node{
			h.Div(h.Class("layout"),
				h.Main(
					h.Div(h.Class("container"), Fragment(title, description, v)),
				),
			),
		},
	})
}

// Fragment is the dashboard component alone, for embedding in a host page.
func Fragment(title, description string, v dashboard.View) g.Node {
	return h.Div(h.Class("recruitment-home"),
		h.Div(h.Class("header"),
			h.H1(h.Span(g.Text(title))),
			h.P(g.Text(description)),
		),
		tabNav(v.Tab),
		panel(v),
	)
}

func tabNav(active dashboard.Tab) g.Node {
	links := make([]g.Node, 0, len(dashboard.Tabs()))
	for _, t := range dashboard.Tabs() {
		links = append(links, h.A(
			c.Classes{"tab": true, "tab-active": t == active},
			h.Href("?tab="+t.Slug()),
			g.If(t == active, h.Aria("current", "page")),
			g.Text(t.Title()),
		))
	}
	return h.Nav(h.Class("tabs"), h.Aria("label", "Dashboard sections"), g.Group(links))
}

func panel(v dashboard.View) g.Node {
	switch v.Tab {
	case dashboard.Overview:
		return overview(v)
	case dashboard.Candidates, dashboard.Jobs, dashboard.Analytics:
		p, _ := dashboard.PlaceholderFor(v.Tab)
		return placeholder(p)
	}
	return nil
}

func overview(v dashboard.View) g.Node {
	cards := make([]g.Node, 0, len(v.Snapshot.Stats))
	for _, s := range v.Snapshot.Stats {
		cards = append(cards, statCard(s))
	}
	return h.Div(h.Class("overview"),
		h.Dl(h.Class("stats"), g.Group(cards)),
		h.Div(h.Class("charts"),
			g.Iff(v.Applications != nil, func() g.Node {
				return card("Application Overview", "Application trends over the last 30 days",
					svg.Node(v.Applications.Drawing, h.Class("chart"), h.Role("img"), h.Aria("label", "Applications per day")),
				)
			}),
			g.Iff(v.Pipeline != nil, func() g.Node {
				return card("Candidate Pipeline", "Current candidates by stage",
					svg.Node(v.Pipeline.Drawing, h.Class("chart"), h.Role("img"), h.Aria("label", "Candidates by stage")),
					breakdown(v.Pipeline.Wedges),
				)
			}),
		),
		card("Recent Applications", "Latest candidates who applied to your open positions",
			applicationsTable(v.Snapshot.Recent),
		),
	)
}

func card(title, subtitle string, body ...g.Node) g.Node {
	return h.Section(h.Class("card"),
		h.H3(h.Class("card-title"), g.Text(title)),
		h.P(h.Class("card-subtitle"), g.Text(subtitle)),
		g.Group(body),
	)
}

func statCard(s dashboard.StatCard) g.Node {
	trend := "trend-up"
	if s.Trend == dashboard.Down {
		trend = "trend-down"
	}
	return h.Div(h.Class("card stat"),
		h.Div(h.Class("stat-icon"), icon(s.Icon)),
		h.Div(h.Class("stat-body"),
			h.Dt(g.Text(s.Title)),
			h.Dd(
				h.Div(h.Class("stat-value"), g.Text(s.Value)),
				h.Div(h.Class("stat-change "+trend),
					trendArrow(s.Trend),
					h.Span(h.Class("sr-only"), g.Text(s.Trend.Verb())),
					g.Text(s.Change),
				),
			),
		),
	)
}

func breakdown(wedges []chart.Wedge) g.Node {
	items := make([]g.Node, 0, len(wedges))
	for _, w := range wedges {
		items = append(items, h.Li(
			h.Span(h.Class("swatch"), h.Style("background-color: "+w.Color)),
			g.Textf("%s · %s · %d%%", w.Label, chart.FormatValue(w.Value), w.Percent),
		))
	}
	return h.Ul(h.Class("breakdown"), g.Group(items))
}

func applicationsTable(apps []dashboard.Application) g.Node {
	rows := make([]g.Node, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, h.Tr(
			h.Td(h.Div(h.Class("candidate"),
				h.Span(h.Class("avatar"), g.Text(a.Initial())),
				g.Text(a.Name),
			)),
			h.Td(g.Text(a.Position)),
			h.Td(h.Class("muted"), g.Text(a.Date.Format("1/2/2006"))),
			h.Td(h.Span(h.Class("badge badge-"+a.Status.Badge()), g.Text(string(a.Status)))),
			h.Td(h.Div(h.Class("stage"),
				h.Div(h.Class("progress"),
					h.Div(h.Class("progress-bar"), h.Style("width: "+chart.Num(a.Progress()*100)+"%")),
				),
				h.Span(g.Text(strconv.Itoa(a.Stage)+"/"+strconv.Itoa(dashboard.StageCount))),
			)),
		))
	}
	head := make([]g.Node, 0, 5)
	for _, col := range []string{"Candidate", "Position", "Applied Date", "Status", "Stage"} {
		head = append(head, h.Th(g.Attr("scope", "col"), g.Text(col)))
	}
	return h.Div(h.Class("table-wrap"),
		h.Table(h.Class("table"),
			h.THead(h.Tr(g.Group(head))),
			h.TBody(g.Group(rows)),
		),
	)
}

func placeholder(p dashboard.Placeholder) g.Node {
	return h.Section(h.Class("card placeholder"),
		h.H2(g.Text(p.Title)),
		h.P(g.Text(p.Description)),
		h.Div(h.Class("placeholder-box"), h.P(g.Text(p.Message))),
	)
}
