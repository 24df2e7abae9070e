// Package dashboard holds the recruitment dashboard's view model: tabs,
// stat cards, recent applications and the sample snapshot.
package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for dashboard errors.
var (
	ErrUnknownTab = errors.New("unknown tab")
)

// Tab selects which panel of the dashboard is shown.
type Tab int

// Dashboard tabs, in navigation order.
const (
	Overview Tab = iota
	Candidates
	Jobs
	Analytics
)

// Tabs lists every tab in navigation order.
func Tabs() []Tab { return []Tab{Overview, Candidates, Jobs, Analytics} }

// Slug is the URL form of the tab.
func (t Tab) Slug() string {
	switch t {
	case Overview:
		return "overview"
	case Candidates:
		return "candidates"
	case Jobs:
		return "jobs"
	case Analytics:
		return "analytics"
	}
	return ""
}

// Title is the navigation label of the tab.
func (t Tab) Title() string {
	switch t {
	case Overview:
		return "Overview"
	case Candidates:
		return "Candidates"
	case Jobs:
		return "Jobs"
	case Analytics:
		return "Analytics"
	}
	return ""
}

func (t Tab) String() string { return t.Slug() }

// ParseTab maps a slug to a tab. An empty slug selects Overview.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overview":
		return Overview, nil
	case "candidates":
		return Candidates, nil
	case "jobs":
		return Jobs, nil
	case "analytics":
		return Analytics, nil
	}
	return Overview, fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// Placeholder is the content of a tab that has no widgets yet.
type Placeholder struct {
	Title       string
	Description string
	Message     string
}

// PlaceholderFor returns the placeholder panel for tabs other than Overview.
func PlaceholderFor(t Tab) (Placeholder, bool) {
	switch t {
	case Candidates:
		return Placeholder{"Candidates", "Manage your candidate pipeline", "Candidates content will appear here"}, true
	case Jobs:
		return Placeholder{"Jobs", "Manage your job listings", "Jobs content will appear here"}, true
	case Analytics:
		return Placeholder{"Analytics", "Track your recruitment metrics", "Analytics content will appear here"}, true
	case Overview:
	}
	return Placeholder{}, false
}
