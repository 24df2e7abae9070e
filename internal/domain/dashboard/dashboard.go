package dashboard

import (
	"context"
	"time"

	"github.com/okian/recruit/internal/domain/chart"
)

// Trend is the direction of a stat card's change.
type Trend int

// Trends.
const (
	Up Trend = iota
	Down
)

// Verb is the screen-reader prefix for the change value.
func (t Trend) Verb() string {
	if t == Down {
		return "Decreased by"
	}
	return "Increased by"
}

// Icon identifies a stat card glyph.
type Icon int

// Stat card icons.
const (
	UserIcon Icon = iota
	BriefcaseIcon
	ClockIcon
	CheckCircleIcon
)

// StatCard is one headline number.
type StatCard struct {
	Title  string
	Value  string
	Change string
	Trend  Trend
	Icon   Icon
}

// Status is the pipeline stage name shown as a badge.
type Status string

// Application statuses.
const (
	StatusApplied    Status = "Applied"
	StatusScreening  Status = "Screening"
	StatusInterview  Status = "Interview"
	StatusAssessment Status = "Assessment"
	StatusOffer      Status = "Offer"
)

// Badge returns the badge color name for the status; unknown statuses are gray.
func (s Status) Badge() string {
	switch s {
	case StatusApplied:
		return "blue"
	case StatusScreening:
		return "green"
	case StatusInterview:
		return "amber"
	case StatusAssessment:
		return "indigo"
	case StatusOffer:
		return "purple"
	}
	return "gray"
}

// StageCount is the number of hiring stages.
const StageCount = 5

// Application is one row of the recent applications table.
type Application struct {
	ID       int
	Name     string
	Position string
	Date     time.Time
	Status   Status
	Stage    int
}

// Initial returns the first letter of the candidate's name.
func (a Application) Initial() string {
	for _, r := range a.Name {
		return string(r)
	}
	return ""
}

// Progress returns the completed share of stages, clamped to [0, 1].
func (a Application) Progress() float64 {
	p := float64(a.Stage) / StageCount
	return min(max(p, 0), 1)
}

// Snapshot is everything the dashboard displays.
type Snapshot struct {
	Stats        []StatCard
	Applications []chart.BarPoint
	Pipeline     []chart.PiePoint
	Recent       []Application
}

// Source supplies dashboard snapshots.
type Source interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// View is a snapshot prepared for one tab. Charts are only set for Overview.
type View struct {
	Tab          Tab
	Snapshot     Snapshot
	Applications *chart.BarChart
	Pipeline     *chart.PieChart
}
