package dashboard

import (
	"context"
	"time"

	"github.com/okian/recruit/internal/domain/chart"
)

// SampleSource serves the fixed demonstration data.
type SampleSource struct{}

// Snapshot returns a fresh copy of the sample data.
func (SampleSource) Snapshot(_ context.Context) (Snapshot, error) {
	return Sample(), nil
}

// Sample builds the demonstration snapshot.
func Sample() Snapshot {
	return Snapshot{
		Stats: []StatCard{
			{Title: "Total Applications", Value: "2,853", Change: "+12.5%", Trend: Up, Icon: UserIcon},
			{Title: "Open Positions", Value: "42", Change: "+7", Trend: Up, Icon: BriefcaseIcon},
			{Title: "Time to Hire", Value: "28 days", Change: "-3 days", Trend: Down, Icon: ClockIcon},
			{Title: "Offer Acceptance", Value: "87%", Change: "+2.3%", Trend: Up, Icon: CheckCircleIcon},
		},
		Applications: []chart.BarPoint{
			{Label: "Jan 1", Value: 45},
			{Label: "Jan 5", Value: 38},
			{Label: "Jan 10", Value: 52},
			{Label: "Jan 15", Value: 61},
			{Label: "Jan 20", Value: 49},
			{Label: "Jan 25", Value: 65},
			{Label: "Jan 30", Value: 87},
			{Label: "Feb 5", Value: 91},
			{Label: "Feb 10", Value: 72},
			{Label: "Feb 15", Value: 64},
			{Label: "Feb 20", Value: 55},
			{Label: "Feb 25", Value: 67},
		},
		Pipeline: []chart.PiePoint{
			{Label: "Applied", Value: 400, Color: "#3B82F6"},
			{Label: "Screening", Value: 250, Color: "#10B981"},
			{Label: "Interview", Value: 150, Color: "#F59E0B"},
			{Label: "Assessment", Value: 100, Color: "#6366F1"},
			{Label: "Offer", Value: 50, Color: "#8B5CF6"},
		},
		Recent: []Application{
			{ID: 1, Name: "John Smith", Position: "Frontend Developer", Date: day(2023, time.May, 15), Status: StatusInterview, Stage: 3},
			{ID: 2, Name: "Sarah Johnson", Position: "UX Designer", Date: day(2023, time.May, 14), Status: StatusScreening, Stage: 2},
			{ID: 3, Name: "Michael Brown", Position: "Backend Developer", Date: day(2023, time.May, 13), Status: StatusApplied, Stage: 1},
			{ID: 4, Name: "Emily Davis", Position: "Product Manager", Date: day(2023, time.May, 12), Status: StatusAssessment, Stage: 4},
			{ID: 5, Name: "Robert Wilson", Position: "DevOps Engineer", Date: day(2023, time.May, 11), Status: StatusOffer, Stage: 5},
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
