package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	service "github.com/okian/recruit/internal/app"
	"github.com/okian/recruit/internal/domain/chart"
	"github.com/okian/recruit/internal/domain/dashboard"
	"github.com/okian/recruit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeRecorder struct {
	mu       sync.Mutex
	rendered map[string]int
	errs     map[string]int
	views    map[string]int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{rendered: map[string]int{}, errs: map[string]int{}, views: map[string]int{}}
}

func (r *fakeRecorder) RecordChartRendered(kind string, _ int, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered[kind]++
}

func (r *fakeRecorder) RecordChartError(kind, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[kind+"/"+reason]++
}

func (r *fakeRecorder) RecordPageView(tab, surface string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[tab+"/"+surface]++
}

type failingSource struct{}

func (failingSource) Snapshot(context.Context) (dashboard.Snapshot, error) {
	return dashboard.Snapshot{}, errors.New("offline")
}

type flatSource struct{}

func (flatSource) Snapshot(context.Context) (dashboard.Snapshot, error) {
	s := dashboard.Sample()
	s.Pipeline = []chart.PiePoint{{Label: "none", Value: 0}}
	return s, nil
}

func TestService(t *testing.T) {
	_ = logger.Init()

	Convey("Given a started service with the sample source", t, func() {
		ctx := context.Background()
		rec := newFakeRecorder()
		svc := service.New(service.WithRecorder(rec), service.WithMaxPoints(20))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the overview is requested", func() {
			v, err := svc.View(ctx, dashboard.Overview, "page")

			Convey("Then both charts are rendered", func() {
				So(err, ShouldBeNil)
				So(v.Tab, ShouldEqual, dashboard.Overview)
				So(v.Applications, ShouldNotBeNil)
				So(v.Pipeline, ShouldNotBeNil)
				So(v.Applications.Max, ShouldEqual, 91)
				So(v.Pipeline.Total, ShouldEqual, 950)
				So(rec.rendered["bar"], ShouldEqual, 1)
				So(rec.rendered["pie"], ShouldEqual, 1)
				So(rec.views["overview/page"], ShouldEqual, 1)
			})
		})

		Convey("When a placeholder tab is requested", func() {
			v, err := svc.View(ctx, dashboard.Analytics, "fragment")

			Convey("Then no charts are rendered", func() {
				So(err, ShouldBeNil)
				So(v.Applications, ShouldBeNil)
				So(v.Pipeline, ShouldBeNil)
				So(len(rec.rendered), ShouldEqual, 0)
				So(rec.views["analytics/fragment"], ShouldEqual, 1)
			})
		})

		Convey("When a series exceeds the point limit", func() {
			points := make([]chart.BarPoint, 21)
			_, err := svc.RenderBar(ctx, points)

			Convey("Then it is rejected before rendering", func() {
				So(errors.Is(err, service.ErrTooManyPoints), ShouldBeTrue)
				So(rec.errs["bar/too_many_points"], ShouldEqual, 1)
			})
		})

		Convey("When a pie series has no positive total", func() {
			_, err := svc.RenderPie(ctx, []chart.PiePoint{{Label: "a"}})

			Convey("Then the chart error is surfaced", func() {
				So(errors.Is(err, chart.ErrInvalidInput), ShouldBeTrue)
				So(rec.errs["pie/invalid_input"], ShouldEqual, 1)
			})
		})

		Convey("When stats are read after some work", func() {
			_, _ = svc.RenderBar(ctx, []chart.BarPoint{{Label: "a", Value: 1}})
			_, _ = svc.RenderBar(ctx, nil)
			stats := svc.GetStats()

			Convey("Then counters reflect it", func() {
				So(stats["started"], ShouldEqual, true)
				So(stats["barRendered"], ShouldEqual, int64(1))
				So(stats["rejectedInput"], ShouldEqual, int64(1))
				So(stats["maxPoints"], ShouldEqual, 20)
			})
		})
	})

	Convey("Given a service whose source fails", t, func() {
		svc := service.New(service.WithSource(failingSource{}), service.WithRecorder(newFakeRecorder()))

		Convey("Then views fail with a source error", func() {
			_, err := svc.View(context.Background(), dashboard.Jobs, "page")
			So(errors.Is(err, service.ErrSource), ShouldBeTrue)
			_, err = svc.Snapshot(context.Background())
			So(errors.Is(err, service.ErrSource), ShouldBeTrue)
		})
	})

	Convey("Given a source with an unrenderable pipeline", t, func() {
		svc := service.New(service.WithSource(flatSource{}), service.WithRecorder(newFakeRecorder()))

		Convey("Then the overview fails but other tabs still work", func() {
			_, err := svc.View(context.Background(), dashboard.Overview, "page")
			So(errors.Is(err, chart.ErrInvalidInput), ShouldBeTrue)
			_, err = svc.View(context.Background(), dashboard.Candidates, "page")
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithRecorder(newFakeRecorder()))

		Convey("Then rendering still works and stop is a no-op", func() {
			_, err := svc.RenderPie(context.Background(), []chart.PiePoint{{Label: "a", Value: 1}})
			So(err, ShouldBeNil)
			So(func() { svc.Stop() }, ShouldNotPanic)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.MaxPoints(), ShouldEqual, 500)
		})
	})
}
