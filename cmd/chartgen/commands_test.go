package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/recruit/internal/domain/chart"
	"github.com/smartystreets/goconvey/convey"
)

func run(stdin string, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChartgen(t *testing.T) {
	convey.Convey("Given the chartgen command", t, func() {
		convey.Convey("When a bar series is piped in", func() {
			out, err := run(`{"points":[{"label":"Jan 1","value":45},{"label":"Jan 5","value":38}]}`, "bar", "-")

			convey.Convey("Then an SVG document is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldStartWith, `<svg viewBox="0 0 80 250"`)
				convey.So(out, convey.ShouldEndWith, "</svg>\n")
			})
		})

		convey.Convey("When a pie series is read from a file as JSON", func() {
			dir := t.TempDir()
			in := filepath.Join(dir, "pipeline.json")
			convey.So(os.WriteFile(in, []byte(`{"points":[{"label":"a","value":1,"color":"red"},{"label":"b","value":1,"color":"blue"}]}`), 0o644), convey.ShouldBeNil)
			out, err := run("", "pie", in, "--format", "json")

			convey.Convey("Then the geometry is printed", func() {
				convey.So(err, convey.ShouldBeNil)
				var got struct {
					Total  float64 `json:"total"`
					Wedges []struct {
						Percent int `json:"percent"`
					} `json:"wedges"`
				}
				convey.So(json.Unmarshal([]byte(out), &got), convey.ShouldBeNil)
				convey.So(got.Total, convey.ShouldEqual, 2)
				convey.So(got.Wedges[0].Percent, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When the output flag names a file", func() {
			path := filepath.Join(t.TempDir(), "bar.svg")
			out, err := run(`{"points":[{"label":"x","value":3}]}`, "bar", "-", "-o", path)

			convey.Convey("Then the file holds the chart and stdout is empty", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldBeEmpty)
				data, err := os.ReadFile(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "<svg")
			})
		})

		convey.Convey("When samples are written", func() {
			dir := filepath.Join(t.TempDir(), "charts")
			out, err := run("", "sample", "-o", dir)

			convey.Convey("Then both sample charts exist", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "applications.svg")
				pipeline, err := os.ReadFile(filepath.Join(dir, "pipeline.svg"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(pipeline), convey.ShouldContainSubstring, "950 Total")
			})
		})

		convey.Convey("When the series is invalid", func() {
			_, err := run(`{"points":[]}`, "bar", "-")
			convey.So(errors.Is(err, chart.ErrInvalidInput), convey.ShouldBeTrue)
		})

		convey.Convey("When the series exceeds the limit", func() {
			_, err := run(`{"points":[{"label":"a","value":1},{"label":"b","value":2}]}`, "bar", "-", "--max-points", "1")
			convey.So(errors.Is(err, chart.ErrTooManyPoints), convey.ShouldBeTrue)
		})

		convey.Convey("When the format is unknown", func() {
			_, err := run("", "sample", "--format", "png")
			convey.So(errors.Is(err, errFormat), convey.ShouldBeTrue)
		})

		convey.Convey("When the input file is missing", func() {
			_, err := run("", "pie", filepath.Join(t.TempDir(), "nope.json"))
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
