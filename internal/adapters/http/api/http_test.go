package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/recruit/internal/adapters/http/api"
	service "github.com/okian/recruit/internal/app"
	"github.com/okian/recruit/internal/domain/chart"
	"github.com/okian/recruit/internal/domain/dashboard"
	"github.com/okian/recruit/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDependencies lets tests force source failures.
type mockDependencies struct {
	*service.Service
	snapshotErr error
}

func (m *mockDependencies) Snapshot(ctx context.Context) (dashboard.Snapshot, error) {
	if m.snapshotErr != nil {
		return dashboard.Snapshot{}, m.snapshotErr
	}
	return m.Service.Snapshot(ctx)
}

func newDeps() *mockDependencies {
	return &mockDependencies{Service: service.New(service.WithMaxPoints(3))}
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		mux := newMux(newDeps())

		Convey("Then health serves metrics", func() {
			w := do(mux, http.MethodGet, "/healthz", "")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats serves JSON", func() {
			w := do(mux, http.MethodGet, "/stats", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["maxPoints"], ShouldEqual, float64(3))
		})

		Convey("Then sample charts larger than the point limit are rejected", func() {
			for _, path := range []string{"/charts/applications.svg", "/charts/pipeline.svg"} {
				w := do(mux, http.MethodGet, path, "")
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "too_many_points")
			}
		})

		Convey("Then wrong methods are not found", func() {
			So(do(mux, http.MethodGet, "/charts/bar", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodPost, "/stats", "").Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, http.MethodPost, "/charts/pipeline.svg", "").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestChartsHandler_Bar(t *testing.T) {
	Convey("Given a charts handler", t, func() {
		mux := newMux(newDeps())

		Convey("When a valid series is posted", func() {
			w := do(mux, http.MethodPost, "/charts/bar", `{"points":[{"label":"Jan 1","value":10},{"label":"Jan 2","value":20}]}`)

			Convey("Then an SVG document is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
				So(w.Body.String(), ShouldStartWith, `<svg viewBox="0 0 80 250"`)
				So(w.Body.String(), ShouldContainSubstring, `xmlns="http://www.w3.org/2000/svg"`)
				So(w.Body.String(), ShouldContainSubstring, ">Jan</text>")
			})
		})

		Convey("When JSON output is requested", func() {
			w := do(mux, http.MethodPost, "/charts/bar?format=json", `{"points":[{"label":"a","value":10},{"label":"b","value":20}]}`)

			Convey("Then the geometry is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got struct {
					Min  float64 `json:"min"`
					Max  float64 `json:"max"`
					Bars []struct {
						Height float64 `json:"height"`
					} `json:"bars"`
					Drawing struct {
						Width float64           `json:"width"`
						Nodes []json.RawMessage `json:"nodes"`
					} `json:"drawing"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Min, ShouldEqual, 10)
				So(got.Max, ShouldEqual, 20)
				So(got.Bars[0].Height, ShouldEqual, 0)
				So(got.Bars[1].Height, ShouldEqual, 180)
				So(got.Drawing.Width, ShouldEqual, 80)
				So(len(got.Drawing.Nodes), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the series is empty", func() {
			w := do(mux, http.MethodPost, "/charts/bar", `{"points":[]}`)

			Convey("Then it is invalid input", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "invalid_input")
			})
		})

		Convey("When finite values span more than a float can hold", func() {
			w := do(mux, http.MethodPost, "/charts/bar?format=json", `{"points":[{"label":"a","value":-1e308},{"label":"b","value":1e308}]}`)

			Convey("Then it is invalid input instead of NaN geometry", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "invalid_input")
			})
		})

		Convey("When the series exceeds the limit", func() {
			w := do(mux, http.MethodPost, "/charts/bar", `{"points":[{"label":"a","value":1},{"label":"b","value":2},{"label":"c","value":3},{"label":"d","value":4}]}`)

			Convey("Then it is rejected as too many points", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "too_many_points")
			})
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, http.MethodPost, "/charts/bar", `{`)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(decodeError(w)["code"], ShouldEqual, "bad_request")
				So(decodeError(w)["message"], ShouldStartWith, "api.charts_bar: bad request")
			})
		})

		Convey("When the body has unknown fields", func() {
			w := do(mux, http.MethodPost, "/charts/bar", `{"series":[]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "bad_request")
		})
	})
}

func TestChartsHandler_Pie(t *testing.T) {
	Convey("Given a charts handler", t, func() {
		mux := newMux(newDeps())

		Convey("When a single-point series is posted", func() {
			w := do(mux, http.MethodPost, "/charts/pie", `{"points":[{"label":"All","value":5,"color":"#3B82F6"}]}`)

			Convey("Then a full circle labeled 100% is drawn", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "A 100 100 0 1 1 0 100 A 100 100 0 1 1 200 100 Z")
				So(w.Body.String(), ShouldContainSubstring, ">100%</text>")
				So(w.Body.String(), ShouldContainSubstring, ">5 Total</text>")
			})
		})

		Convey("When JSON output is requested", func() {
			w := do(mux, http.MethodPost, "/charts/pie?format=json", `{"points":[{"label":"a","value":1,"color":"red"},{"label":"b","value":3,"color":"blue"}]}`)

			Convey("Then wedges carry their percentages", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var got struct {
					Total  float64 `json:"total"`
					Wedges []struct {
						Percent int `json:"percent"`
					} `json:"wedges"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Total, ShouldEqual, 4)
				So(got.Wedges[0].Percent, ShouldEqual, 25)
				So(got.Wedges[1].Percent, ShouldEqual, 75)
			})
		})

		Convey("When values sum to zero", func() {
			w := do(mux, http.MethodPost, "/charts/pie", `{"points":[{"label":"a","value":0,"color":"red"}]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "invalid_input")
		})

		Convey("When a value is negative", func() {
			w := do(mux, http.MethodPost, "/charts/pie", `{"points":[{"label":"a","value":-1,"color":"red"},{"label":"b","value":3,"color":"blue"}]}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "invalid_input")
		})
	})
}

func TestChartsHandler_Samples(t *testing.T) {
	Convey("Given a service with the default point limit", t, func() {
		deps := &mockDependencies{Service: service.New()}
		mux := newMux(deps)

		Convey("Then the applications chart renders twelve bars", func() {
			w := do(mux, http.MethodGet, "/charts/applications.svg", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "image/svg+xml")
			So(w.Body.String(), ShouldStartWith, `<svg viewBox="0 0 480 250"`)
			So(strings.Count(w.Body.String(), `fill="#3B82F6"`), ShouldEqual, 12)
		})

		Convey("Then the pipeline chart shows the total", func() {
			w := do(mux, http.MethodGet, "/charts/pipeline.svg", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, ">950 Total</text>")
		})

		Convey("When the source is unavailable", func() {
			deps.snapshotErr = errors.New("offline")
			w := do(mux, http.MethodGet, "/charts/pipeline.svg", "")

			Convey("Then the service is unavailable", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(decodeError(w)["code"], ShouldEqual, "unavailable")
			})
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given kind errors", t, func() {
		cause := fmt.Errorf("%w: empty", chart.ErrInvalidInput)

		Convey("Then WrapKind matches both kind and cause", func() {
			err := api.WrapKind("op", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, chart.ErrInvalidInput), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "op: bad request: invalid chart input: empty")
		})

		Convey("Then Wrap keeps the cause kind", func() {
			err := api.Wrap("op", cause)
			So(errors.Is(err, chart.ErrInvalidInput), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "op: invalid chart input: empty")
		})

		Convey("Then NewKind has no cause", func() {
			err := api.NewKind("op", api.ErrRender)
			So(errors.Is(err, api.ErrRender), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "op: render failed")
		})

		Convey("Then nil causes stay nil", func() {
			So(api.Wrap("op", nil), ShouldBeNil)
			So(api.WrapKind("op", api.ErrBadRequest, nil), ShouldBeNil)
		})
	})
}

func TestMiddleware(t *testing.T) {
	_ = logger.Init()

	Convey("Given the request logger", t, func() {
		h := api.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}), logger.Get())

		Convey("Then a request id is generated when absent", func() {
			w := do(h, http.MethodGet, "/", "")
			So(w.Code, ShouldEqual, http.StatusTeapot)
			So(len(w.Header().Get(api.RequestIDHeader)), ShouldEqual, 36)
		})

		Convey("Then an incoming request id is kept", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(api.RequestIDHeader, "abc")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc")
		})
	})

	Convey("Given CORS for one host origin", t, func() {
		h := api.CORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}), []string{"https://host.example"})

		Convey("Then the allowed origin is echoed", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "https://host.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "https://host.example")
		})

		Convey("Then other origins get no grant", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "https://evil.example")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
		})
	})

	Convey("Given the metrics middleware", t, func() {
		h := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, "test")

		Convey("Then the status passes through", func() {
			w := do(http.HandlerFunc(h), http.MethodGet, "/", "")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

type nanStats struct{}

func (nanStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"ratio": math.NaN()}
}

func TestStatsEncodingFailure(t *testing.T) {
	_ = logger.Init()

	Convey("Given stats that cannot be encoded as JSON", t, func() {
		h := api.NewStatsHandler(nanStats{})
		w := httptest.NewRecorder()
		h.HandleStats(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

		Convey("Then the response is a 500 rather than a truncated 200", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Header().Get("Content-Type"), ShouldNotContainSubstring, "application/json")
			So(w.Body.String(), ShouldContainSubstring, "Internal Server Error")
		})
	})
}
