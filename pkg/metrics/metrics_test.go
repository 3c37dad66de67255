package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func counterValue(c prometheus.Metric) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			opts := []Option{
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithXGBuckets([]float64{0.5, 1, 2}),
				WithCustomLabels(map[string]string{"env": "test"}),
			}

			Convey("Then they should be valid functions", func() {
				for _, o := range opts {
					So(o, ShouldNotBeNil)
				}
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewMetricsManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)
			manager.ObserveAssembly(1.5, 4)

			Convey("Then metric names carry namespace, subsystem and prefix", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_prefix_matches_assembled_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestManagerObservations(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording an assembly with events and diagnostics", func() {
			manager.ObserveAssembly(2, 7)
			manager.ObserveTeamXG(1.37)
			manager.ObserveEvent("goal", true)
			manager.ObserveEvent("own_goal", false)
			manager.ObserveDiagnostic("malformed_minute", "shot")
			manager.ObserveAssemblyError()

			Convey("Then the counters reflect the observations", func() {
				So(counterValue(manager.matchesAssembled), ShouldEqual, 1)
				So(counterValue(manager.shotsProcessed), ShouldEqual, 7)
				So(counterValue(manager.eventsClassified.WithLabelValues("goal")), ShouldEqual, 1)
				So(counterValue(manager.eventsMissingXG), ShouldEqual, 1)
				So(counterValue(manager.diagnostics.WithLabelValues("malformed_minute", "shot")), ShouldEqual, 1)
				So(counterValue(manager.assemblyErrors), ShouldEqual, 1)
			})
		})

		Convey("When the manager is disabled", func() {
			disabled := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
			disabled.ObserveAssembly(2, 7)
			disabled.ObserveDiagnostic("malformed_minute", "event")

			Convey("Then nothing is recorded", func() {
				So(counterValue(disabled.matchesAssembled), ShouldEqual, 0)
				So(counterValue(disabled.diagnostics.WithLabelValues("malformed_minute", "event")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global recorders", t, func() {
		Convey("Then none of them should panic", func() {
			So(func() {
				RecordMatchAssembled(1.2, 3)
				RecordAssemblyError()
				RecordTeamXG(0.8)
				RecordEventClassified("red_card", true)
				RecordDiagnostic("unknown_team_reference", "event")
				RecordMatchFileDecoded("ok")
				RecordHTTPRequest("timelines", "POST", "200")
				RecordHTTPRequestDuration("timelines", "POST", "200", 3)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("timelines", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 1)
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry exposes the xgflow families", func() {
			RecordMatchAssembled(1, 1)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(strings.Join(names, ","), ShouldContainSubstring, "xgflow_timeline_matches_assembled_total")
			So(Default(), ShouldNotBeNil)
		})
	})
}
