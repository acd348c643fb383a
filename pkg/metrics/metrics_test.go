package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created and enabled", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(false),
				WithRefreshInterval(5*time.Second),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.recomputeTotal.WithLabelValues("Deceased").Inc()

			Convey("Then metric names should carry the namespace and the fixed subsystem", func() {
				So(manager.Enabled(), ShouldBeFalse)
				So(manager.refreshInterval, ShouldEqual, 5*time.Second)
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_namespace_dashboard_state_graph_recompute_total")
			})

			Convey("And every series should carry the custom labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				for _, f := range families {
					for _, m := range f.GetMetric() {
						found := false
						for _, lp := range m.GetLabel() {
							if lp.GetName() == "env" && lp.GetValue() == "test" {
								found = true
							}
						}
						So(found, ShouldBeTrue)
					}
				}
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		SetEnabled(true)

		Convey("When recording a dataset load", func() {
			RecordDatasetLoaded("individuals", 42, 3.5)

			Convey("Then the row gauge should hold the count", func() {
				So(testutil.ToFloat64(globalManager.datasetRows.WithLabelValues("individuals")), ShouldEqual, 42)
			})
		})

		Convey("When publishing the case counters", func() {
			UpdateCaseCounters(10, 2, 6, 2)

			Convey("Then every kind should be set", func() {
				So(testutil.ToFloat64(globalManager.caseCounters.WithLabelValues("total")), ShouldEqual, 10)
				So(testutil.ToFloat64(globalManager.caseCounters.WithLabelValues("active")), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.caseCounters.WithLabelValues("recovered")), ShouldEqual, 6)
				So(testutil.ToFloat64(globalManager.caseCounters.WithLabelValues("deceased")), ShouldEqual, 2)
			})
		})

		Convey("When recording an empty recompute", func() {
			before := testutil.ToFloat64(globalManager.emptyResults.WithLabelValues("Unknown"))
			RecordRecompute("Unknown", 0, 0.2)

			Convey("Then the empty counter should advance", func() {
				So(testutil.ToFloat64(globalManager.emptyResults.WithLabelValues("Unknown")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.recomputeBars.WithLabelValues("Unknown")), ShouldEqual, 0)
			})
		})

		Convey("When recording is disabled", func() {
			SetEnabled(false)
			defer SetEnabled(true)
			before := testutil.ToFloat64(globalManager.recomputeTotal.WithLabelValues("Recovered"))
			RecordRecompute("Recovered", 3, 0.1)

			Convey("Then nothing should change", func() {
				So(testutil.ToFloat64(globalManager.recomputeTotal.WithLabelValues("Recovered")), ShouldEqual, before)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("dashboard", "GET", "200")
				RecordHTTPRequestDuration("dashboard", "GET", "200", 5.0)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("state_graph", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 1.0)
				RecordDatasetLoadError("age", "missing_column")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(7)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)
		})
	})
}

func TestRefreshInterval(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Then the refresh interval should default to ten seconds", func() {
			So(RefreshInterval(), ShouldEqual, 10*time.Second)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		RecordHTTPRequest("healthz", "GET", "200")
		families, err := GetRegistry().Gather()

		Convey("Then it should expose only dashboard metrics", func() {
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "indiacovid_dashboard_"), ShouldBeTrue)
			}
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given settings from the metrics_* config keys", t, func() {
		defer Configure()

		manager := Configure(
			WithNamespace("covid"),
			WithRefreshInterval(time.Minute),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithCustomLabels(map[string]string{"deployment": "staging"}),
			WithMetricsEnabled(true),
		)
		RecordHTTPRequest("summary", "GET", "200")

		Convey("Then the global manager and registry should be replaced", func() {
			So(globalManager, ShouldPointTo, manager)
			So(RefreshInterval(), ShouldEqual, time.Minute)
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(families, ShouldNotBeEmpty)
			for _, f := range families {
				So(strings.HasPrefix(f.GetName(), "covid_dashboard_"), ShouldBeTrue)
			}
		})

		Convey("When configuring twice", func() {
			Convey("Then the second call should not collide with the first registry", func() {
				So(func() { Configure(WithNamespace("covid")) }, ShouldNotPanic)
			})
		})
	})
}
