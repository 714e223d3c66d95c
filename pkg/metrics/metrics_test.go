package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty or nil option values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRegistry(registry),
			)

			Convey("Then defaults should survive and creation succeeds", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording ingest metrics", func() {
			Convey("Then it should record batch counters", func() {
				So(func() {
					RecordBatchReceived()
					RecordBatchDuplicate()
					RecordBatchStored()
					RecordTrialsRecorded(36)
				}, ShouldNotPanic)
			})

			Convey("And it should record reaction times", func() {
				So(func() {
					RecordReactionTime(350.0)
					RecordReactionTime(1200.0)
					RecordReactionTime(0.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record sessions and screenings", func() {
				So(func() {
					RecordSessionStarted("letter")
					RecordSessionStarted("number")
					RecordScreening("eligible")
					RecordScreening("BC")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording pipeline metrics", func() {
			Convey("Then it should update queue gauges", func() {
				So(func() {
					UpdateQueueSize(12)
					UpdateQueueCapacity(1024)
					UpdateQueueUtilization(0.0117)
				}, ShouldNotPanic)
			})

			Convey("And it should record queue traffic and errors", func() {
				So(func() {
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueError("queue_full")
					RecordQueueError("closed")
				}, ShouldNotPanic)
			})

			Convey("And it should record worker metrics", func() {
				So(func() {
					UpdateWorkerCount(8)
					RecordWorkerLatency(4.2)
					RecordWorkerError("summarize")
					RecordWorkerError("store")
				}, ShouldNotPanic)
			})
		})

		Convey("When recording storage metrics", func() {
			So(func() {
				RecordStoreLatency(1.5)
				UpdateStoreBatches(100)
				UpdateStoreParticipants(42)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/batches", "POST", "202")
				RecordHTTPRequest("/results", "GET", "200")
				RecordHTTPRequestDuration("/batches", "POST", "202", 3.0)
				RecordHTTPRequestDuration("", "", "200", 0.0)
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recording", t, func() {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordBatchReceived()
					UpdateQueueSize(j)
					RecordReactionTime(float64(j) * 10)
					RecordHTTPRequest("/batches", "POST", "202")
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		Convey("Then it should handle concurrent access without panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}
