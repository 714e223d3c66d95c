package submit_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perceptlab/syntrial/internal/adapters/submit"
	"github.com/perceptlab/syntrial/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func testBatch() model.Batch {
	return model.Batch{
		BatchID:       "b-1",
		SessionID:     "sess-1",
		ParticipantID: "P-001",
		TestType:      "letter",
		Responses: []model.ResponseRecord{
			{Stimulus: "A", SelectedColor: &model.Color{R: 10, G: 20, B: 30, Hex: "0A141E"}, ReactionTimeMS: 512},
		},
		CompletedAt: time.Now().UTC(),
	}
}

func TestHTTPSubmitter(t *testing.T) {
	Convey("Given an HTTP submitter", t, func() {
		ctx := context.Background()

		Convey("When the server accepts the batch", func() {
			// The handler runs on the server goroutine; capture the request
			// there and assert on the test goroutine after Submit returns.
			var (
				received  model.Batch
				gotPath   string
				gotMethod string
				decodeErr error
			)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotMethod = r.Method
				decodeErr = json.NewDecoder(r.Body).Decode(&received)
				w.WriteHeader(http.StatusAccepted)
			}))
			defer srv.Close()

			err := submit.NewHTTPSubmitter(srv.URL).Submit(ctx, testBatch())

			Convey("Then submission succeeds and the payload round-trips", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/batches")
				So(gotMethod, ShouldEqual, http.MethodPost)
				So(decodeErr, ShouldBeNil)
				So(received.BatchID, ShouldEqual, "b-1")
				So(len(received.Responses), ShouldEqual, 1)
			})
		})

		Convey("When the server reports a duplicate", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			Convey("Then the submitter treats it as success", func() {
				So(submit.NewHTTPSubmitter(srv.URL).Submit(ctx, testBatch()), ShouldBeNil)
			})
		})

		Convey("When the server sheds load", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			}))
			defer srv.Close()

			err := submit.NewHTTPSubmitter(srv.URL).Submit(ctx, testBatch())

			Convey("Then the backpressure sentinel surfaces", func() {
				So(errors.Is(err, submit.ErrBackpressure), ShouldBeTrue)
			})
		})

		Convey("When the server errors", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer srv.Close()

			Convey("Then submission fails", func() {
				So(submit.NewHTTPSubmitter(srv.URL).Submit(ctx, testBatch()), ShouldNotBeNil)
			})
		})

		Convey("When the server is unreachable", func() {
			Convey("Then submission fails", func() {
				s := submit.NewHTTPSubmitter("http://127.0.0.1:1", submit.WithHTTPClient(&http.Client{Timeout: 200 * time.Millisecond}))
				So(s.Submit(ctx, testBatch()), ShouldNotBeNil)
			})
		})
	})
}
