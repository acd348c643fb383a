package smoke

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/indiacovid/internal/adapters/http/api"
	"github.com/okian/indiacovid/internal/adapters/repository"
	service "github.com/okian/indiacovid/internal/app"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func newDashboard(t *testing.T) *httptest.Server {
	svc := service.New(service.WithSources(repository.Sources{
		Age:         "../../data/AgeGroupDetails.csv",
		States:      "../../data/covid_19_india.csv",
		Individuals: "../../data/IndividualDetails.csv",
	}))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	Convey("Given a running dashboard over the sample data", t, func() {
		srv := newDashboard(t)
		defer srv.Close()

		Convey("When running the smoke check", func() {
			stats, err := Run(context.Background(), &Config{BaseURL: srv.URL, Rounds: 3, Workers: 2})

			Convey("Then every check should pass", func() {
				So(err, ShouldBeNil)
				So(stats.ChecksPassed, ShouldEqual, 4)
				So(stats.CallbacksSubmitted, ShouldEqual, 9)
				So(stats.CallbacksFailed, ShouldEqual, 0)
			})
		})
	})

	Convey("Given nothing listening", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		Convey("When running the smoke check", func() {
			_, err := Run(context.Background(), &Config{BaseURL: srv.URL})

			Convey("Then the health check should fail", func() {
				So(errors.Is(err, ErrUnexpectedStatus), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "health")
			})
		})
	})
}

func TestVerifySummary(t *testing.T) {
	Convey("Given summaries", t, func() {
		So(verifySummary(Summary{Total: 10, Recovered: 6, Deceased: 2, Active: 2}), ShouldBeNil)
		So(errors.Is(verifySummary(Summary{Total: 10, Recovered: 6, Deceased: 2, Active: 3}), ErrCheckFailed), ShouldBeTrue)
	})
}

func TestVerifyCallbacks(t *testing.T) {
	Convey("Given callback answers", t, func() {
		ctx := context.Background()
		bars := func(status model.Status, y ...int) chart.Figure {
			x := make([]string, len(y))
			for i := range y {
				x[i] = "S" + string(rune('A'+i))
			}
			return chart.Bar("State wise "+status.String()+" Count", "State", "Count", x, y, -45)
		}
		good := func() map[model.Status][]callbackResult {
			return map[model.Status][]callbackResult{
				model.StatusHospitalized: {{Status: model.StatusHospitalized, Figure: bars(model.StatusHospitalized, 2)}},
				model.StatusRecovered:    {{Status: model.StatusRecovered, Figure: bars(model.StatusRecovered, 2, 1)}},
				model.StatusDeceased:     {{Status: model.StatusDeceased, Figure: bars(model.StatusDeceased, 1)}},
			}
		}
		summary := Summary{Total: 6, Recovered: 3, Deceased: 1, Active: 2}

		Convey("When they are consistent", func() {
			So(verifyCallbacks(ctx, good(), summary), ShouldBeNil)
		})

		Convey("When a repeat differs", func() {
			res := good()
			res[model.StatusRecovered] = append(res[model.StatusRecovered],
				callbackResult{Status: model.StatusRecovered, Figure: bars(model.StatusRecovered, 3)})

			Convey("Then determinism should fail", func() {
				err := verifyCallbacks(ctx, res, summary)
				So(errors.Is(err, ErrCheckFailed), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "differs")
			})
		})

		Convey("When bars are unsorted", func() {
			res := good()
			res[model.StatusRecovered][0].Figure = bars(model.StatusRecovered, 1, 2)
			So(errors.Is(verifyCallbacks(ctx, res, summary), ErrCheckFailed), ShouldBeTrue)
		})

		Convey("When deceased bars disagree with the summary", func() {
			summary.Deceased = 2
			summary.Active = 1
			So(errors.Is(verifyCallbacks(ctx, good(), summary), ErrCheckFailed), ShouldBeTrue)
		})

		Convey("When a status is missing", func() {
			res := good()
			delete(res, model.StatusDeceased)
			So(errors.Is(verifyCallbacks(ctx, res, summary), ErrCheckFailed), ShouldBeTrue)
		})
	})
}

func TestVerifyDashboard(t *testing.T) {
	Convey("Given a page whose cards disagree with the summary", t, func() {
		page := []byte(`<div class="card-body"><h2>5</h2></div>`)
		err := verifyDashboard(page, Summary{Total: 5})

		Convey("Then it should report the difference", func() {
			So(errors.Is(err, ErrCheckFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "counter cards")
		})
	})
}
