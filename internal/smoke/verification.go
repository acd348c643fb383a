package smoke

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/okian/indiacovid/internal/domain/chart"
	"github.com/okian/indiacovid/internal/domain/model"
	"github.com/okian/indiacovid/pkg/logger"
)

// verifySummary checks the counters are internally consistent.
func verifySummary(s Summary) error {
	if s.Active != s.Total-s.Recovered-s.Deceased {
		return fmt.Errorf("%w: active %d != total %d - recovered %d - deceased %d",
			ErrCheckFailed, s.Active, s.Total, s.Recovered, s.Deceased)
	}
	return nil
}

// verifyDashboard checks the rendered page shows the same counters as the
// summary and offers the three statuses.
func verifyDashboard(page []byte, s Summary) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	var values []string
	doc.Find(".card-body h2").Each(func(_ int, sel *goquery.Selection) {
		values = append(values, strings.TrimSpace(sel.Text()))
	})
	want := []string{
		strconv.Itoa(s.Total), strconv.Itoa(s.Active),
		strconv.Itoa(s.Recovered), strconv.Itoa(s.Deceased),
	}
	if diff := cmp.Diff(want, values); diff != "" {
		return fmt.Errorf("%w: counter cards differ from summary (-want +got):\n%s", ErrCheckFailed, diff)
	}

	var options []string
	doc.Find("#status-picker option").Each(func(_ int, sel *goquery.Selection) {
		options = append(options, sel.AttrOr("value", ""))
	})
	var statuses []string
	for _, st := range model.Statuses() {
		statuses = append(statuses, st.String())
	}
	if diff := cmp.Diff(statuses, options); diff != "" {
		return fmt.Errorf("%w: dropdown options (-want +got):\n%s", ErrCheckFailed, diff)
	}
	if doc.Find("#state-graph[data-figure]").Length() != 1 {
		return fmt.Errorf("%w: state graph slot missing", ErrCheckFailed)
	}
	return nil
}

// verifyCallbacks checks every status answered identically on every round,
// bars are sorted and the Recovered/Deceased bars add up to the summary.
func verifyCallbacks(ctx context.Context, byStatus map[model.Status][]callbackResult, s Summary) error {
	for _, status := range model.Statuses() {
		results := byStatus[status]
		if len(results) == 0 {
			return fmt.Errorf("%w: no response for %s", ErrCheckFailed, status)
		}
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("%w: %s callback: %w", ErrCheckFailed, status, r.Err)
			}
		}

		first := results[0].Figure
		for i, r := range results[1:] {
			if diff := cmp.Diff(first, r.Figure); diff != "" {
				return fmt.Errorf("%w: %s answer %d differs (-first +got):\n%s", ErrCheckFailed, status, i+1, diff)
			}
		}
		if err := verifyOrdering(status, first); err != nil {
			return err
		}

		sum := barSum(first)
		switch status {
		case model.StatusRecovered:
			if sum != s.Recovered {
				return fmt.Errorf("%w: recovered bars sum to %d, summary says %d", ErrCheckFailed, sum, s.Recovered)
			}
		case model.StatusDeceased:
			if sum != s.Deceased {
				return fmt.Errorf("%w: deceased bars sum to %d, summary says %d", ErrCheckFailed, sum, s.Deceased)
			}
		case model.StatusHospitalized:
			// Active also counts statuses outside the dropdown.
			if sum > s.Active {
				return fmt.Errorf("%w: hospitalized bars sum to %d, above active %d", ErrCheckFailed, sum, s.Active)
			}
		}

		logger.Get().Info(ctx, "status verified",
			logger.String("status", status.String()),
			logger.Int("bars", first.Points()),
			logger.Int("cases", sum),
			logger.Int("responses", len(results)),
		)
	}
	return nil
}

func verifyOrdering(status model.Status, fig chart.Figure) error {
	want := fmt.Sprintf("State wise %s Count", status)
	if fig.Layout.Title.Text != want {
		return fmt.Errorf("%w: title %q, want %q", ErrCheckFailed, fig.Layout.Title.Text, want)
	}
	for _, tr := range fig.Data {
		for i := 1; i < len(tr.Y); i++ {
			if tr.Y[i] > tr.Y[i-1] {
				return fmt.Errorf("%w: %s bars not sorted at %d", ErrCheckFailed, status, i)
			}
		}
	}
	return nil
}

func barSum(fig chart.Figure) int {
	sum := 0
	for _, tr := range fig.Data {
		for _, v := range tr.Y {
			sum += v
		}
	}
	return sum
}
