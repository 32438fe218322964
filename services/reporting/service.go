package reporting

import (
	"context"
	"fmt"
	"io"

	"github.com/estafette/estafette-build-time-analyzer/services/analysis"
	"github.com/logrusorgru/aurora"
	"github.com/olekukonko/tablewriter"
)

// Service renders the build time reports
type Service interface {
	RenderOverall(w io.Writer, aggregate *analysis.Aggregate)
	RenderToday(w io.Writer, aggregate *analysis.Aggregate, today analysis.Day)
	RenderDays(w io.Writer, aggregate *analysis.Aggregate)
}

// NewService returns a new reporting.Service
func NewService(ctx context.Context, colors bool) (Service, error) {
	return &service{
		aurora: aurora.NewAurora(colors),
	}, nil
}

type service struct {
	aurora aurora.Aurora
}

func (s *service) RenderOverall(w io.Writer, aggregate *analysis.Aggregate) {

	s.renderHeader(w, "OVERALL")

	report, ok := analysis.GetOverallReport(aggregate)
	if !ok {
		fmt.Fprintln(w, "There haven't been any builds, yet.")
		fmt.Fprintln(w, "Make sure the builds are following the correct format.")
	} else {
		s.renderFields(w, [][]string{
			{"Total number of builds:", fmt.Sprintf("%v (over %v days)", report.BuildCount, report.DayCount)},
			{"Total time spent building:", analysis.HumanDuration(report.TotalTime)},
			{"Average build time:", fmt.Sprintf("%v seconds", int64(report.AverageBuildTime))},
			{"Average time per day:", analysis.HumanDuration(report.AverageTimePerDay)},
		})
	}

	if aggregate != nil && aggregate.PendingStart != nil {
		fmt.Fprintf(w, "%v build started at %v\n", s.aurora.Yellow("In progress:"), aggregate.PendingStart.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintln(w)
}

func (s *service) RenderToday(w io.Writer, aggregate *analysis.Aggregate, today analysis.Day) {

	s.renderHeader(w, "TODAY")

	report, ok := analysis.GetTodayReport(aggregate, today)
	if !ok {
		fmt.Fprintln(w, "There haven't been any builds today, yet.")
		return
	}

	s.renderFields(w, [][]string{
		{"Number of builds today:", fmt.Sprintf("%v", report.BuildCount)},
		{"Time spent building today:", analysis.HumanDuration(report.TotalTime)},
		{"Average build time:", fmt.Sprintf("%v seconds", int64(report.AverageBuildTime))},
	})
}

func (s *service) RenderDays(w io.Writer, aggregate *analysis.Aggregate) {

	s.renderHeader(w, "DAYS")

	reports := analysis.GetDailyReports(aggregate)
	if len(reports) == 0 {
		fmt.Fprintln(w, "There haven't been any builds, yet.")
		return
	}

	data := make([][]string, 0, len(reports))
	for _, r := range reports {
		data = append(data, []string{
			string(r.Day),
			fmt.Sprintf("%v", r.BuildCount),
			analysis.HumanDuration(r.TotalTime),
			fmt.Sprintf("%v", int64(r.AverageBuildTime)),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Builds", "Total", "Average (s)"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
}

func (s *service) renderHeader(w io.Writer, title string) {
	fmt.Fprintln(w, s.aurora.Bold(s.aurora.Cyan(fmt.Sprintf("---%v---", title))))
}

func (s *service) renderFields(w io.Writer, fields [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(fields)
	table.Render()
}
