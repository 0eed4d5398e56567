package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"time"

	"performate/internal/calendar"
	"performate/internal/config"
	"performate/internal/exitcode"
	"performate/internal/service"
)

func init() {
	Register(&CalendarCmd{})
}

// CalendarCmd renders upcoming months with due tasks listed per day.
type CalendarCmd struct {
	months int
}

func (c *CalendarCmd) Name() string      { return "calendar" }
func (c *CalendarCmd) Aliases() []string { return []string{"cal"} }
func (c *CalendarCmd) Synopsis() string  { return "Show tasks on a calendar" }
func (c *CalendarCmd) Usage() string     { return "performate calendar [--months <n>]" }
func (c *CalendarCmd) NeedsAuth() bool   { return true }

func (c *CalendarCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.months, "months", 2, "")
}

func (c *CalendarCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.months < 1 {
		fmt.Fprintf(errOut, "error: invalid month count: %d\n", c.months)
		return exitcode.UserError
	}

	tasks, err := svc.Tasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	grouped := calendar.GroupByDueDate(tasks)
	now := time.Now()

	for offset := 0; offset < c.months; offset++ {
		month := calendar.MonthGrid(now, offset)
		fmt.Fprintln(out, month.Title())
		for _, wd := range calendar.Weekdays {
			fmt.Fprintf(out, "%4s", wd)
		}
		fmt.Fprintln(out)

		for i, day := range month.Days {
			if day.Blank() {
				fmt.Fprint(out, "    ")
			} else if len(grouped[calendar.DateKey(day.Date)]) > 0 {
				fmt.Fprintf(out, "%3d*", day.Date.Day())
			} else {
				fmt.Fprintf(out, "%4d", day.Date.Day())
			}
			if (i+1)%7 == 0 {
				fmt.Fprintln(out)
			}
		}
		if len(month.Days)%7 != 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
	}

	// Dated task index under the grids.
	dates := make([]string, 0, len(grouped))
	for date := range grouped {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		for _, task := range grouped[date] {
			fmt.Fprintf(out, "%s  %s\n", date, task.Title)
		}
	}
	return exitcode.Success
}
