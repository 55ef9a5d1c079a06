package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pado/internal/calendar"
	"github.com/julianstephens/pado/internal/constants"
	"github.com/julianstephens/pado/internal/models"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *Context) error {
	year, month, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	records := ctx.Store.GetMonthRecords(year, month)
	byDate := make(map[string]models.DayRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	ctx.printf("%s\n\n", calendar.Title(year, month))
	ctx.printf("%s\n", strings.Join(cells(calendar.WeekdayLabels[:]), ""))
	for _, week := range calendar.Weeks(year, month) {
		var row []string
		for _, day := range week {
			switch r, ok := byDate[calendar.DateKey(year, month, day)]; {
			case day == 0:
				row = append(row, "")
			case ok:
				row = append(row, r.WeatherType.Info().Emoji)
			default:
				row = append(row, fmt.Sprintf("%d", day))
			}
		}
		ctx.printf("%s\n", strings.Join(cells(row), ""))
	}

	if len(records) == 0 {
		ctx.println("\n기록이 없어요.")
		return nil
	}
	ctx.println()
	for _, r := range records {
		info := r.WeatherType.Info()
		diary := "-"
		if r.Diary != nil {
			diary = string(r.Diary.Type)
		}
		ctx.printf("  %s  %s %-6s diary:%-6s breathing:%d\n", r.Date, info.Emoji, info.Korean, diary, len(r.Breathings))
	}
	return nil
}

func (c *CalendarCmd) resolve(ctx *Context) (int, time.Month, error) {
	if c.Month == "" {
		today, _ := time.Parse(constants.DateFormat, ctx.Store.Today())
		return today.Year(), today.Month(), nil
	}
	return calendar.ParseMonth(c.Month)
}

var cellStyle = lipgloss.NewStyle().Width(4)

// cells pads each entry to a fixed-width column, counting wide runes
func cells(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = cellStyle.Render(s)
	}
	return out
}
