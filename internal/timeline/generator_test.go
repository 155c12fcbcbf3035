package timeline

import (
	"testing"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseISO(s)
	require.NoError(t, err)
	return d
}

func smallWindows() map[domain.ZoomLevel]Window {
	return map[domain.ZoomLevel]Window{
		domain.ZoomWeek:    {DaysBefore: 14, DaysAfter: 14},
		domain.ZoomMonth:   {DaysBefore: 31, DaysAfter: 31},
		domain.ZoomQuarter: {DaysBefore: 28, DaysAfter: 28},
		domain.ZoomYear:    {DaysBefore: 90, DaysAfter: 90},
	}
}

func TestGenerate_WeekZoomDailyCells(t *testing.T) {
	anchor := day(t, "2024-06-15") // Saturday; week starts Monday 2024-06-10
	res, err := Generate(anchor, domain.ZoomWeek, Options{
		Today:   anchor,
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Cells)

	assert.Equal(t, "2024-05-27", dateutil.FormatISO(res.Cells[0].Start),
		"window anchors to the start of the current week")

	// Contiguous daily sequence.
	for i := 1; i < len(res.Cells); i++ {
		assert.Equal(t, 1, dateutil.DayDiff(res.Cells[i-1].Start, res.Cells[i].Start))
		assert.Equal(t, res.Cells[i].Start, res.Cells[i].End, "daily cells are single days")
	}

	// Exactly one cell is flagged today.
	todayCount := 0
	for _, c := range res.Cells {
		if c.IsToday {
			todayCount++
			assert.Equal(t, "2024-06-15", dateutil.FormatISO(c.Start))
			assert.True(t, c.IsWeekend)
		}
	}
	assert.Equal(t, 1, todayCount)
}

func TestGenerate_MonthZoomAnchorsToMonthStart(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomMonth, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", dateutil.FormatISO(res.Cells[0].Start),
		"window anchors to the start of the current month")
}

func TestGenerate_QuarterZoomWeeklyCells(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomQuarter, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Cells)

	current := 0
	for _, c := range res.Cells {
		assert.Equal(t, time.Monday, c.Start.Weekday(), "weekly cells start on Monday")
		assert.Equal(t, 6, dateutil.DayDiff(c.Start, c.End), "each cell carries its week-end date")
		if c.IsToday {
			current++
			assert.Equal(t, "2024-06-10", dateutil.FormatISO(c.Start))
		}
	}
	assert.Equal(t, 1, current, "only the week containing today is current")
}

func TestGenerate_YearZoomMonthlyCells(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomYear, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Cells)

	for _, c := range res.Cells {
		assert.Equal(t, 1, c.Start.Day(), "monthly cells start on the 1st")
		next := dateutil.AddDays(c.End, 1)
		assert.Equal(t, 1, next.Day(), "cell end is the last day of the month")
	}
	assert.Equal(t, "2024-03-01", dateutil.FormatISO(res.Cells[0].Start))
}

func TestGenerate_HolidayAndEventFlags(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomWeek, Options{
		Today:         day(t, "2024-06-15"),
		Windows:       smallWindows(),
		Holidays:      map[string]bool{"2024-06-12": true},
		CompanyEvents: map[string]bool{"2024-06-13": true},
	})
	require.NoError(t, err)

	byDate := map[string]Cell{}
	for _, c := range res.Cells {
		byDate[dateutil.FormatISO(c.Start)] = c
	}
	assert.True(t, byDate["2024-06-12"].IsHoliday)
	assert.False(t, byDate["2024-06-12"].IsCompanyEvent)
	assert.True(t, byDate["2024-06-13"].IsCompanyEvent)
}

func TestGenerate_UnknownZoom(t *testing.T) {
	_, err := Generate(time.Now(), domain.ZoomLevel("decade"), Options{})
	assert.Error(t, err)
}

func TestGenerate_TotalPixelWidth(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomWeek, Options{
		Today:      day(t, "2024-06-15"),
		Windows:    smallWindows(),
		CellWidths: map[domain.ZoomLevel]int{domain.ZoomWeek: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, len(res.Cells)*10, res.TotalPixelWidth)
}

func TestBuildHeaders_GroupsDailyCellsByMonth(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomWeek, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)

	total := 0
	currents := 0
	for _, h := range res.Headers {
		total += h.Span
		if h.IsCurrent {
			currents++
			assert.Equal(t, "June 2024", h.Label)
		}
	}
	assert.Equal(t, len(res.Cells), total, "header spans cover every cell")
	assert.Equal(t, 1, currents, "exactly one current period")
}

func TestBuildHeaders_QuarterZoomGroupsByQuarter(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomQuarter, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)

	for _, h := range res.Headers {
		if h.IsCurrent {
			assert.Equal(t, "Q2 2024", h.Label)
		}
	}
}

func TestBuildHeaders_YearZoomGroupsByYear(t *testing.T) {
	res, err := Generate(day(t, "2024-01-15"), domain.ZoomYear, Options{
		Today:   day(t, "2024-01-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res.Headers), 2, "window spans two calendar years")
	assert.Equal(t, "2023", res.Headers[0].Label)
	assert.True(t, res.Headers[1].IsCurrent)
	assert.Equal(t, "2024", res.Headers[1].Label)
}
