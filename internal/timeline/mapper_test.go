package timeline

import (
	"testing"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekCells(t *testing.T) []Cell {
	t.Helper()
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomWeek, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	return res.Cells
}

func TestMapRangeToPixels_DailyProportion(t *testing.T) {
	cells := weekCells(t) // starts 2024-05-27
	const w = 40

	span := MapRangeToPixels(day(t, "2024-05-29"), day(t, "2024-05-31"), cells, w, 0, domain.ZoomWeek)
	require.NotNil(t, span)
	assert.InDelta(t, 2*w, span.Left, 0.001, "two full days precede the bar")
	assert.InDelta(t, 3*w, span.Width, 0.001, "bar covers three inclusive days")
}

func TestMapRangeToPixels_OffscreenReturnsNil(t *testing.T) {
	cells := weekCells(t)

	assert.Nil(t, MapRangeToPixels(day(t, "2020-01-01"), day(t, "2020-02-01"), cells, 40, 0, domain.ZoomWeek))
	assert.Nil(t, MapRangeToPixels(day(t, "2030-01-01"), day(t, "2030-02-01"), cells, 40, 0, domain.ZoomWeek))
}

func TestMapRangeToPixels_ClampsPartialOverlap(t *testing.T) {
	cells := weekCells(t) // visible from 2024-05-27
	const w = 40

	span := MapRangeToPixels(day(t, "2024-05-20"), day(t, "2024-05-28"), cells, w, 0, domain.ZoomWeek)
	require.NotNil(t, span)
	assert.InDelta(t, 0, span.Left, 0.001, "start clamps to the visible span")
	assert.InDelta(t, 2*w, span.Width, 0.001, "only the visible two days render")
}

func TestMapRangeToPixels_MinimumWidth(t *testing.T) {
	cells := weekCells(t)

	// One-day bar at a narrow cell width still renders at the minimum.
	span := MapRangeToPixels(day(t, "2024-06-03"), day(t, "2024-06-03"), cells, 4, 0, domain.ZoomWeek)
	require.NotNil(t, span)
	assert.Equal(t, MinBarWidth, span.Width)
}

func TestMapRangeToPixels_ConfiguredMinimumWidth(t *testing.T) {
	cells := weekCells(t)

	span := MapRangeToPixels(day(t, "2024-06-03"), day(t, "2024-06-03"), cells, 4, 12.5, domain.ZoomWeek)
	require.NotNil(t, span)
	assert.Equal(t, 12.5, span.Width)

	// A bar already wider than the configured minimum is left alone.
	span = MapRangeToPixels(day(t, "2024-06-03"), day(t, "2024-06-09"), cells, 40, 12.5, domain.ZoomWeek)
	require.NotNil(t, span)
	assert.InDelta(t, 7*40, span.Width, 0.001)
}

func TestMapRangeToPixels_InvertedRange(t *testing.T) {
	cells := weekCells(t)
	assert.Nil(t, MapRangeToPixels(day(t, "2024-06-10"), day(t, "2024-06-01"), cells, 40, 0, domain.ZoomWeek))
}

func TestMapPixelToDate_RoundTripDaily(t *testing.T) {
	cells := weekCells(t)
	const w = 40

	for _, iso := range []string{"2024-05-27", "2024-06-01", "2024-06-15", "2024-06-24"} {
		d := day(t, iso)
		span := MapRangeToPixels(d, d, cells, w, 0, domain.ZoomWeek)
		require.NotNil(t, span, iso)
		got := MapPixelToDate(span.Left, cells, w, domain.ZoomWeek)
		assert.Equal(t, iso, dateutil.FormatISO(got), "round-trip must land on the same day")
	}
}

func TestMapPixelToDate_SnapsToNearestCell(t *testing.T) {
	cells := weekCells(t)
	const w = 40

	// 1.4 cells in: rounds down to index 1.
	got := MapPixelToDate(1.4*w, cells, w, domain.ZoomWeek)
	assert.Equal(t, "2024-05-28", dateutil.FormatISO(got))

	// 1.6 cells in: rounds up to index 2.
	got = MapPixelToDate(1.6*w, cells, w, domain.ZoomWeek)
	assert.Equal(t, "2024-05-29", dateutil.FormatISO(got))
}

func TestMapPixelToDate_ClampsOutOfBounds(t *testing.T) {
	cells := weekCells(t)
	const w = 40

	assert.Equal(t, cells[0].Start, MapPixelToDate(-100, cells, w, domain.ZoomWeek))
	last := cells[len(cells)-1].Start
	assert.Equal(t, last, MapPixelToDate(1e9, cells, w, domain.ZoomWeek))
}

func TestMapPixelToDate_WeeklyCellsProportional(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomQuarter, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	cells := res.Cells
	const w = 36

	d := day(t, "2024-06-12")
	span := MapRangeToPixels(d, d, cells, w, 0, domain.ZoomQuarter)
	require.NotNil(t, span)
	got := MapPixelToDate(span.Left, cells, w, domain.ZoomQuarter)
	assert.LessOrEqual(t, absDays(got, d), 7, "weekly round-trip stable to one cell")
}

func TestMapPixelToDate_MonthlyCellsProportional(t *testing.T) {
	res, err := Generate(day(t, "2024-06-15"), domain.ZoomYear, Options{
		Today:   day(t, "2024-06-15"),
		Windows: smallWindows(),
	})
	require.NoError(t, err)
	cells := res.Cells
	const w = 64

	d := day(t, "2024-05-20")
	span := MapRangeToPixels(d, d, cells, w, 0, domain.ZoomYear)
	require.NotNil(t, span)
	got := MapPixelToDate(span.Left, cells, w, domain.ZoomYear)
	assert.LessOrEqual(t, absDays(got, d), 31, "monthly round-trip stable to one cell")
}

func absDays(a, b time.Time) int {
	d := dateutil.DayDiff(a, b)
	if d < 0 {
		return -d
	}
	return d
}
