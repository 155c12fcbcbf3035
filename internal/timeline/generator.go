// Package timeline generates the calendar grid a project schedule is drawn
// against and maps date ranges to pixel spans and back. Cell granularity
// follows the zoom level: one cell per day at week/month zoom, per
// Monday-start week at quarter zoom, per month at year zoom.
package timeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

// Options configures a single generation run.
type Options struct {
	// Today overrides the current day; zero means time.Now().
	Today time.Time
	// Holidays and CompanyEvents are sets of ISO "YYYY-MM-DD" dates.
	Holidays      map[string]bool
	CompanyEvents map[string]bool
	// Windows and CellWidths overlay the default tables; nil entries fall
	// back to the defaults.
	Windows    map[domain.ZoomLevel]Window
	CellWidths map[domain.ZoomLevel]int
}

func (o Options) today() time.Time {
	if o.Today.IsZero() {
		return dateutil.Normalize(time.Now())
	}
	return dateutil.Normalize(o.Today)
}

func (o Options) window(zoom domain.ZoomLevel) Window {
	if w, ok := o.Windows[zoom]; ok {
		return w
	}
	return DefaultWindows[zoom]
}

func (o Options) cellWidth(zoom domain.ZoomLevel) int {
	if w, ok := o.CellWidths[zoom]; ok && w > 0 {
		return w
	}
	return DefaultCellWidths[zoom]
}

// Generate produces the ordered cell sequence, grouped headers, and total
// pixel width for the given anchor date and zoom level.
func Generate(anchor time.Time, zoom domain.ZoomLevel, opts Options) (*Result, error) {
	anchor = dateutil.Normalize(anchor)
	var cells []Cell
	switch zoom {
	case domain.ZoomWeek:
		cells = dailyCells(dateutil.StartOfWeek(anchor), zoom, opts)
	case domain.ZoomMonth:
		cells = dailyCells(dateutil.StartOfMonth(anchor), zoom, opts)
	case domain.ZoomQuarter:
		cells = weeklyCells(anchor, opts)
	case domain.ZoomYear:
		cells = monthlyCells(anchor, opts)
	default:
		return nil, fmt.Errorf("unknown zoom level %q", zoom)
	}

	return &Result{
		Cells:           cells,
		Headers:         BuildHeaders(cells, zoom, opts.today()),
		TotalPixelWidth: len(cells) * opts.cellWidth(zoom),
	}, nil
}

// dailyCells emits one cell per calendar day, windowed around the anchored
// period start.
func dailyCells(periodStart time.Time, zoom domain.ZoomLevel, opts Options) []Cell {
	w := opts.window(zoom)
	today := opts.today()
	first := dateutil.AddDays(periodStart, -w.DaysBefore)
	last := dateutil.AddDays(periodStart, w.DaysAfter)

	total := dateutil.DayDiff(first, last) + 1
	cells := make([]Cell, 0, total)
	for d := first; !d.After(last); d = dateutil.AddDays(d, 1) {
		iso := dateutil.FormatISO(d)
		_, week := d.ISOWeek()
		cells = append(cells, Cell{
			Start:          d,
			End:            d,
			Label:          strconv.Itoa(d.Day()),
			IsToday:        dateutil.SameDay(d, today),
			IsWeekend:      dateutil.IsWeekend(d),
			IsHoliday:      opts.Holidays[iso],
			IsCompanyEvent: opts.CompanyEvents[iso],
			WeekNumber:     week,
			Month:          d.Month(),
			Year:           d.Year(),
		})
	}
	return cells
}

// weeklyCells emits one cell per Monday-start calendar week; each carries an
// explicit week-end date.
func weeklyCells(anchor time.Time, opts Options) []Cell {
	w := opts.window(domain.ZoomQuarter)
	today := opts.today()
	first := dateutil.StartOfWeek(dateutil.AddDays(anchor, -w.DaysBefore))
	last := dateutil.AddDays(anchor, w.DaysAfter)

	var cells []Cell
	for ws := first; !ws.After(last); ws = dateutil.AddDays(ws, 7) {
		we := dateutil.AddDays(ws, 6)
		_, week := ws.ISOWeek()
		cells = append(cells, Cell{
			Start:          ws,
			End:            we,
			Label:          fmt.Sprintf("W%d", week),
			IsToday:        !today.Before(ws) && !today.After(we),
			IsHoliday:      rangeHasAny(ws, we, opts.Holidays),
			IsCompanyEvent: rangeHasAny(ws, we, opts.CompanyEvents),
			WeekNumber:     week,
			Month:          ws.Month(),
			Year:           ws.Year(),
		})
	}
	return cells
}

// monthlyCells emits one cell per calendar month.
func monthlyCells(anchor time.Time, opts Options) []Cell {
	w := opts.window(domain.ZoomYear)
	today := opts.today()
	first := dateutil.StartOfMonth(dateutil.AddDays(anchor, -w.DaysBefore))
	last := dateutil.AddDays(anchor, w.DaysAfter)

	var cells []Cell
	for ms := first; !ms.After(last); ms = dateutil.StartOfMonth(dateutil.AddDays(ms, 32)) {
		me := dateutil.AddDays(dateutil.StartOfMonth(dateutil.AddDays(ms, 32)), -1)
		cells = append(cells, Cell{
			Start:          ms,
			End:            me,
			Label:          ms.Format("Jan"),
			IsToday:        today.Year() == ms.Year() && today.Month() == ms.Month(),
			IsHoliday:      rangeHasAny(ms, me, opts.Holidays),
			IsCompanyEvent: rangeHasAny(ms, me, opts.CompanyEvents),
			Month:          ms.Month(),
			Year:           ms.Year(),
		})
	}
	return cells
}

func rangeHasAny(start, end time.Time, dates map[string]bool) bool {
	if len(dates) == 0 {
		return false
	}
	for d := start; !d.After(end); d = dateutil.AddDays(d, 1) {
		if dates[dateutil.FormatISO(d)] {
			return true
		}
	}
	return false
}

// BuildHeaders groups consecutive cells sharing a coarser period into
// labelled spans for the top header row: months over daily cells, quarters
// over weekly cells, years over monthly cells.
func BuildHeaders(cells []Cell, zoom domain.ZoomLevel, today time.Time) []HeaderSpan {
	if len(cells) == 0 {
		return nil
	}

	type group struct {
		key     string
		label   string
		current bool
	}
	groupOf := func(c Cell) group {
		switch zoom {
		case domain.ZoomQuarter:
			q := dateutil.Quarter(c.Start)
			return group{
				key:     fmt.Sprintf("%d-Q%d", c.Year, q),
				label:   fmt.Sprintf("Q%d %d", q, c.Year),
				current: today.Year() == c.Year && dateutil.Quarter(today) == q,
			}
		case domain.ZoomYear:
			return group{
				key:     strconv.Itoa(c.Year),
				label:   strconv.Itoa(c.Year),
				current: today.Year() == c.Year,
			}
		default:
			return group{
				key:     fmt.Sprintf("%d-%02d", c.Year, c.Month),
				label:   fmt.Sprintf("%s %d", c.Start.Format("January"), c.Year),
				current: today.Year() == c.Year && today.Month() == c.Month,
			}
		}
	}

	var headers []HeaderSpan
	cur := groupOf(cells[0])
	span := 0
	for _, c := range cells {
		g := groupOf(c)
		if g.key != cur.key {
			headers = append(headers, HeaderSpan{Label: cur.label, Span: span, IsCurrent: cur.current})
			cur = g
			span = 0
		}
		span++
	}
	headers = append(headers, HeaderSpan{Label: cur.label, Span: span, IsCurrent: cur.current})
	return headers
}
