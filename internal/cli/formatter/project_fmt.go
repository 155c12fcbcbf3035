package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// RenderProjectSummary renders the one-line header block for a project.
func RenderProjectSummary(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(Header(p.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  ID:     %s\n", Dim(p.ID)))
	b.WriteString(fmt.Sprintf("  Dates:  %s → %s (%d days)\n",
		dateutil.FormatISO(p.StartDate), dateutil.FormatISO(p.EndDate),
		dateutil.DurationDays(p.StartDate, p.EndDate)))
	b.WriteString(fmt.Sprintf("  Phases: %d\n", len(p.Phases)))
	return b.String()
}

// RenderProjectTree renders the phase/subphase tree with dates, milestone
// markers, completion badges, and dependency annotations. Entities whose key
// appears in critical are highlighted red.
func RenderProjectTree(p *domain.Project, critical map[string]bool) string {
	var b strings.Builder
	for i, ph := range p.Phases {
		last := i == len(p.Phases)-1
		conn := treeBranch
		if last {
			conn = treeCorner
		}
		b.WriteString(Dim(conn))
		pct, hasPct := ph.EffectiveCompletion()
		b.WriteString(entityLine(ph.Name, ph.StartDate, ph.EndDate, ph.IsMilestone,
			pct, hasPct, ph.Dependencies, critical["phase-"+ph.ID]))
		b.WriteString("\n")

		prefix := treePipe
		if last {
			prefix = treeBlank
		}
		renderSubphases(&b, ph.Subphases, prefix, critical)
	}
	return b.String()
}

func renderSubphases(b *strings.Builder, subs []*domain.Subphase, prefix string, critical map[string]bool) {
	for i, sp := range subs {
		last := i == len(subs)-1
		conn := treeBranch
		if last {
			conn = treeCorner
		}
		b.WriteString(Dim(prefix + conn))
		pct, hasPct := sp.EffectiveCompletion()
		b.WriteString(entityLine(sp.Name, sp.StartDate, sp.EndDate, sp.IsMilestone,
			pct, hasPct, sp.Dependencies, critical["subphase-"+sp.ID]))
		b.WriteString("\n")

		child := prefix + treePipe
		if last {
			child = prefix + treeBlank
		}
		renderSubphases(b, sp.Children, child, critical)
	}
}

func entityLine(name string, start, end time.Time, milestone bool, pct float64, hasPct bool, deps []domain.Dependency, isCritical bool) string {
	var b strings.Builder

	if milestone {
		b.WriteString(StylePurple.Render("◆ "))
	}
	if isCritical {
		b.WriteString(StyleCritical.Render(name))
	} else {
		b.WriteString(StyleFg.Render(name))
	}
	b.WriteString(Dim(fmt.Sprintf("  %s → %s", dateutil.FormatISO(start), dateutil.FormatISO(end))))

	if hasPct {
		b.WriteString(" " + StyleGreen.Render(fmt.Sprintf("%.0f%%", pct)))
	}
	for _, d := range deps {
		b.WriteString(" " + StyleYellow.Render(DependencyBadge(d)))
	}
	return b.String()
}

// DependencyBadge renders a compact edge annotation such as "FS+2←a1b2c3d4".
func DependencyBadge(d domain.Dependency) string {
	lag := ""
	if d.LagDays != 0 {
		lag = fmt.Sprintf("%+d", d.LagDays)
	}
	return fmt.Sprintf("%s%s←%s", d.Type, lag, shortID(d.PredecessorID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
