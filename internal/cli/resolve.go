package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mwhitford/planline/internal/domain"
)

// resolveProjectID resolves a project identifier which can be an exact name
// (case-insensitive), a full UUID, or a UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact name match (case-insensitive)
	for _, p := range projects {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

type entityMatch struct {
	Type domain.EntityType
	ID   string
	Name string
}

// resolveEntity resolves a phase or subphase identifier within one project.
// Input can be an exact name (case-insensitive), a full UUID, or a UUID
// prefix; matching walks the whole phase/subphase tree.
func resolveEntity(ctx context.Context, app *App, projectID, input string) (entityMatch, error) {
	if input == "" {
		return entityMatch{}, fmt.Errorf("phase or subphase ID is required")
	}

	project, err := app.Tree.Load(ctx, projectID)
	if err != nil {
		return entityMatch{}, err
	}

	var all []entityMatch
	for _, ph := range project.Phases {
		all = append(all, entityMatch{Type: domain.EntityPhase, ID: ph.ID, Name: ph.Name})
		all = append(all, collectSubphases(ph.Subphases)...)
	}

	for _, m := range all {
		if strings.EqualFold(m.Name, input) {
			return m, nil
		}
	}
	for _, m := range all {
		if m.ID == input {
			return m, nil
		}
	}

	var matches []entityMatch
	for _, m := range all {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m)
		}
	}

	switch len(matches) {
	case 0:
		return entityMatch{}, fmt.Errorf("phase or subphase not found in project: %q", input)
	case 1:
		return matches[0], nil
	default:
		return entityMatch{}, fmt.Errorf("ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func collectSubphases(subs []*domain.Subphase) []entityMatch {
	var out []entityMatch
	for _, sp := range subs {
		out = append(out, entityMatch{Type: domain.EntitySubphase, ID: sp.ID, Name: sp.Name})
		out = append(out, collectSubphases(sp.Children)...)
	}
	return out
}
