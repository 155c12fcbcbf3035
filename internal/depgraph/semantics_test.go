package depgraph

import (
	"testing"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredStart(t *testing.T) {
	day := func(s string) time.Time {
		d, err := dateutil.ParseISO(s)
		require.NoError(t, err)
		return d
	}
	predStart := day("2024-02-01")
	predEnd := day("2024-02-05")

	tests := []struct {
		name     string
		depType  domain.DependencyType
		duration int
		lag      int
		want     string
	}{
		{"FS no lag", domain.FinishToStart, 3, 0, "2024-02-06"},
		{"FS lag 2", domain.FinishToStart, 3, 2, "2024-02-08"},
		{"FS negative lag", domain.FinishToStart, 3, -1, "2024-02-05"},
		{"SS no lag", domain.StartToStart, 3, 0, "2024-02-01"},
		{"SS lag 4", domain.StartToStart, 3, 4, "2024-02-05"},
		{"FF no lag", domain.FinishToFinish, 3, 0, "2024-02-03"},
		{"FF lag 1", domain.FinishToFinish, 3, 1, "2024-02-04"},
		{"SF no lag", domain.StartToFinish, 3, 0, "2024-01-30"},
		{"SF lag 2", domain.StartToFinish, 3, 2, "2024-02-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RequiredStart(tt.depType, predStart, predEnd, tt.duration, tt.lag)
			assert.Equal(t, tt.want, dateutil.FormatISO(got))
		})
	}
}
