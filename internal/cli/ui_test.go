package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		stats  pipeline.Stats
		cached bool
		want   []string
		absent []string
	}{
		{"mosaic", pipeline.Stats{ItemCount: 3, TileCount: 3, RowCount: 1}, false, []string{"3 items", "3 tiles", "1 rows", labelFresh}, nil},
		{"treemap cached", pipeline.Stats{TileCount: 4}, true, []string{"4 tiles", labelCached}, []string{"items", "rows"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(tt.stats, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, missing %q", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("statsLine() = %q, should not contain %q", got, a)
				}
			}
		})
	}
}
