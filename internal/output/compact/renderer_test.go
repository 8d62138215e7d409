package compact

import (
	"testing"

	"github.com/jaa/cast2gif/internal/progress"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{percent: 0, want: "[--------]   0.0%"},
		{percent: 50, want: "[####----]  50.0%"},
		{percent: 140, want: "[########] 100.0%"},
		{percent: -3, want: "[--------]   0.0%"},
	}
	for _, tc := range tests {
		if got := RenderProgress(tc.percent, 8); got != tc.want {
			t.Fatalf("RenderProgress(%v) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestRenderPhaseLine(t *testing.T) {
	waiting := progress.Indicator{Name: progress.LabelSequencing, State: progress.StateWaiting}
	if got := RenderPhaseLine(waiting); got != "[waiting] Sequencing" {
		t.Fatalf("unexpected waiting line %q", got)
	}

	done := progress.Indicator{Name: progress.LabelRasterizing, State: progress.StateDone, Position: 4, Capacity: 4}
	want := "[done] Rasterizing [################] 100.0% (4/4)"
	if got := RenderPhaseLine(done); got != want {
		t.Fatalf("RenderPhaseLine = %q, want %q", got, want)
	}
}
