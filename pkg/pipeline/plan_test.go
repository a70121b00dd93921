package pipeline

import (
	"testing"

	"github.com/matzehuels/leftysay/pkg/chafa"
	"github.com/matzehuels/leftysay/pkg/compose"
	"github.com/matzehuels/leftysay/pkg/term"
)

func TestNewPlan(t *testing.T) {
	tests := []struct {
		name       string
		env        term.EnvSignals
		req        Request
		wantLayout compose.Mode
		wantBubble int
		wantCells  chafa.Cells
	}{
		{
			name:       "vertical wide terminal caps bubble",
			env:        term.EnvSignals{Columns: 120, Rows: 40},
			req:        Request{Layout: compose.Vertical, MaxHeightRatio: 0.5, ImagePath: "x", BubbleEnabled: true},
			wantLayout: compose.Vertical,
			wantBubble: MaxBubbleWidth,
			wantCells:  chafa.Cells{Width: 120, Height: 20},
		},
		{
			name:       "vertical narrow terminal",
			env:        term.EnvSignals{Columns: 30, Rows: 10},
			req:        Request{Layout: compose.Vertical, MaxHeightRatio: 0.55, ImagePath: "x", BubbleEnabled: true},
			wantLayout: compose.Vertical,
			wantBubble: 26,
			wantCells:  chafa.Cells{Width: 30, Height: 5},
		},
		{
			name:       "side splits columns",
			env:        term.EnvSignals{Columns: 80, Rows: 24},
			req:        Request{Layout: compose.Side, Format: term.FormatSymbols, MaxHeightRatio: 0.55, ImagePath: "x", BubbleEnabled: true},
			wantLayout: compose.Side,
			wantBubble: 36,
			wantCells:  chafa.Cells{Width: 38, Height: 13},
		},
		{
			name:       "side falls back for kitty",
			env:        term.EnvSignals{Columns: 80, Rows: 24},
			req:        Request{Layout: compose.Side, Format: term.FormatKitty, MaxHeightRatio: 0.55, ImagePath: "x", BubbleEnabled: true},
			wantLayout: compose.Vertical,
			wantBubble: 60,
			wantCells:  chafa.Cells{Width: 80, Height: 13},
		},
		{
			name:       "tiny ratio keeps one row",
			env:        term.EnvSignals{Columns: 80, Rows: 3},
			req:        Request{Layout: compose.Vertical, MaxHeightRatio: 0.1, ImagePath: "x", BubbleEnabled: true},
			wantLayout: compose.Vertical,
			wantBubble: 60,
			wantCells:  chafa.Cells{Width: 80, Height: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.req.Format == "" {
				tt.req.Format = term.FormatAuto
			}
			p := NewPlan(tt.env, tt.req)
			if p.Layout != tt.wantLayout {
				t.Errorf("Layout = %s, want %s", p.Layout, tt.wantLayout)
			}
			if p.BubbleWidth != tt.wantBubble {
				t.Errorf("BubbleWidth = %d, want %d", p.BubbleWidth, tt.wantBubble)
			}
			if p.ImageCells != tt.wantCells {
				t.Errorf("ImageCells = %v, want %v", p.ImageCells, tt.wantCells)
			}
		})
	}
}

func TestImageRows(t *testing.T) {
	tests := []struct {
		rows  int
		ratio float64
		want  int
	}{
		{24, 0.55, 13},
		{40, 1, 40},
		{10, 0.05, 1},
		{0, 0.55, 1},
	}
	for _, tt := range tests {
		if got := ImageRows(tt.rows, tt.ratio); got != tt.want {
			t.Errorf("ImageRows(%d, %v) = %d, want %d", tt.rows, tt.ratio, got, tt.want)
		}
	}
}
