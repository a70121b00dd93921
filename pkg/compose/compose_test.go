package compose

import (
	"reflect"
	"testing"

	"github.com/matzehuels/leftysay/pkg/block"
	"github.com/matzehuels/leftysay/pkg/errors"
)

func ptr(b block.Block) *block.Block { return &b }

func TestComposeVertical(t *testing.T) {
	bubble := ptr(block.New([]string{"b1", "b2"}))
	image := ptr(block.New([]string{"i1", "i2", "i3"}))

	got, err := Compose(bubble, image, Options{BubbleEnabled: true, Mode: Vertical})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b1", "b2", "i1", "i2", "i3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compose = %q, want %q", got, want)
	}
}

func TestComposeSingleBlock(t *testing.T) {
	bubble := ptr(block.New([]string{"hello"}))
	image := ptr(block.New([]string{"##"}))

	tests := []struct {
		name   string
		bubble *block.Block
		image  *block.Block
		opts   Options
		want   []string
	}{
		{"bubble disabled shows image", bubble, image, Options{BubbleEnabled: false}, []string{"##"}},
		{"image missing shows bubble", bubble, nil, Options{BubbleEnabled: true}, []string{"hello"}},
		{"empty image shows bubble", bubble, ptr(block.Block{}), Options{BubbleEnabled: true, Mode: Side}, []string{"hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compose(tt.bubble, tt.image, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compose = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeNoContent(t *testing.T) {
	bubble := ptr(block.New([]string{"hello"}))
	cases := []struct {
		bubble *block.Block
		image  *block.Block
		opts   Options
	}{
		{bubble, nil, Options{BubbleEnabled: false}},
		{nil, nil, Options{BubbleEnabled: true}},
		{ptr(block.Block{}), ptr(block.Block{}), Options{BubbleEnabled: true}},
	}
	for i, c := range cases {
		if _, err := Compose(c.bubble, c.image, c.opts); !errors.Is(err, errors.ErrCodeNoContent) {
			t.Errorf("case %d: error = %v, want NO_CONTENT", i, err)
		}
	}
}

func TestComposeSideAlignsHeights(t *testing.T) {
	image := ptr(block.New([]string{"AAA", "A", "AA"}))
	bubble := ptr(block.New([]string{"bb"}))

	got, err := Compose(bubble, image, Options{BubbleEnabled: true, Mode: Side, Gap: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"AAA" + sgrReset + " bb",
		"A  " + sgrReset + "   ",
		"AA " + sgrReset + "   ",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Compose = %q, want %q", got, want)
	}
}

func TestComposeSideTallBubble(t *testing.T) {
	image := ptr(block.New([]string{"II"}))
	bubble := ptr(block.New([]string{"b1", "b2", "b3"}))

	got, err := Compose(bubble, image, Options{BubbleEnabled: true, Mode: Side})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3", len(got))
	}
	if got[1] != "    b2" || got[2] != "    b3" {
		t.Errorf("padded rows = %q", got[1:])
	}
}

func TestComposeSideIgnoresEscapesInWidth(t *testing.T) {
	colored := "\x1b[38;5;1m█\x1b[0m"
	image := ptr(block.New([]string{colored, "██"}))
	bubble := ptr(block.New([]string{"x", "y"}))

	got, err := Compose(bubble, image, Options{BubbleEnabled: true, Mode: Side, Gap: -1})
	if err != nil {
		t.Fatal(err)
	}
	if want := colored + " " + sgrReset + "x"; got[0] != want {
		t.Errorf("line 0 = %q, want %q", got[0], want)
	}
	// Both rows put the bubble at the same visible column.
	for i, line := range got {
		if w := block.Width(line); w != 3 {
			t.Errorf("line %d width = %d, want 3", i, w)
		}
	}
}

func TestComposeDoesNotAliasInput(t *testing.T) {
	image := ptr(block.New([]string{"a"}))
	got, _ := Compose(nil, image, Options{})
	got[0] = "changed"
	if image.Lines[0] != "a" {
		t.Error("Compose output aliases the input block")
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Vertical, "vertical": Vertical, "SIDE": Side, "horizontal": Side} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMode("diagonal"); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("ParseMode(diagonal) error = %v", err)
	}
}
