package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/leftysay/pkg/pack"
	"github.com/matzehuels/leftysay/pkg/paths"
)

// printPackList writes a table of installed packs to w.
func printPackList(w io.Writer, packs []*pack.Pack) {
	if len(packs) == 0 {
		fmt.Fprintln(w, "No packs found. Searched:")
		for _, dir := range paths.PackSearchPaths() {
			fmt.Fprintln(w, "  "+dir)
		}
		return
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pack", "Version", "License", "Images", "Messages", "Description").
		Rows(packRows(packs)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return nameStyle
			case col == 3 || col == 4:
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	for _, pk := range packs {
		fmt.Fprintln(w, StyleDim.Render(pk.Name+": "+imageNames(pk)))
	}
}

func packRows(packs []*pack.Pack) [][]string {
	rows := make([][]string, 0, len(packs))
	for _, pk := range packs {
		rows = append(rows, []string{
			pk.Name,
			orDash(pk.Version),
			orDash(pk.License),
			strconv.Itoa(len(pk.Images)),
			strconv.Itoa(len(pk.Messages)),
			orDash(pk.Description),
		})
	}
	return rows
}

// imageNames lists a pack's image file names, comma separated.
func imageNames(pk *pack.Pack) string {
	names := make([]string, len(pk.Images))
	for i, img := range pk.Images {
		names[i] = filepath.Base(img)
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
