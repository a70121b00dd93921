package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/leftysay/pkg/errors"
	"github.com/matzehuels/leftysay/pkg/pack"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ImageListModel - Interactive image selection
// =============================================================================

// ImageListModel is the bubbletea model behind --pick.
type ImageListModel struct {
	Pack     *pack.Pack
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewImageListModel creates a picker over pk's images.
func NewImageListModel(pk *pack.Pack) ImageListModel {
	return ImageListModel{Pack: pk, Height: 15}
}

func (m ImageListModel) Init() tea.Cmd {
	return nil
}

func (m ImageListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Pack.Images)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			if n > 0 {
				m.Cursor = n - 1
				m.Offset = max(0, n-m.Height)
			}
		case "enter":
			if n > 0 {
				m.Selected = m.Pack.Images[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m ImageListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pick an image from " + m.Pack.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	images := m.Pack.Images
	end := min(m.Offset+m.Height, len(images))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rel, err := filepath.Rel(m.Pack.Root, images[i])
		if err != nil {
			rel = images[i]
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(images[i])), ".")
		rows = append(rows, []string{cursor, filepath.Base(images[i]), ext, filepath.Dir(rel)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Image", "Type", "Folder").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(images))))

	return b.String()
}

// pickImage lets the user choose one of pk's images. The picker draws on
// stderr so the greeting on stdout stays clean. Quitting without a choice
// returns context.Canceled.
func pickImage(pk *pack.Pack) (string, error) {
	if len(pk.Images) == 0 {
		return "", errors.New(errors.ErrCodeNoImages, "pack %s has no images", pk.Name)
	}

	p := tea.NewProgram(NewImageListModel(pk), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("image picker: %w", err)
	}
	m, ok := final.(ImageListModel)
	if !ok || m.Selected == "" {
		return "", context.Canceled
	}
	return m.Selected, nil
}
