// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tkarvinen/libris/googlebooks"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a volume.
	ActionSelected
	// ActionSkipped indicates the user dismissed the selection.
	ActionSkipped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *googlebooks.Volume
}

type volumeItem struct {
	googlebooks.Volume
}

func (i volumeItem) Title() string {
	return fmt.Sprintf("%s (%s)", i.DisplayTitle(), i.Volume.Year())
}

func (i volumeItem) FilterValue() string {
	return i.DisplayTitle()
}

func (i volumeItem) Description() string {
	return i.VolumeInfo.Description
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	metadataStyle lipgloss.Style
	descStyle     lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		descStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type volumeDelegate struct {
	styles itemStyles
}

func newDelegate() volumeDelegate {
	return volumeDelegate{styles: newItemStyles()}
}

func (d volumeDelegate) Height() int                         { return 4 }
func (d volumeDelegate) Spacing() int                        { return 1 }
func (d volumeDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d volumeDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	result, ok := item.(volumeItem)
	if !ok {
		return
	}

	description := result.VolumeInfo.Description
	if len(description) > 0 {
		description = truncate(description, m.Width()-4)
	}

	titleLine := d.styles.titleStyle.Render(fmt.Sprintf("%s (%s)", result.DisplayTitle(), result.Volume.Year()))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(result.Volume, m.Width()-4))
	descLine := d.styles.descStyle.Render(description)

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, metadataLine, descLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list        list.Model
	searchTitle string
	result      SelectionResult
}

func newModel(title string, items []volumeItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := newDelegate()
	l := list.New(listItems, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:        l,
		searchTitle: title,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(volumeItem); ok {
				volume := selected.Volume
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &volume,
				}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for: %s", m.searchTitle))
	listView := m.list.View()
	help := helpStyle.Render("Up/Down navigate | Enter select | q/esc dismiss")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectVolume presents an interactive selection UI for volume search results.
func SelectVolume(title string, volumes []googlebooks.Volume) (SelectionResult, error) {
	if len(volumes) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]volumeItem, len(volumes))
	for i, volume := range volumes {
		items[i] = volumeItem{Volume: volume}
	}
	m := newModel(title, items)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata creates the metadata line with authors, publisher, page count and ISBN.
func formatMetadata(volume googlebooks.Volume, availableWidth int) string {
	var parts []string

	if len(volume.VolumeInfo.Authors) > 0 {
		parts = append(parts, strings.Join(volume.VolumeInfo.Authors, ", "))
	}

	if volume.VolumeInfo.Publisher != "" {
		parts = append(parts, volume.VolumeInfo.Publisher)
	}

	if volume.VolumeInfo.PageCount > 0 {
		parts = append(parts, fmt.Sprintf("%dp", volume.VolumeInfo.PageCount))
	}

	if isbn := volume.PrimaryISBN(); isbn != "" {
		parts = append(parts, "ISBN "+isbn)
	}

	if len(parts) == 0 {
		return "No metadata available"
	}

	metadata := strings.Join(parts, " | ")
	if availableWidth > 0 && len(metadata) > availableWidth {
		metadata = truncate(metadata, availableWidth)
	}

	return metadata
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
