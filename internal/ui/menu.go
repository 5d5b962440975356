package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Results of RunMenu that are not item IDs.
const (
	MenuActionBack = "__back__"
	MenuActionQuit = "__quit__"
)

// ErrNotInteractive is returned when a menu cannot take over the terminal.
var ErrNotInteractive = errors.New("non-interactive terminal")

// MenuItem is one entry in a menu.
type MenuItem struct {
	ID        string
	TitleText string
	Details   string
}

// Title implements list.DefaultItem.
func (m MenuItem) Title() string { return m.TitleText }

// Description implements list.DefaultItem.
func (m MenuItem) Description() string { return m.Details }

// FilterValue implements list.Item.
func (m MenuItem) FilterValue() string { return m.TitleText + " " + m.Details }

// InfoSection is a titled block of label/value lines shown beside the menu.
type InfoSection struct {
	Title string
	Lines []InfoLine
}

// InfoLine is one label/value pair in an InfoSection.
type InfoLine struct {
	Label string
	Value string
}

// MenuOption configures RunMenu.
type MenuOption func(*menuConfig)

type menuConfig struct {
	backLabel string
	selected  string
	sections  []InfoSection
}

// WithBackNavigation makes esc and q return MenuActionBack instead of quitting.
func WithBackNavigation(label string) MenuOption {
	return func(cfg *menuConfig) {
		cfg.backLabel = strings.TrimSpace(label)
		if cfg.backLabel == "" {
			cfg.backLabel = "Back"
		}
	}
}

// WithInitialSelectionID highlights the item with this ID when the menu opens.
func WithInitialSelectionID(id string) MenuOption {
	return func(cfg *menuConfig) {
		cfg.selected = strings.TrimSpace(id)
	}
}

// WithInfoSection adds a block to the side panel.
func WithInfoSection(section InfoSection) MenuOption {
	return func(cfg *menuConfig) {
		cfg.sections = append(cfg.sections, section)
	}
}

// RunMenu shows items full-screen and returns the chosen item ID, or
// MenuActionBack / MenuActionQuit.
func RunMenu(title, subtitle string, items []MenuItem, options ...MenuOption) (string, error) {
	if !IsInteractiveTerminal() {
		return "", ErrNotInteractive
	}
	var cfg menuConfig
	for _, opt := range options {
		opt(&cfg)
	}

	result, err := tea.NewProgram(newMenuModel(title, subtitle, items, cfg)).Run()
	if err != nil {
		return "", fmt.Errorf("running menu: %w", err)
	}
	m, ok := result.(menuModel)
	if !ok {
		return MenuActionQuit, nil
	}
	return m.choice, nil
}

type menuKeys struct {
	Open   key.Binding
	Jump   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func newMenuKeys(backLabel string) menuKeys {
	k := menuKeys{
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Jump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "jump")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	if backLabel != "" {
		k.Back = key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", strings.ToLower(backLabel)))
		k.Quit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	}
	return k
}

func (k menuKeys) ShortHelp() []key.Binding {
	if k.Back.Enabled() {
		return []key.Binding{k.Open, k.Jump, k.Filter, k.Back}
	}
	return []key.Binding{k.Open, k.Jump, k.Filter, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type menuModel struct {
	list     list.Model
	help     help.Model
	keys     menuKeys
	title    string
	subtitle string
	sections []InfoSection

	width  int
	height int

	choice string
	done   bool
}

func newMenuModel(title, subtitle string, items []MenuItem, cfg menuConfig) menuModel {
	listItems := make([]list.Item, len(items))
	selected := 0
	for i, item := range items {
		listItems[i] = item
		if cfg.selected != "" && item.ID == cfg.selected {
			selected = i
		}
	}

	l := list.New(listItems, newMenuDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Select(selected)

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(string(Accent))).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(string(Muted)))

	return menuModel{
		list:     l,
		help:     h,
		keys:     newMenuKeys(cfg.backLabel),
		title:    title,
		subtitle: subtitle,
		sections: cfg.sections,
	}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		layout := calculateMenuLayout(m.width, m.height)
		m.list.SetSize(layout.listWidth, layout.listHeight)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m.finish(MenuActionQuit)
		}
		// While filtering every key edits the filter.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Open):
			if item, ok := m.list.SelectedItem().(MenuItem); ok {
				return m.finish(item.ID)
			}
		case key.Matches(msg, m.keys.Jump):
			if id, ok := m.jump(int(msg.String()[0] - '0')); ok {
				return m.finish(id)
			}
		case m.list.FilterState() == list.FilterApplied && msg.String() == "esc":
			// esc clears an applied filter before it navigates.
		case key.Matches(msg, m.keys.Back):
			return m.finish(MenuActionBack)
		case key.Matches(msg, m.keys.Quit):
			return m.finish(MenuActionQuit)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m menuModel) finish(choice string) (tea.Model, tea.Cmd) {
	m.choice = choice
	m.done = true
	return m, tea.Quit
}

// jump selects the n-th item on the current page.
func (m *menuModel) jump(n int) (string, bool) {
	visible := m.list.VisibleItems()
	idx := m.list.Index() - m.list.Cursor() + n - 1
	if n < 1 || idx < 0 || idx >= len(visible) {
		return "", false
	}
	item, ok := visible[idx].(MenuItem)
	if !ok {
		return "", false
	}
	m.list.Select(idx)
	return item.ID, true
}

func (m menuModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	width, height := m.width, m.height
	if width <= 0 {
		width = terminalWidth()
	}
	if height <= 0 {
		height = 26
	}
	layout := calculateMenuLayout(width, height)

	left := lipgloss.NewStyle().Width(layout.leftWidth).Render(m.listPanel(layout.leftWidth))
	right := lipgloss.NewStyle().
		Width(layout.rightWidth).
		MaxHeight(layout.panelHeight).
		Render(m.sidePanel(layout.rightWidth))

	var body string
	if layout.stacked {
		body = lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", menuGutter), right)
	}

	v := tea.NewView(Frame(m.title, m.subtitle, body, m.help.View(m.keys)))
	v.AltScreen = true
	return v
}

func (m menuModel) listPanel(width int) string {
	view := m.list.View()
	if filter := strings.TrimSpace(m.list.FilterValue()); filter != "" {
		view += "\n\n" + MutedStyle.Render(ansi.Truncate("filter: "+filter, max(10, width), "..."))
	}
	return view
}

func (m menuModel) sidePanel(width int) string {
	heading := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Accent))).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Muted)))
	primary := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Primary))).Bold(true)

	lines := []string{heading.Render("Selection")}
	if item, ok := m.list.SelectedItem().(MenuItem); ok {
		lines = append(lines, primary.Render(ansi.Truncate(item.TitleText, width, "...")))
		if item.Details != "" {
			lines = append(lines, muted.Width(width).Render(item.Details))
		}
	} else {
		lines = append(lines, muted.Render("Nothing matches"))
	}

	for _, section := range m.sections {
		lines = append(lines, "", heading.Render(section.Title))
		for _, line := range section.Lines {
			lines = append(lines, menuInfoLine(line.Label, line.Value, width))
		}
	}
	return strings.Join(lines, "\n")
}

func menuInfoLine(label, value string, width int) string {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	line := fmt.Sprintf("%-9s %s", strings.ToLower(label)+":", value)
	return MutedStyle.Render(ansi.Truncate(line, max(10, width), "..."))
}

const menuGutter = 2

type menuLayout struct {
	stacked     bool
	leftWidth   int
	rightWidth  int
	panelHeight int
	listWidth   int
	listHeight  int
}

// calculateMenuLayout splits the screen into the item list and the side
// panel, stacking them on narrow terminals. Taller gaps leave fewer rows.
func calculateMenuLayout(width, height int) menuLayout {
	const (
		stackBelow = 90
		minSide    = 24
		minRows    = 5
	)
	body := max(10, height-8-CurrentPreferences.Gap)

	if width < stackBelow {
		listRows := body * 3 / 5
		return menuLayout{
			stacked:     true,
			leftWidth:   width,
			rightWidth:  width,
			panelHeight: max(minRows, body-listRows),
			listWidth:   max(4, width-4),
			listHeight:  max(minRows, listRows-2),
		}
	}

	side := max(minSide, width*3/8)
	items := width - side - menuGutter
	return menuLayout{
		leftWidth:   items,
		rightWidth:  side,
		panelHeight: body,
		listWidth:   max(4, items-2),
		listHeight:  max(minRows, body-4),
	}
}

type menuDelegate struct {
	number   lipgloss.Style
	title    lipgloss.Style
	active   lipgloss.Style
	details  lipgloss.Style
	inactive lipgloss.Style
}

func newMenuDelegate() menuDelegate {
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(string(Muted)))
	return menuDelegate{
		number:   muted,
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color(string(Foreground))),
		active:   lipgloss.NewStyle().Foreground(lipgloss.Color(string(Primary))).Bold(true),
		details:  muted,
		inactive: muted,
	}
}

func (d menuDelegate) Height() int                         { return 1 }
func (d menuDelegate) Spacing() int                        { return 0 }
func (d menuDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d menuDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	item, ok := li.(MenuItem)
	if !ok || m.Width() <= 0 {
		return
	}

	slot := fmt.Sprintf("%d.", index-m.Index()+m.Cursor()+1)
	room := max(10, m.Width()-len(slot)-3)
	title := ansi.Truncate(item.TitleText, room, "...")
	details := ""
	if item.Details != "" && m.Width() > 68 {
		details = ansi.Truncate(" "+item.Details, max(0, room-ansi.StringWidth(title)), "...")
	}

	switch {
	case index == m.Index() && m.FilterState() != list.Filtering:
		fmt.Fprint(w, d.active.Render("> "+slot+" "+title)+d.details.Render(details)) //nolint:errcheck
	case m.FilterState() == list.Filtering && m.FilterValue() == "":
		fmt.Fprint(w, "  "+d.inactive.Render(slot+" "+title)) //nolint:errcheck
	default:
		fmt.Fprint(w, "  "+d.number.Render(slot)+" "+d.title.Render(title)+d.details.Render(details)) //nolint:errcheck
	}
}
