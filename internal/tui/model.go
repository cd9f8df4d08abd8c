package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/types"
)

var (
	paneBorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Background(lipgloss.Color("235")).
			Padding(1, 4)

	unknownTypeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View selects which catalog the table shows.
type View int

const (
	ViewAssets View = iota
	ViewScripts
)

func (v View) String() string {
	if v == ViewScripts {
		return "scripts"
	}
	return "assets"
}

// Options wires the browser to a project.
type Options struct {
	Catalog catalog.Catalog
	// Rescan rebuilds the catalog; nil disables the r key.
	Rescan func() (catalog.Catalog, error)
	// Properties returns the parsed properties of a script path relative
	// to the catalog root.
	Properties func(rel string) []types.ScriptPropertyDef
	Prefs      Prefs
}

// Model is the bubbletea model of the catalog browser.
type Model struct {
	table    table.Model
	viewport viewport.Model
	spinner  spinner.Model
	search   textinput.Model

	cat        catalog.Catalog
	rescanFunc func() (catalog.Catalog, error)
	propsFunc  func(rel string) []types.ScriptPropertyDef
	copyFunc   func(string) error
	prefs      Prefs

	view       View
	query      string
	typeFilter string // asset type name, "" = all
	assets     []types.AssetCatalogEntry
	scripts    []string

	searchMode bool
	scanning   bool
	showHelp   bool
	quitting   bool
	ready      bool
	width      int
	height     int

	statusMessage string
	lastScanTime  time.Time
}

type statusMsg string

type catalogMsg catalog.Catalog

// NewModel builds the browser model for opts.
func NewModel(opts Options) Model {
	t := table.New(
		table.WithColumns(assetColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	ti := textinput.New()
	ti.Placeholder = "Filter by name, type or path..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Prompt = "/ "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := Model{
		table:        t,
		viewport:     viewport.New(80, 10),
		spinner:      sp,
		search:       ti,
		cat:          opts.Catalog,
		rescanFunc:   opts.Rescan,
		propsFunc:    opts.Properties,
		copyFunc:     clipboard.WriteAll,
		prefs:        opts.Prefs,
		lastScanTime: time.Now(),
	}
	if opts.Prefs.LastView == ViewScripts.String() {
		m.view = ViewScripts
	}
	m.statusMessage = "q: quit | ?: help | tab: assets/scripts | /: filter | r: rescan | y: copy"
	m.applyFilters()
	return m
}

func assetColumns(width int) []table.Column {
	path := max(width-24-14-22-10, 20)
	return []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Type", Width: 14},
		{Title: "UUID", Width: 22},
		{Title: "Path", Width: path},
	}
}

func scriptColumns(width int) []table.Column {
	return []table.Column{{Title: "Script", Width: max(width-6, 20)}}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// applyFilters recomputes the visible rows from the query and type filter.
func (m *Model) applyFilters() {
	q := strings.ToLower(m.query)

	m.assets = m.assets[:0]
	for _, a := range m.cat.Assets {
		if m.typeFilter != "" && a.TypeName != m.typeFilter {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.TypeName), q) &&
			!strings.Contains(strings.ToLower(a.RelativePath), q) {
			continue
		}
		m.assets = append(m.assets, a)
	}

	m.scripts = m.scripts[:0]
	for _, s := range m.cat.Scripts {
		if q != "" && !strings.Contains(strings.ToLower(s), q) {
			continue
		}
		m.scripts = append(m.scripts, s)
	}
	m.rebuildTableRows()
}

func (m *Model) rebuildTableRows() {
	var rows []table.Row
	// Rows must be set before columns shrink, or the table indexes past
	// the new column count while rendering.
	m.table.SetRows(nil)
	if m.view == ViewScripts {
		m.table.SetColumns(scriptColumns(m.width))
		for _, s := range m.scripts {
			rows = append(rows, table.Row{s})
		}
	} else {
		m.table.SetColumns(assetColumns(m.width))
		for _, a := range m.assets {
			rows = append(rows, table.Row{a.Name, a.TypeName, a.UUIDString(), a.RelativePath})
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	m.updateViewportContent()
}

func (m *Model) rowCount() int {
	if m.view == ViewScripts {
		return len(m.scripts)
	}
	return len(m.assets)
}

func (m *Model) selectedAsset() (types.AssetCatalogEntry, bool) {
	i := m.table.Cursor()
	if m.view != ViewAssets || i < 0 || i >= len(m.assets) {
		return types.AssetCatalogEntry{}, false
	}
	return m.assets[i], true
}

func (m *Model) selectedScript() (string, bool) {
	i := m.table.Cursor()
	if m.view != ViewScripts || i < 0 || i >= len(m.scripts) {
		return "", false
	}
	return m.scripts[i], true
}

func (m *Model) toggleView() {
	if m.view == ViewAssets {
		m.view = ViewScripts
	} else {
		m.view = ViewAssets
	}
	m.prefs.LastView = m.view.String()
	m.table.SetCursor(0)
	m.rebuildTableRows()
}

// cycleTypeFilter steps through the asset types present in the catalog.
func (m *Model) cycleTypeFilter() {
	seen := map[string]bool{}
	var names []string
	for _, a := range m.cat.Assets {
		if !seen[a.TypeName] {
			seen[a.TypeName] = true
			names = append(names, a.TypeName)
		}
	}
	next := ""
	if m.typeFilter == "" && len(names) > 0 {
		next = names[0]
	}
	for i, n := range names {
		if n == m.typeFilter && i+1 < len(names) {
			next = names[i+1]
		}
	}
	m.typeFilter = next
	m.applyFilters()
}

func (m *Model) clearFilters() {
	m.query = ""
	m.typeFilter = ""
	m.search.SetValue("")
	m.applyFilters()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		m.scanning = false
		return m, nil

	case catalogMsg:
		m.scanning = false
		m.cat = catalog.Catalog(msg)
		m.lastScanTime = time.Now()
		m.applyFilters()
		m.statusMessage = fmt.Sprintf("Rescanned: %d assets, %d scripts", len(m.cat.Assets), len(m.cat.Scripts))
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.searchMode {
			return m.updateSearch(msg)
		}
		if m.scanning {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			_ = SavePrefs(m.prefs)
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "tab":
			m.toggleView()
			return m, nil
		case "/":
			m.searchMode = true
			m.search.SetValue(m.query)
			cmd = m.search.Focus()
			return m, cmd
		case "t":
			m.cycleTypeFilter()
			if m.typeFilter == "" {
				m.statusMessage = "Showing all asset types"
			} else {
				m.statusMessage = "Type: " + m.typeFilter + " (t: next, esc: clear)"
			}
			return m, nil
		case "esc":
			m.clearFilters()
			m.statusMessage = "Filters cleared"
			return m, nil
		case "s":
			m.prefs.ShowSource = !m.prefs.ShowSource
			m.updateViewportContent()
			return m, nil
		case "y":
			return m, m.copySelection(false)
		case "Y":
			return m, m.copySelection(true)
		case "r":
			if m.rescanFunc == nil {
				m.statusMessage = "Rescan not available"
				return m, nil
			}
			m.scanning = true
			return m, tea.Batch(m.spinner.Tick, rescan(m.rescanFunc))
		case "ctrl+d":
			m.table.MoveDown(max(m.table.Height()/2, 1))
			m.updateViewportContent()
			return m, nil
		case "ctrl+u":
			m.table.MoveUp(max(m.table.Height()/2, 1))
			m.updateViewportContent()
			return m, nil
		case "J":
			m.viewport.SetYOffset(m.viewport.YOffset + max(m.viewport.Height/2, 1))
			return m, nil
		case "K":
			m.viewport.SetYOffset(m.viewport.YOffset - max(m.viewport.Height/2, 1))
			return m, nil
		}
	}

	prev := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != prev {
		m.updateViewportContent()
	}
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		m.applyFilters()
		m.statusMessage = fmt.Sprintf("%d matching %s", m.rowCount(), m.view)
		return m, nil
	case "esc":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	detail := max(m.height/3, 5)
	tableHeight := max(m.height-detail-8, 3)
	m.table.SetHeight(tableHeight)
	m.table.SetWidth(m.width - 2)
	m.viewport.Width = m.width - 2
	m.viewport.Height = detail
	m.rebuildTableRows()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.scanning {
		box := popupStyle.Width(40).Align(lipgloss.Center).
			Render(fmt.Sprintf("%s  Rescanning...\n\nPlease wait", m.spinner.View()))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popupStyle.Render(helpText()))
	}

	header := lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 2).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("237")).
		Render(m.statsLine())

	var body string
	if m.rowCount() == 0 {
		msg := "Catalog is empty.\n\nPress 'r' to rescan"
		if m.query != "" || m.typeFilter != "" {
			msg = "Nothing matches the filter.\n\nPress 'Esc' to clear"
		}
		body = lipgloss.Place(m.width-2, m.table.Height(), lipgloss.Center, lipgloss.Center, emptyTextStyle.Render(msg))
	} else {
		body = m.table.View()
	}
	tablePane := paneBorderStyle.Width(m.width - 2).Render(body)
	detailPane := paneBorderStyle.Width(m.width - 2).Height(m.viewport.Height).Render(m.viewport.View())

	bottom := statusStyle.Width(m.width).Render(" " + m.statusMessage)
	if m.searchMode {
		bottom = m.search.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, tablePane, detailPane, bottom)
}

func (m Model) statsLine() string {
	unknown := 0
	for _, a := range m.cat.Assets {
		if a.TypeName == "Unknown" {
			unknown++
		}
	}
	line := fmt.Sprintf("%s  Assets: %d  |  Scripts: %d  |  Skipped: %d",
		titleStyle.Render("octconnect"), len(m.cat.Assets), len(m.cat.Scripts), len(m.cat.Skipped))
	if unknown > 0 {
		line += "  |  " + unknownTypeStyle.Render(fmt.Sprintf("Unknown types: %d", unknown))
	}
	if m.query != "" || m.typeFilter != "" {
		var parts []string
		if m.query != "" {
			parts = append(parts, fmt.Sprintf("search:'%s'", m.query))
		}
		if m.typeFilter != "" {
			parts = append(parts, "type:"+m.typeFilter)
		}
		line += fmt.Sprintf("  [FILTER: %s]", strings.Join(parts, ", "))
	}
	line += fmt.Sprintf("  |  scanned %s ago", formatDuration(time.Since(m.lastScanTime)))
	return line
}

func helpText() string {
	keys := [][2]string{
		{"tab", "switch assets / scripts"},
		{"j/k, up/down", "move"},
		{"/", "filter"},
		{"t", "cycle asset type filter"},
		{"esc", "clear filters"},
		{"s", "toggle script source"},
		{"y", "copy uuid / script path"},
		{"Y", "copy engine path"},
		{"r", "rescan project"},
		{"ctrl+d/ctrl+u", "half page down / up"},
		{"J/K", "scroll details"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-14s", k[0])), k[1])
	}
	return b.String()
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
