package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/overviewedit/internal/form"
	"github.com/kyaoi/overviewedit/internal/persist"
	"github.com/kyaoi/overviewedit/internal/vault"
)

const (
	minContentWidth   = 20
	minFormPanelWidth = 36
	defaultFormWidth  = 48
	sliderWidth       = 10
)

var (
	formBorderColor = lipgloss.Color("#3b4261")
	headingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5")).Bold(true)
	pathStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	descStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	rowSelected     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#7aa2f7")).
			Bold(true)
	itemSelected = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0caf5")).
			Background(lipgloss.Color("#283457"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
)

// Model implements the Bubble Tea program for the overview settings dialog.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	form       *form.Form
	controls   []form.Control
	cursor     int
	listIndex  int
	titleInput textinput.Model
	formVP     viewport.Model

	previewVP      viewport.Model
	renderer       *glamour.TermRenderer
	rawContent     string
	headerPath     string
	previewVisible bool
	showHelp       bool
	ready          bool
	closed         bool
	missing        bool
	width          int
	height         int
	err            error

	watcher          *vault.Watcher
	initialWatchPath string
}

const missingStatus = "note missing, changes not saved"

type watchEventMsg struct {
	event vault.Event
}

// NewModel constructs the dialog model with the provided initial state.
func NewModel(state State) *Model {
	ctx := state.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := state.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	previewVP := viewport.New(0, 0)
	previewVP.Style = lipgloss.NewStyle().Padding(0, 1)

	formVP := viewport.New(0, 0)
	formVP.Style = formPanelStyle(formBorderColor)
	formVP.MouseWheelEnabled = false

	titleInput := textinput.New()
	titleInput.Prompt = ""
	titleInput.CharLimit = 0
	titleInput.Placeholder = form.DefaultTitle
	titleInput.Blur()

	m := &Model{
		ctx:              ctx,
		logger:           logger,
		form:             state.Form,
		titleInput:       titleInput,
		formVP:           formVP,
		previewVP:        previewVP,
		rawContent:       state.RawContent,
		headerPath:       state.HeaderPath,
		previewVisible:   state.PreviewVisible,
		initialWatchPath: state.ActiveAbsPath,
	}
	m.syncControls()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.initialWatchPath != "" && m.previewVisible {
		path := m.initialWatchPath
		m.initialWatchPath = ""
		return m.startWatching(path)
	}
	return nil
}

// Closed reports whether the dialog was dismissed.
func (m *Model) Closed() bool {
	return m.closed
}

// Close releases the file watcher.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	m.watcher = nil
	return w.Close()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		helpContent := strings.Join([]string{
			"Help (? / Esc to close)",
			"Up / Down, Tab     : move between settings",
			"j / k              : move (outside the title field)",
			"Space              : switch a toggle",
			"Left / Right, h / l: slider, dropdown, list item",
			"d / Backspace      : remove the selected type",
			"r                  : reset include types",
			"p                  : show or hide the preview",
			"Ctrl+d / Ctrl+u    : scroll the preview",
			"Enter / Esc        : close",
		}, "\n")
		helpOverlay := helpBoxStyle.Render(helpContent)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpOverlay)
		}
		return helpOverlay
	}

	body := m.formVP.View()
	if !m.ready {
		body = m.renderForm(defaultFormWidth)
	}
	if m.previewVisible && m.ready {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.previewVP.View())
	}
	if m.missing {
		body = lipgloss.JoinVertical(lipgloss.Left, body, descStyle.Render(missingStatus))
	}
	if m.err != nil {
		errLine := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")).Render(m.err.Error())
		body = lipgloss.JoinVertical(lipgloss.Left, errLine, body)
	}
	return body
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case watchEventMsg:
		return m, m.handleWatchEvent(msg.event)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()

		if m.showHelp {
			switch key {
			case "q", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		switch key {
		case "enter", "esc", "ctrl+c":
			m.closed = true
			return m, tea.Quit
		case "up", "shift+tab":
			m.moveCursor(-1)
			return m, nil
		case "down", "tab":
			m.moveCursor(1)
			return m, nil
		}

		current, ok := m.currentControl()
		if ok && current.Kind == form.Text {
			return m, m.updateTitle(msg)
		}

		switch key {
		case "?":
			m.showHelp = true
			return m, nil
		case "k":
			m.moveCursor(-1)
			return m, nil
		case "j":
			m.moveCursor(1)
			return m, nil
		case "p":
			m.previewVisible = !m.previewVisible
			m.resize(m.width, m.height)
			if m.previewVisible && m.watcher == nil && m.initialWatchPath != "" {
				path := m.initialWatchPath
				m.initialWatchPath = ""
				return m, m.startWatching(path)
			}
			return m, nil
		case "ctrl+d":
			m.previewVP.HalfPageDown()
			return m, nil
		case "ctrl+u":
			m.previewVP.HalfPageUp()
			return m, nil
		}

		if ok {
			m.handleControlKey(current, key)
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleControlKey(c form.Control, key string) {
	switch c.Kind {
	case form.Toggle:
		if key == " " {
			m.change(c.Key, !c.Bool)
		}
	case form.Slider:
		switch key {
		case "left", "h":
			m.change(c.Key, c.Number-c.Step)
		case "right", "l":
			m.change(c.Key, c.Number+c.Step)
		}
	case form.Dropdown:
		switch key {
		case "left", "h":
			m.change(c.Key, stepOption(c, -1))
		case "right", "l":
			m.change(c.Key, stepOption(c, 1))
		}
	case form.List:
		switch key {
		case "left", "h":
			m.listIndex = clamp(m.listIndex-1, 0, max(len(c.Items)-1, 0))
			m.refreshForm()
		case "right", "l":
			m.listIndex = clamp(m.listIndex+1, 0, max(len(c.Items)-1, 0))
			m.refreshForm()
		case "d", "x", "backspace", "delete":
			if len(c.Items) > 0 {
				m.change(c.Key, form.ListEdit{Op: form.ListRemove, Index: m.listIndex})
			}
		case "r":
			m.change(c.Key, form.ListEdit{Op: form.ListReset})
		}
	}
}

func (m *Model) updateTitle(msg tea.KeyMsg) tea.Cmd {
	before := m.titleInput.Value()
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	if value := m.titleInput.Value(); value != before {
		m.change(form.KeyTitle, value)
	}
	return cmd
}

// change forwards a control edit to the form and refreshes everything that
// depends on the configuration.
func (m *Model) change(key string, value any) {
	rerendered, err := m.form.Change(m.ctx, key, value)
	if err != nil {
		m.logger.Debug("change rejected", "field", key, "err", err)
		return
	}
	if rerendered {
		m.syncControls()
	} else {
		m.controls = m.form.Controls()
		m.refreshForm()
	}
	if res := m.form.LastResult(); res.Outcome != persist.Skipped && res.Text != m.rawContent {
		m.rawContent = res.Text
		m.renderPreview()
	}
}

func (m *Model) syncControls() {
	var focusedKey string
	if c, ok := m.currentControl(); ok {
		focusedKey = c.Key
	}
	m.controls = m.form.Controls()
	if focusedKey != "" {
		for i, c := range m.controls {
			if c.Key == focusedKey {
				m.cursor = i
				break
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, max(len(m.controls)-1, 0))
	m.focusCurrent()
}

func (m *Model) moveCursor(delta int) {
	if len(m.controls) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.controls)-1)
	m.listIndex = 0
	m.focusCurrent()
}

func (m *Model) focusCurrent() {
	c, ok := m.currentControl()
	if ok && c.Kind == form.Text {
		if !m.titleInput.Focused() {
			m.titleInput.SetValue(c.Text)
			m.titleInput.CursorEnd()
			m.titleInput.Focus()
		}
	} else {
		m.titleInput.Blur()
	}
	if ok && c.Kind == form.List {
		m.listIndex = clamp(m.listIndex, 0, max(len(c.Items)-1, 0))
	}
	m.refreshForm()
}

func (m *Model) currentControl() (form.Control, bool) {
	if m.cursor < 0 || m.cursor >= len(m.controls) {
		return form.Control{}, false
	}
	return m.controls[m.cursor], true
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.width = width
	m.height = height
	m.ready = true

	formWidth := m.formWidth(width)
	m.formVP.Width = formWidth
	m.formVP.Height = height
	m.refreshForm()

	if !m.previewVisible {
		m.previewVP.Width = 0
		m.previewVP.Height = height
		return
	}

	contentWidth := max(width-formWidth, minContentWidth)
	m.previewVP.Width = contentWidth
	m.previewVP.Height = height

	wrapWidth := max(contentWidth-m.previewVP.Style.GetHorizontalFrameSize(), 0)
	renderer, err := newRenderer(wrapWidth)
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer
	m.renderPreview()
}

func (m *Model) formWidth(totalWidth int) int {
	if !m.previewVisible {
		return totalWidth
	}
	width := clamp(defaultFormWidth, minFormPanelWidth, max(totalWidth/2, minFormPanelWidth))
	if totalWidth-width < minContentWidth {
		width = max(totalWidth-minContentWidth, 0)
	}
	return width
}

func (m *Model) refreshForm() {
	if m.formVP.Width == 0 {
		return
	}
	inner := m.formVP.Width - m.formVP.Style.GetHorizontalFrameSize()
	m.formVP.SetContent(m.renderForm(inner))
}

func (m *Model) renderForm(width int) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Folder overview settings"))
	b.WriteByte('\n')
	if m.headerPath != "" {
		b.WriteString(pathStyle.Render(ansi.Truncate(m.headerPath, max(width, 1), "…")))
		b.WriteByte('\n')
	}
	for i, c := range m.controls {
		b.WriteByte('\n')
		selected := i == m.cursor
		name := ansi.Truncate(c.Name, max(width-2, 1), "…")
		if selected {
			b.WriteString(rowSelected.Render("> " + name))
		} else {
			b.WriteString(labelStyle.Render("  " + name))
		}
		b.WriteByte('\n')
		b.WriteString("  ")
		b.WriteString(m.renderValue(c, selected))
		if c.Desc != "" {
			b.WriteByte('\n')
			b.WriteString(descStyle.Render("  " + ansi.Truncate(c.Desc, max(width-2, 1), "…")))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Model) renderValue(c form.Control, selected bool) string {
	switch c.Kind {
	case form.Toggle:
		if c.Bool {
			return "[x]"
		}
		return "[ ]"
	case form.Text:
		if selected && m.titleInput.Focused() {
			return m.titleInput.View()
		}
		return c.Text
	case form.Slider:
		return renderSlider(c)
	case form.Dropdown:
		return "‹ " + optionLabel(c) + " ›"
	case form.List:
		if len(c.Items) == 0 {
			return descStyle.Render("(none)")
		}
		parts := make([]string, len(c.Items))
		for i, item := range c.Items {
			label := "[" + item + "]"
			if selected && i == m.listIndex {
				label = itemSelected.Render(label)
			}
			parts[i] = label
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func renderSlider(c form.Control) string {
	span := c.Max - c.Min
	if span <= 0 {
		return fmt.Sprintf("%d", c.Number)
	}
	pos := (c.Number - c.Min) * (sliderWidth - 1) / span
	bar := strings.Repeat("─", pos) + "●" + strings.Repeat("─", sliderWidth-1-pos)
	return fmt.Sprintf("├%s┤ %d", bar, c.Number)
}

func optionLabel(c form.Control) string {
	for _, o := range c.Options {
		if o.Value == c.Selected {
			return o.Label
		}
	}
	return c.Selected
}

func stepOption(c form.Control, delta int) string {
	if len(c.Options) == 0 {
		return c.Selected
	}
	idx := 0
	for i, o := range c.Options {
		if o.Value == c.Selected {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(c.Options)) % len(c.Options)
	return c.Options[idx].Value
}

func (m *Model) renderPreview() {
	if m.renderer == nil || !m.previewVisible {
		return
	}
	rendered, err := m.renderer.Render(previewSource(m.rawContent))
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	offset := m.previewVP.YOffset
	m.previewVP.SetContent(rendered)
	m.previewVP.SetYOffset(offset)
}

// previewSource drops the front matter of a note, which glamour would
// otherwise render as a table and a horizontal rule.
func previewSource(text string) string {
	var meta map[string]any
	body, err := frontmatter.Parse(strings.NewReader(text), &meta)
	if err != nil {
		return text
	}
	return string(body)
}

func formPanelStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(color)
}

func newRenderer(width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(styles.TokyoNightStyle)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	} else {
		opts = append(opts, glamour.WithWordWrap(0))
	}
	return glamour.NewTermRenderer(opts...)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func (m *Model) startWatching(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	w, err := vault.Watch(path)
	if err != nil {
		m.logger.Warn("watch failed", "path", path, "err", err)
		return nil
	}
	m.watcher = w
	return m.waitForWatchEvent()
}

func (m *Model) waitForWatchEvent() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	events := m.watcher.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return watchEventMsg{event: ev}
	}
}

func (m *Model) handleWatchEvent(ev vault.Event) tea.Cmd {
	switch ev.Kind {
	case vault.Changed:
		m.missing = false
		m.reloadPreview(ev.Path)
	case vault.Removed:
		m.missing = true
		m.logger.Info("note removed", "path", ev.Path)
	case vault.Failed:
		m.logger.Warn("watch error", "path", ev.Path, "err", ev.Err)
	}
	return m.waitForWatchEvent()
}

func (m *Model) reloadPreview(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		m.logger.Debug("reload failed", "path", path, "err", err)
		return
	}
	if string(data) == m.rawContent {
		return
	}
	m.rawContent = string(data)
	m.renderPreview()
}
