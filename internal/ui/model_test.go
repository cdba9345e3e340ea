package ui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/overviewedit/internal/form"
	"github.com/kyaoi/overviewedit/internal/overview"
	"github.com/kyaoi/overviewedit/internal/persist"
	"github.com/kyaoi/overviewedit/internal/vault"
)

const note = "---\ntags: [index]\n---\n# Projects\n\n```folder-overview\ntitle: Projects\ndepth: 2\n```\n"

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	return newTitledTestModel(t, "Projects")
}

func newTitledTestModel(t *testing.T, title string) (*Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Projects.md")
	require.NoError(t, os.WriteFile(path, []byte(note), 0o644))

	doc, err := vault.Open(path)
	require.NoError(t, err)
	defaults := overview.Builtin()
	depth := 2
	cfg := overview.NewConfig(&overview.Partial{Title: &title, Depth: &depth}, defaults)
	f := form.New(cfg, defaults, persist.New(doc, persist.FirstBlock{}, nil), nil)

	m := NewModel(State{
		Context:    context.Background(),
		Form:       f,
		RawContent: note,
		HeaderPath: "Projects.md",
	})
	return m, path
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func readNote(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func cursorKey(m *Model) string {
	c, _ := m.currentControl()
	return c.Key
}

func TestEnterClosesDialog(t *testing.T) {
	m, path := newTestModel(t)

	cmd := press(m, "enter")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.Closed())
	assert.Equal(t, note, readNote(t, path))
}

func TestToggleDisableTitlePersistsAndHidesTitle(t *testing.T) {
	m, path := newTestModel(t)
	require.Equal(t, form.KeyDisableTitle, cursorKey(m))

	press(m, "space")

	text := readNote(t, path)
	assert.Contains(t, text, "disableTitle: true\n")
	assert.True(t, strings.HasPrefix(text, "---\ntags: [index]\n---\n# Projects\n\n```folder-overview\n"))
	assert.NotContains(t, ansi.Strip(m.View()), "Title\n")

	press(m, "down")
	assert.Equal(t, form.KeyIncludeTypes, cursorKey(m))
}

func TestTitleEditing(t *testing.T) {
	m, path := newTestModel(t)

	press(m, "down")
	require.Equal(t, form.KeyTitle, cursorKey(m))

	press(m, "j", "s")
	assert.Equal(t, "Projectsjs", m.form.Config().Title)
	assert.Contains(t, readNote(t, path), "title: Projectsjs\n")

	press(m, "backspace", "backspace")
	assert.Equal(t, "Projects", m.form.Config().Title)
	assert.Equal(t, form.KeyTitle, cursorKey(m))
}

func TestTitleEditingKeepsLongTitle(t *testing.T) {
	long := strings.Repeat("a", 300)
	m, path := newTitledTestModel(t, long)

	press(m, "down")
	require.Equal(t, form.KeyTitle, cursorKey(m))

	press(m, "b")
	assert.Equal(t, long+"b", m.form.Config().Title)
	assert.Contains(t, readNote(t, path), "title: "+long+"b\n")

	press(m, "backspace", "backspace")
	assert.Len(t, m.form.Config().Title, 299)
}

func TestRemovedNoteShowsStatusUntilChanged(t *testing.T) {
	m, path := newTestModel(t)
	assert.NotContains(t, ansi.Strip(m.View()), missingStatus)

	m.Update(watchEventMsg{event: vault.Event{Kind: vault.Removed, Path: path}})
	assert.Contains(t, ansi.Strip(m.View()), missingStatus)

	m.Update(watchEventMsg{event: vault.Event{Kind: vault.Changed, Path: path}})
	assert.NotContains(t, ansi.Strip(m.View()), missingStatus)
}

func TestSliderStaysInRange(t *testing.T) {
	m, path := newTestModel(t)
	for cursorKey(m) != form.KeyDepth {
		press(m, "down")
	}

	for i := 0; i < 15; i++ {
		press(m, "right")
	}
	assert.Equal(t, overview.MaxDepth, m.form.Config().Depth)
	assert.Contains(t, readNote(t, path), "depth: 10\n")

	for i := 0; i < 15; i++ {
		press(m, "h")
	}
	assert.Equal(t, overview.MinDepth, m.form.Config().Depth)
}

func TestAddTypeDropdownAndCanvasToggle(t *testing.T) {
	m, path := newTestModel(t)
	for cursorKey(m) != form.KeyAddType {
		press(m, "down")
	}

	press(m, "left")
	assert.Equal(t, []string{"folder", "markdown", "canvas"}, m.form.Config().IncludeTypes)
	assert.Contains(t, readNote(t, path), "  - canvas\n")

	_, shown := m.form.Control(form.KeyAddType)
	assert.False(t, shown)
	assert.Equal(t, form.KeyDisableCanvasTag, cursorKey(m))

	press(m, "space")
	assert.True(t, m.form.Config().DisableCanvasTag)
}

func TestListRemoveAndReset(t *testing.T) {
	m, _ := newTestModel(t)
	for cursorKey(m) != form.KeyIncludeTypes {
		press(m, "down")
	}

	press(m, "l", "d")
	assert.Equal(t, []string{"folder"}, m.form.Config().IncludeTypes)

	press(m, "d")
	assert.Empty(t, m.form.Config().IncludeTypes)
	assert.Contains(t, ansi.Strip(m.View()), "(none)")

	press(m, "r")
	assert.Equal(t, []string{"folder", "markdown"}, m.form.Config().IncludeTypes)
}

func TestSortDropdownCycles(t *testing.T) {
	m, path := newTestModel(t)
	for cursorKey(m) != form.KeySortBy {
		press(m, "down")
	}

	press(m, "right")
	assert.Equal(t, overview.SortCreated, m.form.Config().SortBy)
	press(m, "left", "left")
	assert.Equal(t, overview.SortModifiedAsc, m.form.Config().SortBy)
	assert.Contains(t, readNote(t, path), "sortBy: modifiedAsc\n")
	assert.Contains(t, ansi.Strip(m.View()), "Modified ascending")
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "?")
	assert.Contains(t, ansi.Strip(m.View()), "Help")
	press(m, "?")
	assert.Contains(t, ansi.Strip(m.View()), "Folder overview settings")
}

func TestPreviewShowsPatchedNote(t *testing.T) {
	m, _ := newTestModel(t)
	m.previewVisible = true
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	for cursorKey(m) != form.KeySortBy {
		press(m, "down")
	}
	press(m, "right")

	assert.Contains(t, m.rawContent, "sortBy: created")
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Projects")
	assert.NotContains(t, view, "tags: [index]")
}

func TestPreviewSourceDropsFrontMatter(t *testing.T) {
	assert.Equal(t, "# Projects", strings.TrimSpace(previewSource("---\na: 1\n---\n# Projects\n")))
	assert.Equal(t, "# Plain", strings.TrimSpace(previewSource("# Plain\n")))
}
