package overview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigWithoutParsedUsesDefaults(t *testing.T) {
	defaults := Builtin()
	cfg := NewConfig(nil, defaults)

	assert.Equal(t, defaults.Title, cfg.Title)
	assert.Equal(t, 3, cfg.Depth)
	assert.Equal(t, []string{TypeFolder, TypeMarkdown}, cfg.IncludeTypes)
	assert.Equal(t, StyleList, cfg.Style)
	assert.Equal(t, SortName, cfg.SortBy)
}

func TestNewConfigFallsBackFieldByField(t *testing.T) {
	title := "Projects"
	depth := 5
	p := &Partial{Title: &title, Depth: &depth}

	cfg := NewConfig(p, Builtin())

	assert.Equal(t, "Projects", cfg.Title)
	assert.Equal(t, 5, cfg.Depth)
	assert.False(t, cfg.DisableTitle)
	assert.Equal(t, []string{TypeFolder, TypeMarkdown}, cfg.IncludeTypes)
	assert.Equal(t, SortName, cfg.SortBy)
}

func TestNewConfigNormalizes(t *testing.T) {
	depth := 42
	types := []string{"Markdown", "CANVAS", "markdown", "pdf"}
	sort := SortBy("random")
	p := &Partial{Depth: &depth, IncludeTypes: &types, SortBy: &sort}

	cfg := NewConfig(p, Builtin())

	assert.Equal(t, MaxDepth, cfg.Depth)
	assert.Equal(t, []string{TypeMarkdown, TypeCanvas}, cfg.IncludeTypes)
	assert.Equal(t, SortName, cfg.SortBy)
}

func TestNewConfigDoesNotAliasDefaults(t *testing.T) {
	defaults := Builtin()
	cfg := NewConfig(nil, defaults)

	cfg.AddType(TypeCanvas)
	cfg.RemoveTypeAt(0)

	assert.Equal(t, []string{TypeFolder, TypeMarkdown}, defaults.IncludeTypes)
}

func TestAddTypeIsIdempotent(t *testing.T) {
	cfg := NewConfig(nil, Builtin())

	assert.True(t, cfg.AddType("Canvas"))
	assert.False(t, cfg.AddType("canvas"))
	assert.False(t, cfg.AddType("CANVAS"))
	assert.False(t, cfg.AddType("image"))
	assert.Equal(t, []string{TypeFolder, TypeMarkdown, TypeCanvas}, cfg.IncludeTypes)
	assert.Empty(t, cfg.MissingTypes())
}

func TestRemoveTypeAt(t *testing.T) {
	cfg := NewConfig(nil, Builtin())

	assert.False(t, cfg.RemoveTypeAt(5))
	assert.True(t, cfg.RemoveTypeAt(0))
	assert.Equal(t, []string{TypeMarkdown}, cfg.IncludeTypes)
	assert.Equal(t, []string{TypeFolder, TypeCanvas}, cfg.MissingTypes())
}

func TestShowsCanvasTag(t *testing.T) {
	cases := [][]string{
		{},
		{"canvas"},
		{"Canvas", "folder"},
		{"markdown", "folder"},
		{"folder", "markdown", "CANVAS"},
	}
	for _, types := range cases {
		cfg := Builtin()
		cfg.IncludeTypes = nil
		for _, ty := range types {
			cfg.AddType(ty)
		}
		want := false
		for _, ty := range types {
			if ty == "canvas" || ty == "Canvas" || ty == "CANVAS" {
				want = true
			}
		}
		assert.Equal(t, want, cfg.ShowsCanvasTag(), "types %v", types)
	}
}

func TestSetDepthClamps(t *testing.T) {
	cfg := Builtin()
	for _, n := range []int{-3, 0, 1, 7, 10, 11, 100} {
		cfg.SetDepth(n)
		assert.GreaterOrEqual(t, cfg.Depth, MinDepth)
		assert.LessOrEqual(t, cfg.Depth, MaxDepth)
	}
}
