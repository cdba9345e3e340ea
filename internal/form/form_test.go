package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/overviewedit/internal/overview"
	"github.com/kyaoi/overviewedit/internal/persist"
)

type recorder struct {
	saved []overview.Config
	err   error
}

func (r *recorder) Persist(_ context.Context, cfg overview.Config) (persist.Result, error) {
	if r.err != nil {
		return persist.Result{}, r.err
	}
	r.saved = append(r.saved, cfg.Clone())
	return persist.Result{Outcome: persist.Replaced}, nil
}

func newForm(t *testing.T) (*Form, *recorder) {
	t.Helper()
	rec := &recorder{}
	defaults := overview.Builtin()
	return New(overview.NewConfig(nil, defaults), defaults, rec, nil), rec
}

func keys(f *Form) []string {
	var out []string
	for _, c := range f.Controls() {
		out = append(out, c.Key)
	}
	return out
}

func TestDefaultLayout(t *testing.T) {
	f, _ := newForm(t)
	assert.Equal(t, []string{
		KeyDisableTitle, KeyTitle, KeyIncludeTypes, KeyAddType, KeyDepth, KeyStyle, KeySortBy,
	}, keys(f))
}

func TestDisableTitleHidesAndRestoresTitle(t *testing.T) {
	ctx := context.Background()
	f, rec := newForm(t)

	_, err := f.Change(ctx, KeyTitle, "Projects")
	require.NoError(t, err)

	rerendered, err := f.Change(ctx, KeyDisableTitle, true)
	require.NoError(t, err)
	assert.True(t, rerendered)
	assert.NotContains(t, keys(f), KeyTitle)

	_, err = f.Change(ctx, KeyTitle, "ignored")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = f.Change(ctx, KeyDisableTitle, false)
	require.NoError(t, err)
	c, ok := f.Control(KeyTitle)
	require.True(t, ok)
	assert.Equal(t, "Projects", c.Text)
	assert.Len(t, rec.saved, 3)
}

func TestEmptyTitleDisplaysFallback(t *testing.T) {
	f, _ := newForm(t)
	_, err := f.Change(context.Background(), KeyTitle, "")
	require.NoError(t, err)

	c, ok := f.Control(KeyTitle)
	require.True(t, ok)
	assert.Equal(t, DefaultTitle, c.Text)
	assert.Equal(t, "", f.Config().Title)
}

func TestAddTypeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f, rec := newForm(t)

	c, ok := f.Control(KeyAddType)
	require.True(t, ok)
	assert.Equal(t, []Option{{Value: "canvas", Label: "Canvas"}, {Value: AddMore, Label: AddMore}}, c.Options)
	assert.Equal(t, AddMore, c.Selected)

	_, err := f.Change(ctx, KeyAddType, "Canvas")
	require.NoError(t, err)
	assert.Equal(t, []string{"folder", "markdown", "canvas"}, f.Config().IncludeTypes)
	assert.NotContains(t, keys(f), KeyAddType)
	assert.Contains(t, keys(f), KeyDisableCanvasTag)
	assert.Len(t, rec.saved, 1)

	_, err = f.Change(ctx, KeyIncludeTypes, ListEdit{Op: ListRemove, Index: 0})
	require.NoError(t, err)
	_, err = f.Change(ctx, KeyAddType, "CANVAS")
	require.NoError(t, err)
	_, err = f.Change(ctx, KeyAddType, AddMore)
	require.NoError(t, err)
	assert.Equal(t, []string{"markdown", "canvas"}, f.Config().IncludeTypes)
	assert.Len(t, rec.saved, 2)

	_, err = f.Change(ctx, KeyAddType, "pdf")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestCanvasTagVisibleIffCanvasIncluded(t *testing.T) {
	perms := [][]string{
		{"markdown"}, {"folder"}, {"canvas"},
		{"markdown", "folder"}, {"Canvas", "markdown"}, {"folder", "CANVAS"},
		{"canvas", "folder", "markdown"}, {"markdown", "canvas", "folder"}, {"folder", "markdown", "canvas"},
	}
	for _, types := range perms {
		defaults := overview.Builtin()
		cfg := overview.NewConfig(&overview.Partial{IncludeTypes: &types}, defaults)
		f := New(cfg, defaults, &recorder{}, nil)

		want := false
		for _, ty := range types {
			if ty == "canvas" || ty == "Canvas" || ty == "CANVAS" {
				want = true
			}
		}
		_, shown := f.Control(KeyDisableCanvasTag)
		assert.Equal(t, want, shown, "types %v", types)
	}
}

func TestDepthStaysInRange(t *testing.T) {
	ctx := context.Background()
	f, _ := newForm(t)

	for _, v := range []int{-5, 0, 1, 5, 10, 11, 99} {
		_, err := f.Change(ctx, KeyDepth, v)
		require.NoError(t, err)
		c, _ := f.Control(KeyDepth)
		assert.GreaterOrEqual(t, c.Number, 1)
		assert.LessOrEqual(t, c.Number, 10)
		assert.Equal(t, c.Number, f.Config().Depth)
	}

	_, err := f.Change(ctx, KeyDepth, "3")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDropdownsRejectUnknownOptions(t *testing.T) {
	ctx := context.Background()
	f, _ := newForm(t)

	_, err := f.Change(ctx, KeySortBy, "createdAsc")
	require.NoError(t, err)
	assert.Equal(t, overview.SortCreatedAsc, f.Config().SortBy)

	_, err = f.Change(ctx, KeySortBy, "size")
	assert.ErrorIs(t, err, ErrInvalidValue)
	_, err = f.Change(ctx, KeyStyle, "grid")
	assert.ErrorIs(t, err, ErrInvalidValue)

	c, ok := f.Control(KeySortBy)
	require.True(t, ok)
	assert.Len(t, c.Options, 6)
	assert.Equal(t, "createdAsc", c.Selected)
}

func TestListResetRestoresDefaults(t *testing.T) {
	ctx := context.Background()
	f, _ := newForm(t)

	_, err := f.Change(ctx, KeyIncludeTypes, ListEdit{Op: ListRemove, Index: 1})
	require.NoError(t, err)
	_, err = f.Change(ctx, KeyIncludeTypes, ListEdit{Op: ListRemove, Index: 0})
	require.NoError(t, err)
	assert.Empty(t, f.Config().IncludeTypes)

	_, err = f.Change(ctx, KeyIncludeTypes, ListEdit{Op: ListRemove, Index: 0})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = f.Change(ctx, KeyIncludeTypes, ListEdit{Op: ListReset})
	require.NoError(t, err)
	assert.Equal(t, []string{"folder", "markdown"}, f.Config().IncludeTypes)
}

func TestPersistFailureIsAbsorbed(t *testing.T) {
	rec := &recorder{err: errors.New("read-only")}
	defaults := overview.Builtin()
	f := New(overview.NewConfig(nil, defaults), defaults, rec, nil)

	_, err := f.Change(context.Background(), KeyDepth, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, f.Config().Depth)
	assert.Equal(t, persist.Skipped, f.LastResult().Outcome)
}
