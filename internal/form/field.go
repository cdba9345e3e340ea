package form

import (
	"errors"
	"strings"

	"github.com/kyaoi/overviewedit/internal/overview"
)

var (
	// ErrUnknownField is returned when a change targets a field that is not shown.
	ErrUnknownField = errors.New("unknown or hidden field")
	// ErrInvalidValue is returned when a change carries a value the control cannot hold.
	ErrInvalidValue = errors.New("invalid value for field")
)

// Kind is the type of control a field is presented with.
type Kind int

const (
	Toggle Kind = iota
	Text
	Slider
	Dropdown
	List
)

// Option is one entry of a dropdown.
type Option struct {
	Value string
	Label string
}

// Control is the displayable state of a field.
type Control struct {
	Key  string
	Name string
	Desc string
	Kind Kind

	Bool bool
	Text string

	Number int
	Min    int
	Max    int
	Step   int

	Options  []Option
	Selected string

	Items []string
}

// Effect tells the form what a change requires.
type Effect uint8

const (
	// Persist means the configuration changed and must be written.
	Persist Effect = 1 << iota
	// Rerender means the set of visible fields may have changed.
	Rerender
)

// Field is one editable setting.
type Field interface {
	Key() string
	Visible(cfg *overview.Config) bool
	Render(cfg *overview.Config) Control
	OnChange(cfg *overview.Config, value any) (Effect, error)
}

// Field keys.
const (
	KeyDisableTitle     = "disableTitle"
	KeyTitle            = "title"
	KeyIncludeTypes     = "includeTypes"
	KeyAddType          = "includeTypes.add"
	KeyDisableCanvasTag = "disableCanvasTag"
	KeyDepth            = "depth"
	KeyStyle            = "style"
	KeySortBy           = "sortBy"
)

// AddMore is the placeholder option of the include types dropdown.
const AddMore = "+"

// DefaultTitle is shown in the title control when the title is empty.
const DefaultTitle = "Folder overview"

// ListOp is an edit of the include types list.
type ListOp int

const (
	ListRemove ListOp = iota
	ListReset
)

// ListEdit is the value passed to the include types list field.
type ListEdit struct {
	Op    ListOp
	Index int
}

func always(*overview.Config) bool { return true }

type toggleField struct {
	key, name, desc string
	visible         func(*overview.Config) bool
	get             func(*overview.Config) bool
	set             func(*overview.Config, bool)
	effect          Effect
}

func (f toggleField) Key() string                       { return f.key }
func (f toggleField) Visible(cfg *overview.Config) bool { return f.visible(cfg) }
func (f toggleField) Render(cfg *overview.Config) Control {
	return Control{Key: f.key, Name: f.name, Desc: f.desc, Kind: Toggle, Bool: f.get(cfg)}
}

func (f toggleField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	v, ok := value.(bool)
	if !ok {
		return 0, ErrInvalidValue
	}
	f.set(cfg, v)
	return f.effect, nil
}

type titleField struct{}

func (titleField) Key() string                       { return KeyTitle }
func (titleField) Visible(cfg *overview.Config) bool { return cfg.ShowsTitle() }
func (titleField) Render(cfg *overview.Config) Control {
	text := cfg.Title
	if text == "" {
		text = DefaultTitle
	}
	return Control{Key: KeyTitle, Name: "Title", Desc: "Choose the title of the folder overview", Kind: Text, Text: text}
}

func (titleField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	v, ok := value.(string)
	if !ok {
		return 0, ErrInvalidValue
	}
	cfg.Title = v
	return Persist, nil
}

type typesField struct {
	defaults []string
}

func (typesField) Key() string                   { return KeyIncludeTypes }
func (typesField) Visible(*overview.Config) bool { return true }
func (typesField) Render(cfg *overview.Config) Control {
	return Control{Key: KeyIncludeTypes, Name: "Include types", Kind: List, Items: append([]string(nil), cfg.IncludeTypes...)}
}

func (f typesField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	edit, ok := value.(ListEdit)
	if !ok {
		return 0, ErrInvalidValue
	}
	switch edit.Op {
	case ListRemove:
		if !cfg.RemoveTypeAt(edit.Index) {
			return 0, ErrInvalidValue
		}
	case ListReset:
		cfg.ResetTypes(f.defaults)
	default:
		return 0, ErrInvalidValue
	}
	return Persist | Rerender, nil
}

type addTypeField struct{}

func (addTypeField) Key() string { return KeyAddType }

func (addTypeField) Visible(cfg *overview.Config) bool {
	return len(cfg.IncludeTypes) < len(overview.AllTypes)
}

func (addTypeField) Render(cfg *overview.Config) Control {
	var opts []Option
	for _, t := range cfg.MissingTypes() {
		opts = append(opts, Option{Value: t, Label: strings.ToUpper(t[:1]) + t[1:]})
	}
	opts = append(opts, Option{Value: AddMore, Label: AddMore})
	return Control{Key: KeyAddType, Name: "Add type", Kind: Dropdown, Options: opts, Selected: AddMore}
}

func (addTypeField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	v, ok := value.(string)
	if !ok {
		return 0, ErrInvalidValue
	}
	if v == AddMore {
		return 0, nil
	}
	if _, known := overview.NormalizeType(v); !known {
		return 0, ErrInvalidValue
	}
	if !cfg.AddType(v) {
		return Rerender, nil
	}
	return Persist | Rerender, nil
}

type depthField struct{}

func (depthField) Key() string                   { return KeyDepth }
func (depthField) Visible(*overview.Config) bool { return true }
func (depthField) Render(cfg *overview.Config) Control {
	return Control{
		Key: KeyDepth, Name: "File depth", Desc: "File & folder = +1 depth", Kind: Slider,
		Number: overview.ClampDepth(cfg.Depth), Min: overview.MinDepth, Max: overview.MaxDepth, Step: 1,
	}
}

func (depthField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	v, ok := value.(int)
	if !ok {
		return 0, ErrInvalidValue
	}
	cfg.SetDepth(v)
	return Persist, nil
}

type styleField struct{}

func (styleField) Key() string                   { return KeyStyle }
func (styleField) Visible(*overview.Config) bool { return true }
func (styleField) Render(cfg *overview.Config) Control {
	var opts []Option
	for _, s := range overview.Styles {
		opts = append(opts, Option{Value: string(s), Label: strings.ToUpper(string(s)[:1]) + string(s)[1:]})
	}
	return Control{Key: KeyStyle, Name: "Overview style", Desc: "Choose the style of the overview", Kind: Dropdown, Options: opts, Selected: string(cfg.Style)}
}

func (styleField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	v, ok := value.(string)
	if !ok || !overview.Style(v).Valid() {
		return 0, ErrInvalidValue
	}
	cfg.Style = overview.Style(v)
	return Persist, nil
}

type sortField struct{}

func (sortField) Key() string                   { return KeySortBy }
func (sortField) Visible(*overview.Config) bool { return true }
func (sortField) Render(cfg *overview.Config) Control {
	opts := make([]Option, 0, len(overview.SortOrders))
	for _, s := range overview.SortOrders {
		opts = append(opts, Option{Value: string(s), Label: s.Label()})
	}
	return Control{Key: KeySortBy, Name: "Sort files by", Desc: "Choose how the files should be sorted", Kind: Dropdown, Options: opts, Selected: string(cfg.SortBy)}
}

func (sortField) OnChange(cfg *overview.Config, value any) (Effect, error) {
	v, ok := value.(string)
	if !ok || !overview.SortBy(v).Valid() {
		return 0, ErrInvalidValue
	}
	cfg.SortBy = overview.SortBy(v)
	return Persist, nil
}

// Fields returns the overview settings in display order.
func Fields(defaults overview.Config) []Field {
	return []Field{
		toggleField{
			key: KeyDisableTitle, name: "Disable the title", desc: "Choose if the title should be shown",
			visible: always,
			get:     func(c *overview.Config) bool { return c.DisableTitle },
			set:     func(c *overview.Config, v bool) { c.DisableTitle = v },
			effect:  Persist | Rerender,
		},
		titleField{},
		typesField{defaults: append([]string(nil), defaults.IncludeTypes...)},
		addTypeField{},
		toggleField{
			key: KeyDisableCanvasTag, name: "Disable canvas tag", desc: "Choose if the canvas tag should be shown",
			visible: func(c *overview.Config) bool { return c.ShowsCanvasTag() },
			get:     func(c *overview.Config) bool { return c.DisableCanvasTag },
			set:     func(c *overview.Config, v bool) { c.DisableCanvasTag = v },
			effect:  Persist,
		},
		depthField{},
		styleField{},
		sortField{},
	}
}
