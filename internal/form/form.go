package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kyaoi/overviewedit/internal/overview"
	"github.com/kyaoi/overviewedit/internal/persist"
)

// Persister writes a configuration to its note.
type Persister interface {
	Persist(ctx context.Context, cfg overview.Config) (persist.Result, error)
}

// Form binds the overview fields to one configuration and persists every change.
type Form struct {
	cfg       overview.Config
	fields    []Field
	visible   []Field
	persister Persister
	logger    *slog.Logger
	last      persist.Result
}

// New returns a form editing cfg. defaults supplies the include types restored
// by a list reset.
func New(cfg overview.Config, defaults overview.Config, p Persister, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	f := &Form{
		cfg:       cfg.Clone(),
		fields:    Fields(defaults),
		persister: p,
		logger:    logger,
	}
	f.Render()
	return f
}

// Config returns a copy of the configuration being edited.
func (f *Form) Config() overview.Config {
	return f.cfg.Clone()
}

// Render recomputes which fields are shown.
func (f *Form) Render() {
	f.visible = f.visible[:0]
	for _, field := range f.fields {
		if field.Visible(&f.cfg) {
			f.visible = append(f.visible, field)
		}
	}
}

// Controls returns the displayable state of the visible fields.
func (f *Form) Controls() []Control {
	out := make([]Control, 0, len(f.visible))
	for _, field := range f.visible {
		out = append(out, field.Render(&f.cfg))
	}
	return out
}

// Control returns the visible control with the given key.
func (f *Form) Control(key string) (Control, bool) {
	for _, field := range f.visible {
		if field.Key() == key {
			return field.Render(&f.cfg), true
		}
	}
	return Control{}, false
}

// LastResult reports the outcome of the most recent persist.
func (f *Form) LastResult() persist.Result {
	return f.last
}

// Change applies value to the visible field key. The form is re-rendered when
// the change can alter which fields are shown, then the configuration is
// persisted. Persistence failures are logged and otherwise ignored. The
// returned bool reports whether a re-render happened.
func (f *Form) Change(ctx context.Context, key string, value any) (bool, error) {
	var target Field
	for _, field := range f.visible {
		if field.Key() == key {
			target = field
			break
		}
	}
	if target == nil {
		return false, fmt.Errorf("%s: %w", key, ErrUnknownField)
	}

	effect, err := target.OnChange(&f.cfg, value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}

	rerender := effect&Rerender != 0
	if rerender {
		f.Render()
	}
	if effect&Persist != 0 && f.persister != nil {
		res, err := f.persister.Persist(ctx, f.cfg)
		if err != nil {
			f.logger.Warn("persist failed", "field", key, "err", err)
		} else {
			f.last = res
		}
	}
	return rerender, nil
}
