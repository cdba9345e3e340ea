package ui

import (
	"context"
	"log/slog"

	"github.com/kyaoi/overviewedit/internal/form"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Context        context.Context
	Form           *form.Form
	RawContent     string
	HeaderPath     string
	ActiveAbsPath  string
	PreviewVisible bool
	Logger         *slog.Logger
}
