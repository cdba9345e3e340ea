package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kyaoi/overviewedit/internal/block"
	"github.com/kyaoi/overviewedit/internal/form"
	"github.com/kyaoi/overviewedit/internal/overview"
	"github.com/kyaoi/overviewedit/internal/persist"
	"github.com/kyaoi/overviewedit/internal/ui"
	"github.com/kyaoi/overviewedit/internal/vault"
)

// ErrNotOverviewBlock is returned when -line does not point at an overview fence.
var ErrNotOverviewBlock = errors.New("line does not open a folder-overview block")

// LoadInitialState opens the note, resolves plugin defaults and the block to
// edit, and prepares the UI state.
func LoadInitialState(ctx context.Context, opts Options, logger *slog.Logger) (ui.State, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	doc, err := vault.Open(opts.Target)
	if err != nil {
		return ui.State{}, err
	}
	text, err := doc.Read()
	if err != nil {
		return ui.State{}, err
	}

	defaults, err := loadDefaults(opts, doc.Path(), logger)
	if err != nil {
		return ui.State{}, err
	}

	section, start, found, err := resolveSection(text, opts.Line)
	if err != nil {
		return ui.State{}, fmt.Errorf("%s:%d: %w", opts.Target, opts.Line, err)
	}

	var parsed *overview.Partial
	if found {
		parsed = parseExisting(text, start, logger)
	}
	cfg := overview.NewConfig(parsed, defaults)

	persister := persist.New(doc, section, logger)
	f := form.New(cfg, defaults, persister, logger)

	return ui.State{
		Context:        ctx,
		Form:           f,
		RawContent:     text,
		HeaderPath:     displayPath(doc.Path()),
		ActiveAbsPath:  doc.Path(),
		PreviewVisible: !opts.NoPreview,
		Logger:         logger,
	}, nil
}

func loadDefaults(opts Options, notePath string, logger *slog.Logger) (overview.Config, error) {
	base := overview.Builtin()
	if opts.DefaultsPath != "" {
		return vault.LoadDefaults(opts.DefaultsPath, base)
	}

	root := opts.VaultRoot
	if root == "" {
		var ok bool
		if root, ok = vault.FindRoot(filepath.Dir(notePath)); !ok {
			logger.Debug("no vault found, using built-in defaults", "note", notePath)
			return base, nil
		}
	}

	path := vault.PluginSettingsPath(root)
	cfg, err := vault.LoadDefaults(path, base)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("plugin settings not found, using built-in defaults", "path", path)
		return base, nil
	}
	if err != nil {
		logger.Warn("plugin settings unreadable, using built-in defaults", "path", path, "err", err)
		return base, nil
	}
	return cfg, nil
}

// resolveSection picks how the persister finds the block. line is 1-based; 0
// follows the first overview block in the note.
func resolveSection(text string, line int) (persist.SectionInfo, int, bool, error) {
	if line > 0 {
		start := line - 1
		lines := block.Lines(text)
		if start >= len(lines) || !block.IsOpening(lines[start]) {
			return nil, 0, false, ErrNotOverviewBlock
		}
		return persist.FixedLine(start), start, true, nil
	}
	section := persist.FirstBlock{}
	start, ok := section.LineStart(text)
	return section, start, ok, nil
}

func parseExisting(text string, start int, logger *slog.Logger) *overview.Partial {
	end, err := block.Locate(text, start)
	if err != nil {
		logger.Warn("overview block has no usable closing fence", "line", start+1, "err", err)
		if !errors.Is(err, block.ErrEndOfDocument) {
			return nil
		}
	}
	parsed, err := overview.Parse([]byte(block.Body(text, start, end)))
	if err != nil {
		// parsed still carries the keys that decoded; nil means nothing did.
		logger.Warn("overview block unreadable, using defaults for bad keys", "line", start+1, "err", err)
	}
	return parsed
}

func displayPath(abs string) string {
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(abs)
}
