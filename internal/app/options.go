package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
)

// ErrUsage is returned when the command line cannot be understood.
var ErrUsage = errors.New("usage: overviewedit [flags] <note.md>")

// Options controls a single run of the dialog.
type Options struct {
	// Target is the note holding the overview block.
	Target string
	// Line is the 1-based line of the block's opening fence. Zero selects the
	// first overview block in the note.
	Line int
	// DefaultsPath overrides the plugin settings file.
	DefaultsPath string
	// VaultRoot overrides vault detection.
	VaultRoot string
	// LogPath receives structured logs. Empty discards them.
	LogPath   string
	NoPreview bool
}

// ParseArgs reads Options from command line arguments, excluding the program name.
func ParseArgs(args []string, output io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("overviewedit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&opts.Line, "line", 0, "1-based line of the block's opening fence (0: first folder-overview block)")
	fs.StringVar(&opts.DefaultsPath, "defaults", "", "plugin settings JSON holding defaultOverview")
	fs.StringVar(&opts.VaultRoot, "vault", "", "vault root (default: nearest directory containing .obsidian)")
	fs.StringVar(&opts.LogPath, "log", "", "write logs to this file")
	fs.BoolVar(&opts.NoPreview, "no-preview", false, "hide the rendered note preview")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() != 1 {
		return Options{}, ErrUsage
	}
	if opts.Line < 0 {
		return Options{}, fmt.Errorf("-line must not be negative: %w", ErrUsage)
	}
	opts.Target = filepath.Clean(fs.Arg(0))
	return opts, nil
}
