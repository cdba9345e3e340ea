package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kyaoi/overviewedit/internal/block"
	"github.com/kyaoi/overviewedit/internal/overview"
	"github.com/kyaoi/overviewedit/internal/vault"
)

// Document is the read-modify-write capability of the host note.
type Document interface {
	Process(ctx context.Context, fn func(text string) (string, error)) (string, error)
}

// Outcome describes what a persist did to the note.
type Outcome int

const (
	// Skipped means the note could not be resolved and was left alone.
	Skipped Outcome = iota
	// Replaced means an existing block was rewritten in place.
	Replaced
	// Appended means a new block was added at the end of the note.
	Appended
)

func (o Outcome) String() string {
	switch o {
	case Replaced:
		return "replaced"
	case Appended:
		return "appended"
	default:
		return "skipped"
	}
}

// Result reports the effect of a persist.
type Result struct {
	Outcome Outcome
	// Text is the full note after the persist. Empty when Skipped.
	Text string
	// Start and End are the lines the block occupies in Text.
	Start int
	End   int
	// Fallback is the locator error that turned a replacement into an append.
	Fallback error
}

// Patch merges the serialized body into text at the block located by section.
// It is the pure part of Persist.
func Patch(text string, section SectionInfo, body string) Result {
	fenced := block.Fenced(body)
	height := len(block.Lines(fenced)) - 1

	var fallback error
	if section != nil {
		if start, ok := section.LineStart(text); ok {
			end, err := block.Locate(text, start)
			if err == nil {
				return Result{Outcome: Replaced, Text: block.Replace(text, start, end, fenced), Start: start, End: start + height}
			}
			// Neither a missing fence nor the end of the note is a valid
			// range; the text after the opening fence is left alone.
			fallback = err
		}
	}

	out, start := block.Append(text, fenced)
	return Result{Outcome: Appended, Text: out, Start: start, End: start + height, Fallback: fallback}
}

// Persister writes a configuration back into its note.
type Persister struct {
	doc     Document
	section SectionInfo
	logger  *slog.Logger
}

// New returns a Persister for doc. section may be nil when the block has never
// been written.
func New(doc Document, section SectionInfo, logger *slog.Logger) *Persister {
	if section == nil {
		section = NoSection{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Persister{doc: doc, section: section, logger: logger}
}

// Persist serializes cfg and patches it into the note. A note that no longer
// resolves to a file is a silent no-op reported as Skipped.
func (p *Persister) Persist(ctx context.Context, cfg overview.Config) (Result, error) {
	body, err := overview.Marshal(cfg)
	if err != nil {
		return Result{}, err
	}

	var res Result
	_, err = p.doc.Process(ctx, func(text string) (string, error) {
		res = Patch(text, p.section, string(body))
		return res.Text, nil
	})
	if errors.Is(err, vault.ErrMissingFile) {
		p.logger.Debug("note missing, persist skipped", "err", err)
		return Result{Outcome: Skipped}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("persist overview: %w", err)
	}

	if res.Fallback != nil {
		p.logger.Warn("overview block has no closing fence, appended a new block", "err", res.Fallback)
	}
	// Later persists follow the block just written, wherever it moves.
	if _, fixed := p.section.(FixedLine); fixed || res.Outcome == Appended {
		p.section = FixedLine(res.Start)
	}
	p.logger.Debug("overview persisted", "outcome", res.Outcome.String(), "start", res.Start+1, "end", res.End+1)
	return res, nil
}
