package persist

import "github.com/kyaoi/overviewedit/internal/block"

// SectionInfo locates the opening fence of the block being edited in the
// current text of the note.
type SectionInfo interface {
	LineStart(text string) (int, bool)
}

// FixedLine is a block last seen opening on a given zero-based line. When
// the note was edited and that line no longer opens an overview block, the
// nearest overview block is used instead.
type FixedLine int

// LineStart implements SectionInfo.
func (l FixedLine) LineStart(text string) (int, bool) {
	lines := block.Lines(text)
	if l >= 0 && int(l) < len(lines) && block.IsOpening(lines[l]) {
		return int(l), true
	}
	best, found := 0, false
	for _, start := range block.Find(text) {
		if !found || distance(start, int(l)) < distance(best, int(l)) {
			best, found = start, true
		}
	}
	return best, found
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// FirstBlock resolves to the first overview block in the note.
type FirstBlock struct{}

// LineStart implements SectionInfo.
func (FirstBlock) LineStart(text string) (int, bool) {
	starts := block.Find(text)
	if len(starts) == 0 {
		return 0, false
	}
	return starts[0], true
}

// NoSection never resolves; every persist appends a fresh block.
type NoSection struct{}

// LineStart implements SectionInfo.
func (NoSection) LineStart(string) (int, bool) {
	return 0, false
}
