package block

import (
	"errors"
	"strings"
)

const (
	// Fence delimits a fenced code block.
	Fence = "```"
	// Language is the info string identifying an overview block.
	Language = "folder-overview"
	// MaxScan is the number of lines searched for a closing fence.
	MaxScan = 20
)

var (
	// ErrUnterminated is returned when no closing fence appears within MaxScan lines.
	ErrUnterminated = errors.New("closing fence not found within scan limit")
	// ErrEndOfDocument is returned when the document ends before a closing fence.
	ErrEndOfDocument = errors.New("document ended before closing fence")
)

// Lines splits text on "\n" exactly as the document is addressed by line number.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Locate scans forward from the line after start and returns the index of the
// first line beginning with a fence.
//
// When the document runs out first, the returned index is one past the last
// line together with ErrEndOfDocument; callers that want the historical
// behaviour can still use it as the end of the range. When MaxScan lines pass
// without a fence it returns -1 and ErrUnterminated.
func Locate(text string, start int) (int, error) {
	lines := Lines(text)
	line := start + 1
	for count := 1; line < len(lines); count++ {
		if count > MaxScan {
			return -1, ErrUnterminated
		}
		if strings.HasPrefix(lines[line], Fence) {
			return line, nil
		}
		line++
	}
	return line, ErrEndOfDocument
}

// IsOpening reports whether line opens an overview block.
func IsOpening(line string) bool {
	if !strings.HasPrefix(line, Fence) {
		return false
	}
	info := strings.TrimSpace(strings.TrimLeft(line, "`"))
	if fields := strings.Fields(info); len(fields) > 0 {
		return fields[0] == Language
	}
	return false
}

func isClosing(line string) bool {
	return strings.TrimSpace(strings.TrimLeft(line, "`")) == ""
}

// Find returns the opening line of every overview block in text. Fenced blocks
// of other languages are skipped so their contents are never mistaken for an
// opening fence.
func Find(text string) []int {
	var starts []int
	lines := Lines(text)
	inFence := false
	for i, line := range lines {
		if !strings.HasPrefix(line, Fence) {
			continue
		}
		if inFence {
			if isClosing(line) {
				inFence = false
			}
			continue
		}
		if IsOpening(line) {
			starts = append(starts, i)
		}
		inFence = true
	}
	return starts
}

// Body returns the lines strictly between start and end joined with "\n".
func Body(text string, start, end int) string {
	lines := Lines(text)
	if start < 0 || start+1 > len(lines) {
		return ""
	}
	if end > len(lines) {
		end = len(lines)
	}
	if end <= start+1 {
		return ""
	}
	return strings.Join(lines[start+1:end], "\n")
}
