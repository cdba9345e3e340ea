package block

import "strings"

// Fenced wraps body in an overview fence. body gets exactly one trailing newline.
func Fenced(body string) string {
	return Fence + Language + "\n" + strings.TrimRight(body, "\n") + "\n" + Fence
}

// Replace swaps lines start through end, inclusive, for block. An end past the
// last line is treated as the last line.
func Replace(text string, start, end int, block string) string {
	lines := Lines(text)
	if end >= len(lines) {
		end = len(lines) - 1
	}
	out := make([]string, 0, len(lines)-(end-start))
	out = append(out, lines[:start]...)
	out = append(out, block)
	out = append(out, lines[end+1:]...)
	return strings.Join(out, "\n")
}

// Append adds block after text, separated from it by a blank line. It returns
// the new text and the line the block starts on. A trailing newline on text is
// kept at the end of the result.
func Append(text, block string) (string, int) {
	switch {
	case text == "":
		return block, 0
	case strings.HasSuffix(text, "\n\n"):
		return text + block + "\n", strings.Count(text, "\n")
	case strings.HasSuffix(text, "\n"):
		return text + "\n" + block + "\n", strings.Count(text, "\n") + 1
	default:
		return text + "\n\n" + block, strings.Count(text, "\n") + 2
	}
}
