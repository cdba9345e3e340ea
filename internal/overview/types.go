package overview

import "strings"

// Entry types an overview can list.
const (
	TypeMarkdown = "markdown"
	TypeFolder   = "folder"
	TypeCanvas   = "canvas"
)

// AllTypes lists the known entry types in the order they are offered to the user.
var AllTypes = []string{TypeMarkdown, TypeFolder, TypeCanvas}

// Style is the layout used to render an overview.
type Style string

// StyleList is the only layout currently available.
const StyleList Style = "list"

// Styles lists the valid overview styles.
var Styles = []Style{StyleList}

// SortBy selects the ordering of entries in an overview.
type SortBy string

const (
	SortName        SortBy = "name"
	SortCreated     SortBy = "created"
	SortModified    SortBy = "modified"
	SortNameAsc     SortBy = "nameAsc"
	SortCreatedAsc  SortBy = "createdAsc"
	SortModifiedAsc SortBy = "modifiedAsc"
)

// SortOrders lists every sort order in display order.
var SortOrders = []SortBy{
	SortName,
	SortCreated,
	SortModified,
	SortNameAsc,
	SortCreatedAsc,
	SortModifiedAsc,
}

// Label returns the human readable name of the sort order.
func (s SortBy) Label() string {
	switch s {
	case SortName:
		return "Name descending"
	case SortCreated:
		return "Created descending"
	case SortModified:
		return "Modified descending"
	case SortNameAsc:
		return "Name ascending"
	case SortCreatedAsc:
		return "Created ascending"
	case SortModifiedAsc:
		return "Modified ascending"
	default:
		return string(s)
	}
}

// Valid reports whether s is one of the known sort orders.
func (s SortBy) Valid() bool {
	for _, o := range SortOrders {
		if o == s {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known styles.
func (s Style) Valid() bool {
	for _, o := range Styles {
		if o == s {
			return true
		}
	}
	return false
}

// Depth bounds of an overview.
const (
	MinDepth = 1
	MaxDepth = 10
)

// ClampDepth forces n into [MinDepth, MaxDepth].
func ClampDepth(n int) int {
	if n < MinDepth {
		return MinDepth
	}
	if n > MaxDepth {
		return MaxDepth
	}
	return n
}

// NormalizeType lower-cases and trims a type name. The second return value is
// false when the name is not a known entry type.
func NormalizeType(name string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(name))
	for _, known := range AllTypes {
		if t == known {
			return t, true
		}
	}
	return t, false
}

// NormalizeTypes returns the known types in names, lower-cased, without
// duplicates and in first-seen order.
func NormalizeTypes(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		t, ok := NormalizeType(name)
		if !ok || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
