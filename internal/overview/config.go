package overview

// Config is the editable configuration of a single folder overview block.
type Config struct {
	Title            string   `yaml:"title"`
	DisableTitle     bool     `yaml:"disableTitle"`
	Depth            int      `yaml:"depth"`
	IncludeTypes     []string `yaml:"includeTypes"`
	Style            Style    `yaml:"style"`
	DisableCanvasTag bool     `yaml:"disableCanvasTag"`
	SortBy           SortBy   `yaml:"sortBy"`

	// Extra holds keys of an existing block this program does not edit.
	Extra map[string]any `yaml:",inline"`
}

// Partial is a configuration parsed from a document. Nil fields were absent.
type Partial struct {
	Title            *string   `yaml:"title"`
	DisableTitle     *bool     `yaml:"disableTitle"`
	Depth            *int      `yaml:"depth"`
	IncludeTypes     *[]string `yaml:"includeTypes"`
	Style            *Style    `yaml:"style"`
	DisableCanvasTag *bool     `yaml:"disableCanvasTag"`
	SortBy           *SortBy   `yaml:"sortBy"`

	Extra map[string]any `yaml:",inline"`
}

// Builtin returns the defaults the folder notes plugin ships with.
func Builtin() Config {
	return Config{
		Title:            "{{folderName}} overview",
		DisableTitle:     false,
		Depth:            3,
		IncludeTypes:     []string{TypeFolder, TypeMarkdown},
		Style:            StyleList,
		DisableCanvasTag: false,
		SortBy:           SortName,
	}
}

// NewConfig builds a complete configuration from an optional parsed block,
// falling back field by field to defaults. The result never shares slices or
// maps with either argument.
func NewConfig(parsed *Partial, defaults Config) Config {
	cfg := defaults.Clone()
	cfg.Extra = nil
	if parsed != nil {
		if parsed.Title != nil {
			cfg.Title = *parsed.Title
		}
		if parsed.DisableTitle != nil {
			cfg.DisableTitle = *parsed.DisableTitle
		}
		if parsed.Depth != nil {
			cfg.Depth = *parsed.Depth
		}
		if parsed.IncludeTypes != nil {
			cfg.IncludeTypes = append([]string(nil), (*parsed.IncludeTypes)...)
		}
		if parsed.Style != nil && parsed.Style.Valid() {
			cfg.Style = *parsed.Style
		}
		if parsed.DisableCanvasTag != nil {
			cfg.DisableCanvasTag = *parsed.DisableCanvasTag
		}
		if parsed.SortBy != nil && parsed.SortBy.Valid() {
			cfg.SortBy = *parsed.SortBy
		}
		if len(parsed.Extra) > 0 {
			cfg.Extra = make(map[string]any, len(parsed.Extra))
			for k, v := range parsed.Extra {
				cfg.Extra[k] = v
			}
		}
	}
	cfg.normalize()
	return cfg
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.IncludeTypes = append([]string(nil), c.IncludeTypes...)
	if c.Extra != nil {
		out.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func (c *Config) normalize() {
	c.Depth = ClampDepth(c.Depth)
	c.IncludeTypes = NormalizeTypes(c.IncludeTypes)
	if !c.Style.Valid() {
		c.Style = StyleList
	}
	if !c.SortBy.Valid() {
		c.SortBy = SortName
	}
}

// ShowsTitle reports whether the title is editable.
func (c *Config) ShowsTitle() bool {
	return !c.DisableTitle
}

// ShowsCanvasTag reports whether the canvas tag toggle is editable.
func (c *Config) ShowsCanvasTag() bool {
	return c.HasType(TypeCanvas)
}

// HasType reports whether name is included, ignoring case.
func (c *Config) HasType(name string) bool {
	t, _ := NormalizeType(name)
	for _, included := range c.IncludeTypes {
		if included == t {
			return true
		}
	}
	return false
}

// AddType appends name to the included types. It reports false when name is
// unknown or already present.
func (c *Config) AddType(name string) bool {
	t, ok := NormalizeType(name)
	if !ok || c.HasType(t) {
		return false
	}
	c.IncludeTypes = append(c.IncludeTypes, t)
	return true
}

// RemoveTypeAt drops the included type at index i.
func (c *Config) RemoveTypeAt(i int) bool {
	if i < 0 || i >= len(c.IncludeTypes) {
		return false
	}
	c.IncludeTypes = append(c.IncludeTypes[:i:i], c.IncludeTypes[i+1:]...)
	return true
}

// ResetTypes replaces the included types with a normalized copy of types.
func (c *Config) ResetTypes(types []string) {
	c.IncludeTypes = NormalizeTypes(types)
}

// MissingTypes returns the known types not yet included, in AllTypes order.
func (c *Config) MissingTypes() []string {
	var out []string
	for _, t := range AllTypes {
		if !c.HasType(t) {
			out = append(out, t)
		}
	}
	return out
}

// SetDepth stores n clamped to the valid depth range.
func (c *Config) SetDepth(n int) {
	c.Depth = ClampDepth(n)
}
