package overview

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes the body of an overview block. An empty body yields an empty
// Partial so every field falls back to its default.
//
// Keys are decoded one at a time. A value of the wrong type leaves only its own
// field unset: the Partial holding every other key is returned together with
// an error wrapping the *yaml.TypeError.
func Parse(body []byte) (*Partial, error) {
	var p Partial
	if len(bytes.TrimSpace(body)) == 0 {
		return &p, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parse overview block: %w", err)
	}
	if len(doc.Content) == 0 {
		return &p, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse overview block: line %d: expected a mapping", root.Line)
	}

	var errs []error
	for i := 0; i+1 < len(root.Content); i += 2 {
		pair := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: root.Content[i : i+2]}
		var field Partial
		if err := pair.Decode(&field); err != nil {
			errs = append(errs, err)
			continue
		}
		p.merge(&field)
	}
	if len(errs) > 0 {
		return &p, fmt.Errorf("parse overview block: %w", errors.Join(errs...))
	}
	return &p, nil
}

func (p *Partial) merge(o *Partial) {
	if o.Title != nil {
		p.Title = o.Title
	}
	if o.DisableTitle != nil {
		p.DisableTitle = o.DisableTitle
	}
	if o.Depth != nil {
		p.Depth = o.Depth
	}
	if o.IncludeTypes != nil {
		p.IncludeTypes = o.IncludeTypes
	}
	if o.Style != nil {
		p.Style = o.Style
	}
	if o.DisableCanvasTag != nil {
		p.DisableCanvasTag = o.DisableCanvasTag
	}
	if o.SortBy != nil {
		p.SortBy = o.SortBy
	}
	for k, v := range o.Extra {
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = v
	}
}

// Marshal encodes c as YAML. The output always ends with exactly one newline.
func Marshal(c Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode overview block: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode overview block: %w", err)
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, '\n'), nil
}
