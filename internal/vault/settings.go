package vault

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/kyaoi/overviewedit/internal/overview"
)

const defaultOverviewKey = "defaultOverview"

// LoadDefaults reads the plugin settings at path and overlays its
// defaultOverview object onto base. Keys missing from the file keep the value
// from base.
func LoadDefaults(path string, base overview.Config) (overview.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, err
	}
	if !gjson.ValidBytes(data) {
		return base, fmt.Errorf("%s: invalid JSON", path)
	}
	return ParseDefaults(gjson.GetBytes(data, defaultOverviewKey), base), nil
}

// ParseDefaults overlays a defaultOverview JSON object onto base.
func ParseDefaults(obj gjson.Result, base overview.Config) overview.Config {
	cfg := base.Clone()
	if !obj.IsObject() {
		return cfg
	}
	if v := obj.Get("title"); v.Type == gjson.String {
		cfg.Title = v.String()
	}
	if v := obj.Get("disableTitle"); v.IsBool() {
		cfg.DisableTitle = v.Bool()
	}
	if v := obj.Get("depth"); v.Type == gjson.Number {
		cfg.Depth = overview.ClampDepth(int(v.Int()))
	}
	if v := obj.Get("includeTypes"); v.IsArray() {
		var types []string
		for _, item := range v.Array() {
			types = append(types, item.String())
		}
		cfg.IncludeTypes = overview.NormalizeTypes(types)
	}
	if v := obj.Get("style"); v.Type == gjson.String && overview.Style(v.String()).Valid() {
		cfg.Style = overview.Style(v.String())
	}
	if v := obj.Get("disableCanvasTag"); v.IsBool() {
		cfg.DisableCanvasTag = v.Bool()
	}
	if v := obj.Get("sortBy"); v.Type == gjson.String && overview.SortBy(v.String()).Valid() {
		cfg.SortBy = overview.SortBy(v.String())
	}
	return cfg
}
