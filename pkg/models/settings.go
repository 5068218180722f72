package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Settings is the studio's shared settings document. The desktop app owns the
// file and is free to add keys this tool has never heard of, so the document
// is a nested map rather than a fixed struct: unknown keys survive a
// load/modify/save round trip untouched. Known keys are read through the
// typed accessors below, which are the single place defaults live.
type Settings map[string]any

// Settings keys understood by this tool. Key names match what the desktop
// app persists, so renaming any of these breaks compatibility.
const (
	KeyTheme                = "general.theme"
	KeyLanguage             = "general.language"
	KeyCheckUpdates         = "general.check_updates"
	KeyLastRootPath         = "general.last_root_path"
	KeyAdjustmentVisibility = "interface.adjustment_visibility"
	KeyTaggingShortcuts     = "library.tagging_shortcuts"
	KeyProcessingEngine     = "processing.engine"
	KeyPreferDiscreteGPU    = "processing.prefer_discrete_gpu"
	KeyAIProvider           = "ai.provider"
	KeyConnectorAddress     = "ai.connector_address"
	KeyAPIKey               = "ai.api_key"
	KeyAIModel              = "ai.model"
	KeyAutoTag              = "ai.auto_tag"
)

// Processing engine values
const (
	EngineAuto = "auto"
	EngineGPU  = "gpu"
	EngineCPU  = "cpu"
)

// AI provider values
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"
)

// restartGated lists the keys that only take effect after the processing
// engine is reinitialized, which means a studio restart. Everything else
// applies immediately on save.
var restartGated = map[string]struct{}{
	KeyProcessingEngine:  {},
	KeyPreferDiscreteGPU: {},
}

// RestartRequired reports whether changing key requires a studio restart
// before the new value takes effect.
func RestartRequired(key string) bool {
	_, ok := restartGated[key]
	return ok
}

// EffectiveRoot resolves the library root maintenance actions operate on:
// an explicitly chosen root wins, otherwise the root the studio last had
// open. Empty means no root is known and root-scoped actions stay disabled.
func EffectiveRoot(explicit string, s Settings) string {
	if explicit != "" {
		return explicit
	}
	return s.LastRootPath()
}

// RestartGatedKeys returns the restart-gated key names, sorted.
func RestartGatedKeys() []string {
	keys := make([]string, 0, len(restartGated))
	for k := range restartGated {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewSettings returns an empty settings document. Reads against it resolve
// to the documented defaults.
func NewSettings() Settings {
	return Settings{}
}

// asMap accepts both shapes a nested mapping takes: plain map[string]any for
// values built in code, and Settings for documents out of yaml.Unmarshal,
// which decodes nested mappings as the same named type as the document.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Settings:
		return m, true
	}
	return nil, false
}

// Get walks a dotted key path and returns the raw stored value.
func (s Settings) Get(path string) (any, bool) {
	var cur any = map[string]any(s)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Clone deep-copies the document, including nested maps and lists.
func (s Settings) Clone() Settings {
	return Settings(cloneMap(map[string]any(s)))
}

// With returns a deep copy of the document with the value at the dotted key
// path replaced. Intermediate maps are created as needed. The receiver is
// never modified: callers build the complete desired document and hand it to
// the save path in one piece.
func (s Settings) With(path string, value any) Settings {
	out := s.Clone()
	parts := strings.Split(path, ".")
	m := map[string]any(out)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asMap(m[part])
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
	return out
}

// WithGroupVisible returns a copy with one adjustment group's visibility
// changed. The change is merged into the stored visibility map so entries
// for other groups are preserved exactly as the desktop app wrote them.
func (s Settings) WithGroupVisible(group string, visible bool) Settings {
	stored := map[string]any{}
	if raw, ok := s.Get(KeyAdjustmentVisibility); ok {
		if m, ok := asMap(raw); ok {
			stored = cloneMap(m)
		} else if m, ok := raw.(map[string]bool); ok {
			for k, v := range m {
				stored[k] = v
			}
		}
	}
	stored[group] = visible
	return s.With(KeyAdjustmentVisibility, stored)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Settings:
		return cloneMap(t)
	case map[string]bool:
		out := make(map[string]bool, len(t))
		for k, b := range t {
			out[k] = b
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

func (s Settings) stringAt(path, def string) string {
	if raw, ok := s.Get(path); ok {
		if v, ok := raw.(string); ok {
			return v
		}
	}
	return def
}

func (s Settings) boolAt(path string, def bool) bool {
	if raw, ok := s.Get(path); ok {
		if v, ok := coerceBool(raw); ok {
			return v
		}
	}
	return def
}

// coerceBool accepts the shapes YAML decoding can hand back for a boolean.
func coerceBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	default:
		return false, false
	}
}

func (s Settings) stringsAt(path string) []string {
	raw, ok := s.Get(path)
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if sv, ok := e.(string); ok {
				out = append(out, sv)
			}
		}
		return out
	default:
		return nil
	}
}

// Theme returns the UI theme name. Default "dark".
func (s Settings) Theme() string { return s.stringAt(KeyTheme, "dark") }

// Language returns the UI language code. Default "en".
func (s Settings) Language() string { return s.stringAt(KeyLanguage, "en") }

// CheckUpdates reports whether the studio checks for updates on launch.
// Default true.
func (s Settings) CheckUpdates() bool { return s.boolAt(KeyCheckUpdates, true) }

// LastRootPath returns the library root the studio last had open. Default "".
func (s Settings) LastRootPath() string { return s.stringAt(KeyLastRootPath, "") }

// TaggingShortcuts returns the saved tagging shortcut list. Default empty.
func (s Settings) TaggingShortcuts() []string { return s.stringsAt(KeyTaggingShortcuts) }

// ProcessingEngine returns the processing engine selection, one of
// EngineAuto, EngineGPU, EngineCPU. Default EngineAuto. Restart-gated.
func (s Settings) ProcessingEngine() string { return s.stringAt(KeyProcessingEngine, EngineAuto) }

// PreferDiscreteGPU reports whether the processing engine should bind the
// discrete GPU when several are present. Default true. Restart-gated.
func (s Settings) PreferDiscreteGPU() bool { return s.boolAt(KeyPreferDiscreteGPU, true) }

// AIProvider returns the auto-tagging provider, one of ProviderNone,
// ProviderOpenAI, ProviderLocal. Default ProviderNone.
func (s Settings) AIProvider() string { return s.stringAt(KeyAIProvider, ProviderNone) }

// ConnectorAddress returns the AI connector base URL. Default "".
func (s Settings) ConnectorAddress() string { return s.stringAt(KeyConnectorAddress, "") }

// APIKey returns the AI connector API key. Default "".
func (s Settings) APIKey() string { return s.stringAt(KeyAPIKey, "") }

// AIModel returns the model used for auto-tagging. Default "".
func (s Settings) AIModel() string { return s.stringAt(KeyAIModel, "") }

// AutoTag reports whether new imports are tagged automatically. Default false.
func (s Settings) AutoTag() bool { return s.boolAt(KeyAutoTag, false) }

// GroupVisible reports whether an adjustment group's panel is shown in the
// studio's develop view. Each group has its own default: the everyday groups
// ship visible, the specialist ones hidden.
func (s Settings) GroupVisible(group string) bool {
	if raw, ok := s.Get(KeyAdjustmentVisibility); ok {
		if m, ok := asMap(raw); ok {
			if v, ok := m[group]; ok {
				if b, ok := coerceBool(v); ok {
					return b
				}
			}
		} else if m, ok := raw.(map[string]bool); ok {
			if b, ok := m[group]; ok {
				return b
			}
		}
	}
	return GroupVisibleDefault(group)
}

// AdjustmentVisibility returns the effective visibility of every known
// adjustment group, stored values overlaid on the defaults.
func (s Settings) AdjustmentVisibility() map[string]bool {
	out := make(map[string]bool, len(AdjustmentGroups))
	for _, g := range AdjustmentGroups {
		out[g] = s.GroupVisible(g)
	}
	return out
}

// keyKind describes how a key's value parses from text.
type keyKind int

const (
	kindString keyKind = iota
	kindBool
	kindEngine
	kindProvider
)

var knownKeys = map[string]keyKind{
	KeyTheme:             kindString,
	KeyLanguage:          kindString,
	KeyCheckUpdates:      kindBool,
	KeyLastRootPath:      kindString,
	KeyProcessingEngine:  kindEngine,
	KeyPreferDiscreteGPU: kindBool,
	KeyAIProvider:        kindProvider,
	KeyConnectorAddress:  kindString,
	KeyAPIKey:            kindString,
	KeyAIModel:           kindString,
	KeyAutoTag:           kindBool,
}

// KnownKeys returns the settable key names, sorted. The visibility map and
// the shortcut list have their own commands and are not included.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseValue parses a textual value for a known key, enforcing the key's
// type and enum constraints. Visibility groups parse as
// "interface.adjustment_visibility.<group>".
func ParseValue(key, raw string) (any, error) {
	if group, ok := strings.CutPrefix(key, KeyAdjustmentVisibility+"."); ok {
		if !KnownGroup(group) {
			return nil, fmt.Errorf("unknown adjustment group: %s", group)
		}
		return parseBool(raw)
	}
	kind, ok := knownKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown settings key: %s", key)
	}
	switch kind {
	case kindBool:
		return parseBool(raw)
	case kindEngine:
		switch raw {
		case EngineAuto, EngineGPU, EngineCPU:
			return raw, nil
		}
		return nil, fmt.Errorf("invalid engine %q (want %s, %s, or %s)", raw, EngineAuto, EngineGPU, EngineCPU)
	case kindProvider:
		switch raw {
		case ProviderNone, ProviderOpenAI, ProviderLocal:
			return raw, nil
		}
		return nil, fmt.Errorf("invalid provider %q (want %s, %s, or %s)", raw, ProviderNone, ProviderOpenAI, ProviderLocal)
	default:
		return raw, nil
	}
}

func parseBool(raw string) (any, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid boolean %q", raw)
	}
	return b, nil
}
