package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tileterrain/internal/config"
)

// ErrCycle is returned when presets inherit from each other in a loop.
var ErrCycle = errors.New("preset: inheritance cycle")

// builtinDefaults names config.Defaults as a parent.
const builtinDefaults = "builtin/defaults"

// Preset is one JSON file: an optional parent plus the fields it overrides.
//
//	{ "parent": "archipelago", "settings": { "maxHeight": 20000, "seed": 3 } }
type Preset struct {
	Parent   string          `json:"parent,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// Loader reads presets from a directory and caches the resolved settings.
type Loader struct {
	root  string
	cache map[string]config.Settings
}

func NewLoader(root string) *Loader {
	return &Loader{
		root:  root,
		cache: make(map[string]config.Settings),
	}
}

// Load resolves name (file name without .json) to full settings. Fields the
// preset and its ancestors leave out keep their config.Defaults value.
func (l *Loader) Load(name string) (config.Settings, error) {
	return l.load(name, map[string]bool{})
}

func (l *Loader) load(name string, visiting map[string]bool) (config.Settings, error) {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || name == builtinDefaults {
		return config.Defaults(), nil
	}
	if s, ok := l.cache[name]; ok {
		return s, nil
	}
	if visiting[name] {
		return config.Settings{}, fmt.Errorf("%w at '%s'", ErrCycle, name)
	}
	visiting[name] = true

	path := filepath.Join(l.root, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("could not read preset file: %w", err)
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return config.Settings{}, fmt.Errorf("could not unmarshal preset json: %w", err)
	}

	s, err := l.load(p.Parent, visiting)
	if err != nil {
		return config.Settings{}, fmt.Errorf("could not load parent preset '%s': %w", p.Parent, err)
	}
	if len(p.Settings) > 0 {
		if err := json.Unmarshal(p.Settings, &s); err != nil {
			return config.Settings{}, fmt.Errorf("could not apply preset '%s': %w", name, err)
		}
	}

	l.cache[name] = s
	return s, nil
}

// Save writes s as a standalone preset.
func Save(path string, s config.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}
	data, err := json.MarshalIndent(Preset{Settings: raw}, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal preset: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
