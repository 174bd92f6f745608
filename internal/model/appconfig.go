package model

// AppConfig holds user preferences persisted between runs.
type AppConfig struct {
	// Layout applied when no preset or flags say otherwise
	Defaults LayoutSettings `json:"defaults"`

	DefaultPreset string   `json:"default_preset"` // preset name, empty = none
	RecentInputs  []string `json:"recent_inputs"`  // identifier files, newest first
	Theme         string   `json:"theme"`          // "light", "dark", "system"
}

// maxRecentInputs bounds AppConfig.RecentInputs.
const maxRecentInputs = 10

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Defaults:     DefaultSettings(),
		RecentInputs: []string{},
		Theme:        "system",
	}
}

// NormalizeTheme returns "light" or "dark" for those values and "system"
// for anything else.
func NormalizeTheme(theme string) string {
	switch theme {
	case "light", "dark":
		return theme
	default:
		return "system"
	}
}

// AddRecentInput moves path to the front of RecentInputs.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path && len(recent) < maxRecentInputs {
			recent = append(recent, p)
		}
	}
	c.RecentInputs = recent
}
