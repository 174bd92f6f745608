package model

import (
	"time"

	"github.com/google/uuid"
)

// LayoutPreset is a named, reusable set of layout settings.
type LayoutPreset struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Settings    LayoutSettings `json:"settings"`
}

func NewLayoutPreset(name, description string, settings LayoutSettings) LayoutPreset {
	now := time.Now().UTC().Format(time.RFC3339)
	return LayoutPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Settings:    settings,
	}
}

// PresetStore holds a collection of layout presets.
type PresetStore struct {
	Presets []LayoutPreset `json:"presets"`
}

func NewPresetStore() PresetStore {
	return PresetStore{
		Presets: []LayoutPreset{},
	}
}

// Put adds p, replacing any preset that already has the same name. The
// replaced preset keeps its ID and creation time.
func (ps *PresetStore) Put(p LayoutPreset) {
	for i := range ps.Presets {
		if ps.Presets[i].Name == p.Name {
			p.ID = ps.Presets[i].ID
			p.CreatedAt = ps.Presets[i].CreatedAt
			ps.Presets[i] = p
			return
		}
	}
	ps.Presets = append(ps.Presets, p)
}

// Remove deletes a preset by ID or name. Returns true if one was removed.
func (ps *PresetStore) Remove(key string) bool {
	for i, p := range ps.Presets {
		if p.ID == key || p.Name == key {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (ps *PresetStore) FindByID(id string) *LayoutPreset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *LayoutPreset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}
