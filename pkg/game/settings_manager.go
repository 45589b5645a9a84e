package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings are the persisted preferences of the particle viewer
// tool. They never affect the simulation core.
type ViewerSettings struct {
	// LastEffect is restored as the selected effect on next launch.
	LastEffect string `yaml:"lastEffect"`
	// Paused restores the tick-pause state.
	Paused bool `yaml:"paused"`
	// ShowBounds draws the estimated bounding boxes.
	ShowBounds bool `yaml:"showBounds"`
	// TimeScale multiplies the simulation delta, 0.1 to 4.
	TimeScale float64 `yaml:"timeScale"`
}

// DefaultSettings returns the viewer defaults.
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{TimeScale: 1.0}
}

// SettingsManager loads and saves viewer settings through gdata. A nil
// gdata manager degrades to in-memory settings without error.
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *ViewerSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager creates a settings manager and loads any persisted
// settings. A load failure is logged, not fatal; defaults apply.
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] failed to load settings: %v (using defaults)", err)
	}
	return sm, nil
}

// Load reads settings from storage. With a nil manager or no saved
// settings the defaults are kept.
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("load settings: %w", err)
	}

	var loaded ViewerSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	sm.settings = &loaded
	return nil
}

// Save persists the current settings. A nil manager is a no-op.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Settings returns the live settings instance.
func (sm *SettingsManager) Settings() *ViewerSettings {
	return sm.settings
}

// SetTimeScale clamps and stores the simulation speed multiplier.
// In-memory only; call Save to persist.
func (sm *SettingsManager) SetTimeScale(scale float64) {
	if scale < 0.1 {
		scale = 0.1
	}
	if scale > 4 {
		scale = 4
	}
	sm.settings.TimeScale = scale
}
