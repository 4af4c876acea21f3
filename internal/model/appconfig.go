package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default generation settings applied to new projects
	DefaultCount      int     `json:"default_count"`
	DefaultHalfExtent float64 `json:"default_half_extent"`
	DefaultMargin     float64 `json:"default_margin"`
	DefaultMultiple   int     `json:"default_attempt_multiple"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultCount:      defaults.Count,
		DefaultHalfExtent: defaults.HalfExtent,
		DefaultMargin:     defaults.Margin,
		DefaultMultiple:   defaults.AttemptMultiple,
		RecentProjects:    []string{},
		Theme:             "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PlacementSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PlacementSettings) {
	s.Count = c.DefaultCount
	s.HalfExtent = c.DefaultHalfExtent
	s.Margin = c.DefaultMargin
	s.AttemptMultiple = c.DefaultMultiple
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
